package service

import (
	"context"
	"time"

	"github.com/tabelhq/tabel/internal/api"
	"github.com/tabelhq/tabel/internal/domain"
)

type statisticsService struct {
	client *api.Client
}

// NewStatisticsService creates a StatisticsService backed by the gateway.
func NewStatisticsService(client *api.Client) StatisticsService {
	return &statisticsService{client: client}
}

// UserStatistics fetches the per-user monthly aggregation. Months are
// 1-based on the wire.
func (s *statisticsService) UserStatistics(ctx context.Context, year int, month time.Month) ([]domain.UserStatistics, error) {
	var stats []domain.UserStatistics
	if err := s.client.Get(ctx, "/time-records/statistics", monthQuery(year, month), &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
