package service

import (
	"context"
	"time"

	"github.com/tabelhq/tabel/internal/api"
	"github.com/tabelhq/tabel/internal/domain"
)

type chartService struct {
	client *api.Client
}

// NewChartService creates a ChartService backed by the gateway.
func NewChartService(client *api.Client) ChartService {
	return &chartService{client: client}
}

func (s *chartService) ActualVsRequiredByDays(ctx context.Context, year int, month time.Month) ([]domain.ActualVsRequiredPoint, error) {
	var points []domain.ActualVsRequiredPoint
	if err := s.client.Get(ctx, "/charts/actual-vs-required", monthQuery(year, month), &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (s *chartService) CumulativeHoursByUsers(ctx context.Context, year int, month time.Month) ([]domain.CumulativeHoursByUser, error) {
	var series []domain.CumulativeHoursByUser
	if err := s.client.Get(ctx, "/charts/cumulative-by-users", monthQuery(year, month), &series); err != nil {
		return nil, err
	}
	return series, nil
}

func (s *chartService) ActualVsPlannedByUsers(ctx context.Context, year int, month time.Month) ([]domain.ActualVsPlannedPoint, error) {
	var points []domain.ActualVsPlannedPoint
	if err := s.client.Get(ctx, "/charts/actual-vs-planned", monthQuery(year, month), &points); err != nil {
		return nil, err
	}
	return points, nil
}
