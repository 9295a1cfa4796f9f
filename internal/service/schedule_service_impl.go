package service

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/tabelhq/tabel/internal/api"
	"github.com/tabelhq/tabel/internal/domain"
)

type scheduleService struct {
	client *api.Client
}

// NewScheduleService creates a ScheduleService backed by the gateway.
func NewScheduleService(client *api.Client) ScheduleService {
	return &scheduleService{client: client}
}

func monthQuery(year int, month time.Month) url.Values {
	return url.Values{
		"year":  {strconv.Itoa(year)},
		"month": {strconv.Itoa(int(month))},
	}
}

func (s *scheduleService) ByMonth(ctx context.Context, year int, month time.Month) ([]domain.ScheduleEntry, error) {
	var entries []domain.ScheduleEntry
	if err := s.client.Get(ctx, "/schedule", monthQuery(year, month), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *scheduleService) BulkSet(ctx context.Context, items []domain.ScheduleItem) ([]domain.ScheduleEntry, error) {
	body := struct {
		Schedules []domain.ScheduleItem `json:"schedules"`
	}{Schedules: items}

	var entries []domain.ScheduleEntry
	if err := s.client.Post(ctx, "/schedule", body, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *scheduleService) Remove(ctx context.Context, year int, month time.Month) error {
	return s.client.Delete(ctx, "/schedule", monthQuery(year, month), nil)
}

func (s *scheduleService) ExpectedHours(ctx context.Context, year int, month time.Month) (float64, error) {
	var resp struct {
		ExpectedHours float64 `json:"expectedHours"`
	}
	if err := s.client.Get(ctx, "/schedule/expected", monthQuery(year, month), &resp); err != nil {
		return 0, err
	}
	return resp.ExpectedHours, nil
}
