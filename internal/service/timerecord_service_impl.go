package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tabelhq/tabel/internal/api"
	"github.com/tabelhq/tabel/internal/domain"
)

type timeRecordService struct {
	client *api.Client
}

// NewTimeRecordService creates a TimeRecordService backed by the gateway.
func NewTimeRecordService(client *api.Client) TimeRecordService {
	return &timeRecordService{client: client}
}

func (s *timeRecordService) List(ctx context.Context, filter TimeRecordFilter) ([]domain.TimeRecord, error) {
	query := url.Values{}
	if filter.From != "" {
		query.Set("from", filter.From)
	}
	if filter.To != "" {
		query.Set("to", filter.To)
	}
	if filter.UserID != 0 {
		query.Set("userId", strconv.Itoa(filter.UserID))
	}

	var records []domain.TimeRecord
	if err := s.client.Get(ctx, "/time-records", query, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *timeRecordService) Create(ctx context.Context, rec domain.CreateTimeRecord) (*domain.TimeRecord, error) {
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("validating time record: %w", err)
	}
	var created domain.TimeRecord
	if err := s.client.Post(ctx, "/time-records", rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *timeRecordService) Update(ctx context.Context, id int, upd domain.UpdateTimeRecord) (*domain.TimeRecord, error) {
	var updated domain.TimeRecord
	path := fmt.Sprintf("/time-records/%d", id)
	if err := s.client.Put(ctx, path, upd, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *timeRecordService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/time-records/%d", id), nil, nil)
}
