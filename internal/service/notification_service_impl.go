package service

import (
	"context"
	"fmt"

	"github.com/tabelhq/tabel/internal/api"
	"github.com/tabelhq/tabel/internal/domain"
)

type notificationService struct {
	client *api.Client
}

// NewNotificationService creates a NotificationService backed by the gateway.
func NewNotificationService(client *api.Client) NotificationService {
	return &notificationService{client: client}
}

func (s *notificationService) List(ctx context.Context) ([]domain.Notification, error) {
	var notifications []domain.Notification
	if err := s.client.Get(ctx, "/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *notificationService) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := s.client.Get(ctx, "/notifications/unread/count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id int) (*domain.Notification, error) {
	var n domain.Notification
	if err := s.client.Post(ctx, fmt.Sprintf("/notifications/%d/read", id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := s.client.Post(ctx, "/notifications/read-all", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (s *notificationService) Check(ctx context.Context) error {
	return s.client.Post(ctx, "/notifications/check", nil, nil)
}
