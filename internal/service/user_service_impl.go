package service

import (
	"context"
	"fmt"

	"github.com/tabelhq/tabel/internal/api"
	"github.com/tabelhq/tabel/internal/domain"
)

type userService struct {
	client *api.Client
}

// NewUserService creates a UserService backed by the gateway.
func NewUserService(client *api.Client) UserService {
	return &userService{client: client}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.client.Get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userService) ByID(ctx context.Context, id int) (*domain.User, error) {
	var u domain.User
	if err := s.client.Get(ctx, fmt.Sprintf("/users/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userService) Update(ctx context.Context, upd UserUpdate) (*domain.User, error) {
	var u domain.User
	if err := s.client.Put(ctx, "/users/update", upd, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userService) Delete(ctx context.Context, id int) error {
	body := struct {
		ID int `json:"id"`
	}{ID: id}
	return s.client.Delete(ctx, "/users/delete", nil, body)
}
