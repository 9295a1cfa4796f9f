package service

import (
	"context"
	"fmt"

	"github.com/tabelhq/tabel/internal/api"
	"github.com/tabelhq/tabel/internal/domain"
)

type authService struct {
	client *api.Client
}

// NewAuthService creates an AuthService backed by the gateway.
func NewAuthService(client *api.Client) AuthService {
	return &authService{client: client}
}

// authResponse is the envelope login/register/profile return.
type authResponse struct {
	User domain.User `json:"user"`
}

func (s *authService) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	var resp authResponse
	if err := s.client.Post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (s *authService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	var resp authResponse
	if err := s.client.Post(ctx, "/auth/register", reg, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.client.Post(ctx, "/auth/logout", nil, nil)
}

// whoAmI is the minimal identity the liveness endpoint returns.
type whoAmI struct {
	UserID int         `json:"userId"`
	Role   domain.Role `json:"role"`
}

func (s *authService) Me(ctx context.Context) (*domain.User, error) {
	var resp whoAmI
	if err := s.client.Get(ctx, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &domain.User{ID: resp.UserID, Role: resp.Role}, nil
}

func (s *authService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("validating profile update: %w", err)
	}
	var resp authResponse
	if err := s.client.Put(ctx, "/auth/profile", update, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
