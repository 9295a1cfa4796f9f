// Package repository persists the client's local state: the session
// cookies for the configured server and the last confirmed identity.
// The identity row is only a cheap existence probe; the server's
// /auth/me endpoint stays the sole source of truth.
package repository

import (
	"context"
	"time"

	"github.com/tabelhq/tabel/internal/domain"
)

// StoredCookie is one persisted session cookie.
type StoredCookie struct {
	Name     string
	Value    string
	Path     string
	Expires  time.Time // zero means a session cookie
	HTTPOnly bool
	Secure   bool
}

// CookieRepo stores session cookies keyed by server origin.
type CookieRepo interface {
	Upsert(ctx context.Context, server string, c StoredCookie) error
	ListByServer(ctx context.Context, server string) ([]StoredCookie, error)
	Delete(ctx context.Context, server, name string) error
	DeleteByServer(ctx context.Context, server string) error
}

// IdentityRepo caches the last identity confirmed by the server.
// Get returns (nil, nil) when no identity is cached.
type IdentityRepo interface {
	Save(ctx context.Context, server string, u domain.User) error
	Get(ctx context.Context, server string) (*domain.User, error)
	Delete(ctx context.Context, server string) error
}
