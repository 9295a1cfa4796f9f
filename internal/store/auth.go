// Package store holds the client-side state for each domain area. A
// store caches server state, exposes actions that call services, and
// reconciles its cache against server responses. Stores are the only
// writers of their own state; the UI reads snapshots.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/tabelhq/tabel/internal/api"
	"github.com/tabelhq/tabel/internal/domain"
	"github.com/tabelhq/tabel/internal/service"
)

const (
	msgLoginFailed    = "sign-in failed, check your credentials"
	msgRegisterFailed = "registration failed"
	msgProfileFailed  = "profile update failed"
)

// SessionControl is the slice of the gateway the auth store drives
// during logout.
type SessionControl interface {
	BeginLogout()
	FinishLogout()
}

// LocalSession is the locally persisted session residue: cookies and
// the last confirmed identity. HasSession is only a cheap existence
// probe; the server stays the sole source of identity truth.
type LocalSession interface {
	HasSession() bool
	SaveIdentity(ctx context.Context, u domain.User) error
	Clear(ctx context.Context) error
}

// AuthState is a point-in-time snapshot of the auth store.
type AuthState struct {
	User            *domain.User
	IsAuthenticated bool
	IsLoading       bool
	Err             string
}

// AuthStore owns the session identity. Other stores and the UI read
// it but never mutate it.
type AuthStore struct {
	svc     service.AuthService
	gateway SessionControl
	local   LocalSession

	mu      sync.Mutex
	user    *domain.User
	loading bool
	err     string
}

// NewAuthStore creates an AuthStore in the anonymous state.
func NewAuthStore(svc service.AuthService, gateway SessionControl, local LocalSession) *AuthStore {
	return &AuthStore{svc: svc, gateway: gateway, local: local}
}

// Snapshot returns the current auth state. IsAuthenticated is derived
// from the user pointer, so the two can never disagree.
func (s *AuthStore) Snapshot() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AuthState{
		User:            s.user,
		IsAuthenticated: s.user != nil,
		IsLoading:       s.loading,
		Err:             s.err,
	}
}

// Login signs in and reconciles the returned identity. On failure the
// store ends anonymous with a user-facing error, and the error is also
// returned so the caller can react.
func (s *AuthStore) Login(ctx context.Context, creds domain.Credentials) error {
	s.begin()
	u, err := s.svc.Login(ctx, creds)
	if err != nil {
		s.fail(api.UserMessage(err, msgLoginFailed))
		return err
	}
	s.succeed(ctx, u)
	return nil
}

// Register creates an account; same state shape as Login.
func (s *AuthStore) Register(ctx context.Context, reg domain.Registration) error {
	s.begin()
	u, err := s.svc.Register(ctx, reg)
	if err != nil {
		s.fail(api.UserMessage(err, msgRegisterFailed))
		return err
	}
	s.succeed(ctx, u)
	return nil
}

// UpdateProfile changes email and/or password and reconciles the
// returned user into local state.
func (s *AuthStore) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error {
	s.begin()
	u, err := s.svc.UpdateProfile(ctx, update)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.err = api.UserMessage(err, msgProfileFailed)
		s.mu.Unlock()
		return err
	}
	s.succeed(ctx, u)
	return nil
}

// Logout clears the local identity before the network call returns, so
// no window exists where a stale session looks signed in. Server
// errors are swallowed: failing to reach the server must not trap the
// user in a signed-in-looking state.
func (s *AuthStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	s.gateway.BeginLogout()
	_ = s.svc.Logout(ctx)
	_ = s.local.Clear(ctx)
	s.gateway.FinishLogout()

	s.mu.Lock()
	s.user = nil
	s.loading = false
	s.err = ""
	s.mu.Unlock()
}

// CheckAuth confirms session liveness on startup. Without a local
// session indicator it settles to anonymous with no network call. A
// failed check is the normal "not signed in" case, never a surfaced
// error; the logging-out sentinel is ignored entirely.
func (s *AuthStore) CheckAuth(ctx context.Context) {
	if !s.local.HasSession() {
		s.mu.Lock()
		s.user = nil
		s.loading = false
		s.err = ""
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	u, err := s.svc.Me(ctx)
	if err != nil {
		if errors.Is(err, api.ErrLoggingOut) {
			s.mu.Lock()
			s.loading = false
			s.mu.Unlock()
			return
		}
		s.mu.Lock()
		s.user = nil
		s.loading = false
		s.err = ""
		s.mu.Unlock()
		return
	}
	s.succeed(ctx, u)
}

// ClearError drops the current error message.
func (s *AuthStore) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func (s *AuthStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *AuthStore) fail(msg string) {
	s.mu.Lock()
	s.user = nil
	s.loading = false
	s.err = msg
	s.mu.Unlock()
}

func (s *AuthStore) succeed(ctx context.Context, u *domain.User) {
	// Identity caching is best effort; a failed local write never
	// fails a successful sign-in. Liveness checks confirm identities
	// without an email; writing those through would wipe the email
	// cached at sign-in, so they are not persisted.
	if u.Email != "" {
		_ = s.local.SaveIdentity(ctx, *u)
	}

	s.mu.Lock()
	s.user = u
	s.loading = false
	s.err = ""
	s.mu.Unlock()
}
