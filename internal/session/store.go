package session

import (
	"context"
	"errors"

	"github.com/tabelhq/tabel/internal/domain"
	"github.com/tabelhq/tabel/internal/repository"
)

// Store bundles the cookie jar with the cached identity for one
// server. It backs the auth store's local session probe and is wiped
// as a unit on logout.
type Store struct {
	jar        *Jar
	identities repository.IdentityRepo
}

// NewStore creates a Store over the given jar and identity repo.
func NewStore(jar *Jar, identities repository.IdentityRepo) *Store {
	return &Store{jar: jar, identities: identities}
}

// HasSession reports whether any session cookie survives locally.
func (s *Store) HasSession() bool {
	return s.jar.HasSession()
}

// SaveIdentity caches the last server-confirmed identity.
func (s *Store) SaveIdentity(ctx context.Context, u domain.User) error {
	return s.identities.Save(ctx, s.jar.server, u)
}

// CachedIdentity returns the last confirmed identity, or nil.
func (s *Store) CachedIdentity(ctx context.Context) (*domain.User, error) {
	return s.identities.Get(ctx, s.jar.server)
}

// Clear drops cookies and the cached identity together.
func (s *Store) Clear(ctx context.Context) error {
	return errors.Join(
		s.jar.Clear(ctx),
		s.identities.Delete(ctx, s.jar.server),
	)
}
