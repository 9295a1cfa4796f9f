package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabelhq/tabel/internal/domain"
	"github.com/tabelhq/tabel/internal/testutil"
)

const server = "https://tracker.example.com"

func TestCookieRepo_UpsertAndList(t *testing.T) {
	repo := NewSQLiteCookieRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	expires := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, server, StoredCookie{
		Name: "session", Value: "abc", Path: "/", Expires: expires, HTTPOnly: true, Secure: true,
	}))
	require.NoError(t, repo.Upsert(ctx, server, StoredCookie{
		Name: "credentials", Value: "xyz", Path: "/",
	}))

	cookies, err := repo.ListByServer(ctx, server)
	require.NoError(t, err)
	require.Len(t, cookies, 2)

	// Ordered by name: credentials, session.
	assert.Equal(t, "credentials", cookies[0].Name)
	assert.True(t, cookies[0].Expires.IsZero())

	assert.Equal(t, "session", cookies[1].Name)
	assert.Equal(t, "abc", cookies[1].Value)
	assert.True(t, expires.Equal(cookies[1].Expires))
	assert.True(t, cookies[1].HTTPOnly)
	assert.True(t, cookies[1].Secure)
}

func TestCookieRepo_UpsertReplaces(t *testing.T) {
	repo := NewSQLiteCookieRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, server, StoredCookie{Name: "session", Value: "old", Path: "/"}))
	require.NoError(t, repo.Upsert(ctx, server, StoredCookie{Name: "session", Value: "new", Path: "/"}))

	cookies, err := repo.ListByServer(ctx, server)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "new", cookies[0].Value)
}

func TestCookieRepo_DeleteByName(t *testing.T) {
	repo := NewSQLiteCookieRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, server, StoredCookie{Name: "session", Value: "abc", Path: "/"}))
	require.NoError(t, repo.Upsert(ctx, server, StoredCookie{Name: "credentials", Value: "xyz", Path: "/"}))

	require.NoError(t, repo.Delete(ctx, server, "session"))

	cookies, err := repo.ListByServer(ctx, server)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "credentials", cookies[0].Name)
}

func TestCookieRepo_DeleteByServer(t *testing.T) {
	repo := NewSQLiteCookieRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, server, StoredCookie{Name: "session", Value: "abc", Path: "/"}))
	require.NoError(t, repo.Upsert(ctx, "https://other.example.com", StoredCookie{Name: "session", Value: "keep", Path: "/"}))

	require.NoError(t, repo.DeleteByServer(ctx, server))

	gone, err := repo.ListByServer(ctx, server)
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := repo.ListByServer(ctx, "https://other.example.com")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestIdentityRepo_RoundTrip(t *testing.T) {
	repo := NewSQLiteIdentityRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	got, err := repo.Get(ctx, server)
	require.NoError(t, err)
	assert.Nil(t, got, "no identity cached yet")

	u := domain.User{ID: 7, Email: "a@b.c", Role: domain.RoleAdmin}
	require.NoError(t, repo.Save(ctx, server, u))

	got, err = repo.Get(ctx, server)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u, *got)

	// Save replaces, never duplicates.
	u.Role = domain.RoleEmployee
	require.NoError(t, repo.Save(ctx, server, u))
	got, err = repo.Get(ctx, server)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, got.Role)

	require.NoError(t, repo.Delete(ctx, server))
	got, err = repo.Get(ctx, server)
	require.NoError(t, err)
	assert.Nil(t, got)
}
