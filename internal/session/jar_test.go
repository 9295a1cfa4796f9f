package session

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabelhq/tabel/internal/repository"
	"github.com/tabelhq/tabel/internal/testutil"
)

const serverURL = "https://tracker.example.com/api"

func testJar(t *testing.T) (*Jar, repository.CookieRepo) {
	t.Helper()
	repo := repository.NewSQLiteCookieRepo(testutil.NewTestDB(t))
	jar, err := NewJar(repo, serverURL)
	require.NoError(t, err)
	return jar, repo
}

func originURL(t *testing.T) *url.URL {
	t.Helper()
	u, err := url.Parse(serverURL)
	require.NoError(t, err)
	return u
}

func TestJar_WriteThroughAndReload(t *testing.T) {
	jar, repo := testJar(t)
	origin := originURL(t)

	assert.False(t, jar.HasSession())

	jar.SetCookies(origin, []*http.Cookie{
		{Name: "session", Value: "abc", Path: "/", Expires: time.Now().Add(time.Hour)},
	})
	assert.True(t, jar.HasSession())

	// A second Jar over the same repo sees the persisted cookie.
	reloaded, err := NewJar(repo, serverURL)
	require.NoError(t, err)
	assert.True(t, reloaded.HasSession())

	cookies := reloaded.Cookies(origin)
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
}

func TestJar_ExpiredCookiesNotReloaded(t *testing.T) {
	_, repo := testJar(t)

	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, "https://tracker.example.com", repository.StoredCookie{
		Name: "session", Value: "stale", Path: "/", Expires: time.Now().Add(-time.Hour),
	}))

	jar, err := NewJar(repo, serverURL)
	require.NoError(t, err)
	assert.False(t, jar.HasSession())
}

func TestJar_ForeignOriginNotPersisted(t *testing.T) {
	jar, repo := testJar(t)

	other, err := url.Parse("https://elsewhere.example.com/")
	require.NoError(t, err)
	jar.SetCookies(other, []*http.Cookie{{Name: "x", Value: "y", Path: "/"}})

	stored, err := repo.ListByServer(context.Background(), "https://tracker.example.com")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestJar_DeletionCookieRemovesOnlyItself(t *testing.T) {
	jar, repo := testJar(t)
	origin := originURL(t)

	jar.SetCookies(origin, []*http.Cookie{
		{Name: "session", Value: "abc", Path: "/", Expires: time.Now().Add(time.Hour)},
		{Name: "credentials", Value: "xyz", Path: "/", Expires: time.Now().Add(time.Hour)},
	})

	// A rotation expires one cookie and sets its replacement in the
	// same response; the untouched cookie must survive in storage.
	jar.SetCookies(origin, []*http.Cookie{
		{Name: "session", Value: "", Path: "/", MaxAge: -1},
		{Name: "session2", Value: "def", Path: "/", Expires: time.Now().Add(time.Hour)},
	})

	stored, err := repo.ListByServer(context.Background(), "https://tracker.example.com")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "credentials", stored[0].Name)
	assert.Equal(t, "session2", stored[1].Name)
}

func TestJar_Clear(t *testing.T) {
	jar, repo := testJar(t)
	origin := originURL(t)

	jar.SetCookies(origin, []*http.Cookie{{Name: "session", Value: "abc", Path: "/"}})
	require.True(t, jar.HasSession())

	require.NoError(t, jar.Clear(context.Background()))
	assert.False(t, jar.HasSession())

	stored, err := repo.ListByServer(context.Background(), "https://tracker.example.com")
	require.NoError(t, err)
	assert.Empty(t, stored)
}
