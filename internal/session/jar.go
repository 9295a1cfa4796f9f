// Package session keeps the server session alive across process
// restarts. The browser persisted cookies for free; the CLI does it
// with a write-through jar backed by the local database.
package session

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/tabelhq/tabel/internal/repository"
)

// Jar is an http.CookieJar that writes cookies for the configured
// server through to local storage and reloads them on startup.
// Cookies for other origins stay in memory only.
type Jar struct {
	inner  *cookiejar.Jar
	repo   repository.CookieRepo
	origin *url.URL
	server string // origin key used in storage

	mu sync.Mutex
}

// NewJar creates a Jar for the given server base URL and loads any
// persisted cookies into it.
func NewJar(repo repository.CookieRepo, serverURL string) (*Jar, error) {
	origin, err := url.Parse(serverURL)
	if err != nil {
		return nil, err
	}
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	j := &Jar{
		inner:  inner,
		repo:   repo,
		origin: origin,
		server: origin.Scheme + "://" + origin.Host,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	stored, err := repo.ListByServer(ctx, j.server)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var cookies []*http.Cookie
	for _, c := range stored {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  c.Expires,
			HttpOnly: c.HTTPOnly,
			Secure:   c.Secure,
		})
	}
	if len(cookies) > 0 {
		inner.SetCookies(origin, cookies)
	}

	return j, nil
}

// SetCookies implements http.CookieJar. Cookies for the configured
// server are also persisted; persistence failures do not fail the
// request that carried the cookie.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)

	if u.Host != j.origin.Host {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, c := range cookies {
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			// Deletion cookie from the server. Only the named cookie
			// goes; a rotation may expire one cookie and set its
			// replacement in the same response.
			_ = j.repo.Delete(ctx, j.server, c.Name)
			continue
		}
		_ = j.repo.Upsert(ctx, j.server, repository.StoredCookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  c.Expires,
			HTTPOnly: c.HttpOnly,
			Secure:   c.Secure,
		})
	}
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// HasSession reports whether any cookie is held for the configured
// server. This is the cheap local probe that lets an identity check
// skip a doomed round trip; it never asserts the session is valid.
func (j *Jar) HasSession() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.inner.Cookies(j.origin)) > 0
}

// Clear drops all cookies for the configured server, locally and from
// storage. Used on logout.
func (j *Jar) Clear(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	// cookiejar has no removal API; replace the inner jar.
	inner, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	j.inner = inner
	return j.repo.DeleteByServer(ctx, j.server)
}
