package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabelhq/tabel/internal/api"
	"github.com/tabelhq/tabel/internal/domain"
)

// fakeAuthService scripts service outcomes for store tests.
type fakeAuthService struct {
	loginUser *domain.User
	loginErr  error

	registerUser *domain.User
	registerErr  error

	meUser *domain.User
	meErr  error
	meHits int

	logoutErr  error
	logoutHits int

	profileUser *domain.User
	profileErr  error
}

func (f *fakeAuthService) Login(context.Context, domain.Credentials) (*domain.User, error) {
	return f.loginUser, f.loginErr
}

func (f *fakeAuthService) Register(context.Context, domain.Registration) (*domain.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeAuthService) Logout(context.Context) error {
	f.logoutHits++
	return f.logoutErr
}

func (f *fakeAuthService) Me(context.Context) (*domain.User, error) {
	f.meHits++
	return f.meUser, f.meErr
}

func (f *fakeAuthService) UpdateProfile(context.Context, domain.ProfileUpdate) (*domain.User, error) {
	return f.profileUser, f.profileErr
}

// fakeGateway records logout coordination calls.
type fakeGateway struct {
	begins, finishes int
}

func (f *fakeGateway) BeginLogout()  { f.begins++ }
func (f *fakeGateway) FinishLogout() { f.finishes++ }

// fakeLocal is an in-memory LocalSession.
type fakeLocal struct {
	hasSession bool
	identity   *domain.User
	clears     int
}

func (f *fakeLocal) HasSession() bool { return f.hasSession }

func (f *fakeLocal) SaveIdentity(_ context.Context, u domain.User) error {
	f.identity = &u
	return nil
}

func (f *fakeLocal) Clear(context.Context) error {
	f.clears++
	f.identity = nil
	f.hasSession = false
	return nil
}

func newAuthFixture() (*AuthStore, *fakeAuthService, *fakeGateway, *fakeLocal) {
	svc := &fakeAuthService{}
	gw := &fakeGateway{}
	local := &fakeLocal{}
	return NewAuthStore(svc, gw, local), svc, gw, local
}

func TestAuthStore_Login_Success(t *testing.T) {
	s, svc, _, local := newAuthFixture()
	svc.loginUser = &domain.User{ID: 1, Email: "a@b.c", Role: domain.RoleEmployee}

	err := s.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "secret123"})
	require.NoError(t, err)

	state := s.Snapshot()
	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, 1, state.User.ID)
	assert.False(t, state.IsLoading)
	assert.Empty(t, state.Err)
	assert.NotNil(t, local.identity, "identity cached for the next startup probe")
}

func TestAuthStore_Login_Failure(t *testing.T) {
	s, svc, _, _ := newAuthFixture()
	svc.loginErr = &api.Error{Kind: api.KindAuth, Status: 401, Message: "wrong password"}

	err := s.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "nope"})
	require.Error(t, err, "error is re-thrown for the caller")

	state := s.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.Equal(t, "wrong password", state.Err)
	assert.False(t, state.IsLoading)
}

func TestAuthStore_Login_FallbackMessage(t *testing.T) {
	s, svc, _, _ := newAuthFixture()
	svc.loginErr = errors.New("raw transport noise")

	_ = s.Login(context.Background(), domain.Credentials{})
	assert.Equal(t, msgLoginFailed, s.Snapshot().Err)
}

func TestAuthStore_Register_SameShapeAsLogin(t *testing.T) {
	s, svc, _, _ := newAuthFixture()
	svc.registerUser = &domain.User{ID: 2, Email: "new@b.c", Role: domain.RoleEmployee}

	require.NoError(t, s.Register(context.Background(), domain.Registration{Email: "new@b.c", Password: "longenough"}))
	assert.True(t, s.Snapshot().IsAuthenticated)
}

func TestAuthStore_Logout_AlwaysAnonymous(t *testing.T) {
	s, svc, gw, local := newAuthFixture()
	svc.loginUser = &domain.User{ID: 1}
	require.NoError(t, s.Login(context.Background(), domain.Credentials{}))

	// Server logout fails; the user must still end up signed out.
	svc.logoutErr = errors.New("server unreachable")
	s.Logout(context.Background())

	state := s.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.False(t, state.IsLoading)
	assert.Empty(t, state.Err)

	assert.Equal(t, 1, gw.begins)
	assert.Equal(t, 1, gw.finishes)
	assert.Equal(t, 1, local.clears, "local cookies and identity dropped")
}

func TestAuthStore_CheckAuth_NoLocalSession_SkipsNetwork(t *testing.T) {
	s, svc, _, local := newAuthFixture()
	local.hasSession = false

	s.CheckAuth(context.Background())

	state := s.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.False(t, state.IsLoading)
	assert.Equal(t, 0, svc.meHits, "no doomed round trip without a session indicator")
}

func TestAuthStore_CheckAuth_ConfirmsIdentity(t *testing.T) {
	s, svc, _, local := newAuthFixture()
	local.hasSession = true
	svc.meUser = &domain.User{ID: 5, Role: domain.RoleAdmin}

	s.CheckAuth(context.Background())

	state := s.Snapshot()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, 5, state.User.ID)
	assert.Equal(t, 1, svc.meHits)
}

func TestAuthStore_CheckAuth_PreservesCachedEmail(t *testing.T) {
	s, svc, _, local := newAuthFixture()
	svc.loginUser = &domain.User{ID: 5, Email: "a@b.c", Role: domain.RoleEmployee}
	require.NoError(t, s.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "secret123"}))
	require.Equal(t, "a@b.c", local.identity.Email)

	// The liveness endpoint confirms the identity without an email;
	// the email cached at sign-in must survive the check.
	local.hasSession = true
	svc.meUser = &domain.User{ID: 5, Role: domain.RoleEmployee}
	s.CheckAuth(context.Background())

	assert.True(t, s.Snapshot().IsAuthenticated)
	require.NotNil(t, local.identity)
	assert.Equal(t, "a@b.c", local.identity.Email)
}

func TestAuthStore_CheckAuth_FailureIsSilent(t *testing.T) {
	s, svc, _, local := newAuthFixture()
	local.hasSession = true
	svc.meErr = &api.Error{Kind: api.KindSession, Status: 401, Message: "expired"}

	s.CheckAuth(context.Background())

	state := s.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.Empty(t, state.Err, "a failed silent check is not a user-visible error")
}

func TestAuthStore_CheckAuth_IgnoresLoggingOut(t *testing.T) {
	s, svc, _, local := newAuthFixture()

	// Sign in first so there is state to preserve.
	svc.loginUser = &domain.User{ID: 1}
	require.NoError(t, s.Login(context.Background(), domain.Credentials{}))

	local.hasSession = true
	svc.meErr = api.ErrLoggingOut
	s.CheckAuth(context.Background())

	// The sentinel is a no-op: state untouched apart from loading.
	state := s.Snapshot()
	assert.True(t, state.IsAuthenticated)
	assert.False(t, state.IsLoading)
}

func TestAuthStore_InvariantAuthenticatedIffUser(t *testing.T) {
	s, svc, _, _ := newAuthFixture()

	state := s.Snapshot()
	assert.Equal(t, state.User != nil, state.IsAuthenticated)

	svc.loginUser = &domain.User{ID: 1}
	require.NoError(t, s.Login(context.Background(), domain.Credentials{}))
	state = s.Snapshot()
	assert.Equal(t, state.User != nil, state.IsAuthenticated)

	s.Logout(context.Background())
	state = s.Snapshot()
	assert.Equal(t, state.User != nil, state.IsAuthenticated)
}

func TestAuthStore_ClearError(t *testing.T) {
	s, svc, _, _ := newAuthFixture()
	svc.loginErr = errors.New("boom")
	_ = s.Login(context.Background(), domain.Credentials{})
	require.NotEmpty(t, s.Snapshot().Err)

	s.ClearError()
	assert.Empty(t, s.Snapshot().Err)
}
