package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentranbao-ct/storefront-core/internal/models"
)

type fakeAPI struct {
	checkResp *models.AuthCheck
	checkErr  error

	loginResp *models.AuthResponse
	loginErr  error

	registerResp *models.AuthResponse
	registerErr  error

	logoutErr error

	profileResp *models.User
	profileErr  error

	loginCalls    int
	registerCalls int
	logoutCalls   int
	profileCalls  int
}

func (f *fakeAPI) CheckAuth(ctx context.Context) (*models.AuthCheck, error) {
	return f.checkResp, f.checkErr
}

func (f *fakeAPI) Login(ctx context.Context, credentials models.Credentials) (*models.AuthResponse, error) {
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	f.registerCalls++
	return f.registerResp, f.registerErr
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	f.profileCalls++
	return f.profileResp, f.profileErr
}

func validCredentials() models.Credentials {
	return models.Credentials{Username: "alice", Password: "password-1"}
}

func validRegistration() models.RegisterRequest {
	return models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password-1",
	}
}

func TestCheckSessionAdoptsIdentity(t *testing.T) {
	api := &fakeAPI{
		checkResp: &models.AuthCheck{
			Authenticated: true,
			User:          &models.User{ID: "1", Username: "alice"},
		},
	}
	p := NewProvider(api)
	assert.True(t, p.Loading(), "identity is unknown until the first check")

	var notified []bool
	p.Subscribe(func(authed bool) { notified = append(notified, authed) })

	p.CheckSession(context.Background())

	assert.False(t, p.Loading())
	assert.True(t, p.Authenticated())
	assert.Equal(t, "alice", p.User().Username)
	assert.Equal(t, []bool{true}, notified)
}

func TestCheckSessionFailureIsSilent(t *testing.T) {
	api := &fakeAPI{checkErr: errors.New("connection refused")}
	p := NewProvider(api)

	p.CheckSession(context.Background())

	assert.False(t, p.Loading())
	assert.False(t, p.Authenticated())
	assert.Empty(t, p.LastError(), "a failed check is not a user-facing error")
}

func TestCheckSessionUnauthenticated(t *testing.T) {
	api := &fakeAPI{checkResp: &models.AuthCheck{Authenticated: false}}
	p := NewProvider(api)

	var notified []bool
	p.Subscribe(func(authed bool) { notified = append(notified, authed) })
	p.CheckSession(context.Background())

	assert.False(t, p.Authenticated())
	assert.Empty(t, notified)
}

func TestLoginSuccessNotifiesOnce(t *testing.T) {
	user := &models.User{ID: "1", Username: "alice"}
	api := &fakeAPI{loginResp: &models.AuthResponse{User: user}}
	p := NewProvider(api)

	var notified []bool
	p.Subscribe(func(authed bool) { notified = append(notified, authed) })

	result := p.Login(context.Background(), validCredentials())
	require.True(t, result.Success)
	assert.Equal(t, user, p.User())
	assert.Empty(t, p.LastError())

	// A second login while already authenticated is not a transition.
	result = p.Login(context.Background(), validCredentials())
	require.True(t, result.Success)
	assert.Equal(t, []bool{true}, notified)
}

func TestLoginFailureKeepsPriorState(t *testing.T) {
	api := &fakeAPI{loginErr: errors.New("Invalid credentials.")}
	p := NewProvider(api)

	result := p.Login(context.Background(), validCredentials())
	assert.False(t, result.Success)
	assert.Equal(t, "Invalid credentials.", result.Error)
	assert.Equal(t, "Invalid credentials.", p.LastError())
	assert.False(t, p.Authenticated())
	assert.Nil(t, p.User())
}

func TestLoginValidationShortCircuits(t *testing.T) {
	api := &fakeAPI{}
	p := NewProvider(api)

	result := p.Login(context.Background(), models.Credentials{Username: "alice"})
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Zero(t, api.loginCalls, "invalid input never reaches the network")
}

func TestRegisterValidationShortCircuits(t *testing.T) {
	api := &fakeAPI{}
	p := NewProvider(api)

	req := validRegistration()
	req.Password = "short"
	result := p.Register(context.Background(), req)
	assert.False(t, result.Success)
	assert.Zero(t, api.registerCalls)

	req = validRegistration()
	req.Email = "not-an-email"
	result = p.Register(context.Background(), req)
	assert.False(t, result.Success)
	assert.Zero(t, api.registerCalls)
}

func TestRegisterSuccessAdoptsIdentity(t *testing.T) {
	user := &models.User{ID: "2", Username: "bob"}
	api := &fakeAPI{registerResp: &models.AuthResponse{User: user}}
	p := NewProvider(api)

	result := p.Register(context.Background(), models.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "password-1",
	})
	require.True(t, result.Success)
	assert.True(t, p.Authenticated())
	assert.Equal(t, user, p.User())
}

func TestLogoutIsFailOpen(t *testing.T) {
	user := &models.User{ID: "1", Username: "alice"}
	api := &fakeAPI{
		loginResp: &models.AuthResponse{User: user},
		logoutErr: errors.New("connection refused"),
	}
	p := NewProvider(api)
	require.True(t, p.Login(context.Background(), validCredentials()).Success)

	var notified []bool
	p.Subscribe(func(authed bool) { notified = append(notified, authed) })

	p.Logout(context.Background())

	assert.False(t, p.Authenticated(), "identity clears even when the server call fails")
	assert.Nil(t, p.User())
	assert.Equal(t, []bool{false}, notified)
	assert.Equal(t, 1, api.logoutCalls)
}

func TestLogoutWhileGuestDoesNotNotify(t *testing.T) {
	api := &fakeAPI{}
	p := NewProvider(api)

	var notified []bool
	p.Subscribe(func(authed bool) { notified = append(notified, authed) })
	p.Logout(context.Background())

	assert.Empty(t, notified, "no transition happened")
}

func TestUpdateProfileFailureKeepsIdentity(t *testing.T) {
	user := &models.User{ID: "1", Username: "alice", Email: "alice@example.com"}
	api := &fakeAPI{
		loginResp:  &models.AuthResponse{User: user},
		profileErr: errors.New("server error"),
	}
	p := NewProvider(api)
	require.True(t, p.Login(context.Background(), validCredentials()).Success)

	result := p.UpdateProfile(context.Background(), models.ProfileUpdate{Email: "new@example.com"})
	assert.False(t, result.Success)
	assert.Equal(t, user, p.User(), "failed update leaves the current identity intact")
}

func TestUpdateProfileSuccessReplacesUser(t *testing.T) {
	user := &models.User{ID: "1", Username: "alice"}
	updated := &models.User{ID: "1", Username: "alice", Email: "new@example.com"}
	api := &fakeAPI{
		loginResp:   &models.AuthResponse{User: user},
		profileResp: updated,
	}
	p := NewProvider(api)
	require.True(t, p.Login(context.Background(), validCredentials()).Success)

	result := p.UpdateProfile(context.Background(), models.ProfileUpdate{Email: "new@example.com"})
	require.True(t, result.Success)
	assert.Equal(t, updated, p.User())
}

func TestClearError(t *testing.T) {
	api := &fakeAPI{loginErr: errors.New("Invalid credentials.")}
	p := NewProvider(api)

	p.Login(context.Background(), validCredentials())
	require.NotEmpty(t, p.LastError())

	p.ClearError()
	assert.Empty(t, p.LastError())
}
