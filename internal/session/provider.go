// Package session tracks the current authenticated identity. It owns the
// Session state exclusively; the cart store only observes the authenticated
// flag through Subscribe.
package session

import (
	"context"
	"sync"

	"github.com/carousell/ct-go/pkg/logger"
	"github.com/go-playground/validator/v10"

	"github.com/nguyentranbao-ct/storefront-core/internal/models"
)

// API is the slice of the gateway client the provider needs.
type API interface {
	CheckAuth(ctx context.Context) (*models.AuthCheck, error)
	Login(ctx context.Context, credentials models.Credentials) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error)
}

// Result is how auth operations report their outcome. Errors are carried as
// data, never raised to callers.
type Result struct {
	Success bool
	Error   string
}

type Provider interface {
	// CheckSession resolves the startup "identity unknown" state. Failures
	// are logged and leave the session unauthenticated; startup is never
	// blocked on them.
	CheckSession(ctx context.Context)
	Login(ctx context.Context, credentials models.Credentials) Result
	Register(ctx context.Context, req models.RegisterRequest) Result
	// Logout is unconditionally effective client-side, whether or not the
	// server call succeeds.
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) Result
	ClearError()

	User() *models.User
	Authenticated() bool
	// Loading is true while the startup session check is in flight:
	// "identity unknown yet", not "unauthenticated".
	Loading() bool
	LastError() string

	// Subscribe registers a callback fired after every genuine
	// authenticated/unauthenticated transition.
	Subscribe(fn func(authenticated bool))
}

type provider struct {
	mu       sync.Mutex
	api      API
	validate *validator.Validate
	log      *logger.Logger

	user    *models.User
	loading bool
	lastErr string
	subs    []func(bool)
}

func NewProvider(api API) Provider {
	return &provider{
		api:      api,
		validate: validator.New(),
		log:      logger.MustNamed("session"),
		loading:  true,
	}
}

func (p *provider) CheckSession(ctx context.Context) {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	check, err := p.api.CheckAuth(ctx)

	p.mu.Lock()
	p.loading = false
	if err != nil {
		p.log.Warnw("session check failed", "error", err)
		p.mu.Unlock()
		return
	}
	var notify bool
	if check.Authenticated && check.User != nil {
		notify = p.user == nil
		p.user = check.User
	}
	subs := p.subscribers()
	p.mu.Unlock()

	if notify {
		fanout(subs, true)
	}
}

func (p *provider) Login(ctx context.Context, credentials models.Credentials) Result {
	if err := p.validate.Struct(credentials); err != nil {
		return p.fail(models.NewValidationError("credentials", err.Error()).Error())
	}

	resp, err := p.api.Login(ctx, credentials)
	if err != nil {
		return p.fail(err.Error())
	}
	return p.adopt(resp.User, "login returned no user")
}

func (p *provider) Register(ctx context.Context, req models.RegisterRequest) Result {
	if err := p.validate.Struct(req); err != nil {
		return p.fail(models.NewValidationError("registration", err.Error()).Error())
	}

	resp, err := p.api.Register(ctx, req)
	if err != nil {
		return p.fail(err.Error())
	}
	return p.adopt(resp.User, "registration returned no user")
}

func (p *provider) Logout(ctx context.Context) {
	if err := p.api.Logout(ctx); err != nil {
		// Fail-open: a dead network must not leave the user looking
		// logged in.
		p.log.Warnw("server-side logout failed", "error", err)
	}

	p.mu.Lock()
	wasAuthenticated := p.user != nil
	p.user = nil
	p.lastErr = ""
	subs := p.subscribers()
	p.mu.Unlock()

	if wasAuthenticated {
		fanout(subs, false)
	}
}

func (p *provider) UpdateProfile(ctx context.Context, update models.ProfileUpdate) Result {
	if err := p.validate.Struct(update); err != nil {
		return p.fail(models.NewValidationError("profile", err.Error()).Error())
	}

	user, err := p.api.UpdateProfile(ctx, update)
	if err != nil {
		return p.fail(err.Error())
	}

	p.mu.Lock()
	p.user = user
	p.lastErr = ""
	p.mu.Unlock()
	return Result{Success: true}
}

func (p *provider) ClearError() {
	p.mu.Lock()
	p.lastErr = ""
	p.mu.Unlock()
}

func (p *provider) User() *models.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user
}

func (p *provider) Authenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user != nil
}

func (p *provider) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *provider) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *provider) Subscribe(fn func(authenticated bool)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

// adopt stores the identity returned by a successful auth call and notifies
// subscribers on a genuine guest-to-authenticated transition.
func (p *provider) adopt(user *models.User, missingMsg string) Result {
	if user == nil {
		return p.fail(missingMsg)
	}

	p.mu.Lock()
	notify := p.user == nil
	p.user = user
	p.lastErr = ""
	subs := p.subscribers()
	p.mu.Unlock()

	if notify {
		fanout(subs, true)
	}
	return Result{Success: true}
}

// fail records the error and reports it without touching identity state.
func (p *provider) fail(message string) Result {
	p.mu.Lock()
	p.lastErr = message
	p.mu.Unlock()
	return Result{Success: false, Error: message}
}

// subscribers returns a snapshot; callbacks run outside the lock so they
// can read provider state freely.
func (p *provider) subscribers() []func(bool) {
	subs := make([]func(bool), len(p.subs))
	copy(subs, p.subs)
	return subs
}

func fanout(subs []func(bool), authenticated bool) {
	for _, fn := range subs {
		fn(authenticated)
	}
}
