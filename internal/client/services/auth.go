// Package services contains application services for the Qourio client.
// Services sit between the REST client and the CLI: they add caching with
// tag-based invalidation, input validation, and session handling, keeping the
// api package purely about transport.
package services

import (
	"context"
	"errors"

	"github.com/rashedul-dev/Qourio-client/internal/client/api"
	"github.com/rashedul-dev/Qourio-client/internal/client/guard"
	"github.com/rashedul-dev/Qourio-client/internal/client/models"
	"github.com/rashedul-dev/Qourio-client/internal/client/query"
)

const keyCurrentUser = "user/me"

// AuthAPI is the slice of the REST client used by AuthService.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, in models.RegisterInput) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, password, token string) error
	SendOTP(ctx context.Context, name, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
}

// SessionPrefs is the slice of the session store used by AuthService. Token
// persistence itself happens inside the REST client via its TokenStore.
type SessionPrefs interface {
	RememberedEmail(ctx context.Context) (string, error)
	SetRememberedEmail(ctx context.Context, email string) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate and remember the email for the next run.
//   - Register: create a sender/receiver account; the account still needs
//     OTP verification before it can log in.
//   - Logout: end the backend session and drop all cached query results.
//   - Session: resolve the current session for route guards.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
	Register(ctx context.Context, in models.RegisterInput) (*models.User, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (guard.Session, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	RememberedEmail(ctx context.Context) string
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, password, token string) error
	SendOTP(ctx context.Context, name, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
}

type authService struct {
	api   AuthAPI
	cache *query.Cache
	prefs SessionPrefs
}

// NewAuthService constructs an AuthService bound to the given API client,
// query cache, and session preferences. prefs may be nil.
func NewAuthService(api AuthAPI, cache *query.Cache, prefs SessionPrefs) AuthService {
	return &authService{api: api, cache: cache, prefs: prefs}
}

// Login authenticates against the backend. Token persistence happens inside
// the REST client. A still-unverified account surfaces api.ErrUserNotVerified;
// the caller is expected to fall through to the OTP flow.
func (a *authService) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if a.prefs != nil {
		_ = a.prefs.SetRememberedEmail(ctx, email)
	}
	a.cache.Invalidate(query.TagUser)
	return res, nil
}

func (a *authService) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return a.api.Register(ctx, in)
}

// Logout ends the backend session and wipes every cached query; nothing from
// the previous user may survive into the next session.
func (a *authService) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	a.cache.Reset()
	return err
}

// CurrentUser returns the signed-in user's profile, served from cache while
// fresh.
func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return query.Fetch(ctx, a.cache, keyCurrentUser, []query.Tag{query.TagUser},
		func(ctx context.Context) (*models.User, error) {
			return a.api.Me(ctx)
		})
}

// Session resolves the current session for the route guards. An unauthorized
// profile fetch means no session (anonymous); transport failures leave the
// session unresolved and return the error alongside a pending state.
func (a *authService) Session(ctx context.Context) (guard.Session, error) {
	u, err := a.CurrentUser(ctx)
	switch {
	case err == nil:
		return guard.Session{State: guard.SessionActive, User: u}, nil
	case errors.Is(err, api.ErrUnauthorized):
		return guard.Session{State: guard.SessionAnonymous}, nil
	default:
		return guard.Session{State: guard.SessionPending}, err
	}
}

func (a *authService) RememberedEmail(ctx context.Context) string {
	if a.prefs == nil {
		return ""
	}
	email, err := a.prefs.RememberedEmail(ctx)
	if err != nil {
		return ""
	}
	return email
}

func (a *authService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return a.api.ChangePassword(ctx, oldPassword, newPassword)
}

func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	return a.api.ForgotPassword(ctx, email)
}

func (a *authService) ResetPassword(ctx context.Context, password, token string) error {
	return a.api.ResetPassword(ctx, password, token)
}

func (a *authService) SendOTP(ctx context.Context, name, email string) error {
	return a.api.SendOTP(ctx, name, email)
}

func (a *authService) VerifyOTP(ctx context.Context, email, otp string) error {
	return a.api.VerifyOTP(ctx, email, otp)
}
