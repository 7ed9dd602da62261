package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
)

// Login authenticates with email/password. On success the returned token
// pair is persisted in the token store before the call returns, so follow-up
// requests are authenticated immediately.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	res, err := decodeData[models.LoginResult](env)
	if err != nil {
		return nil, err
	}
	if c.tokens != nil && res.AccessToken != "" {
		if err := c.tokens.SetTokens(ctx, res.AccessToken, res.RefreshToken); err != nil {
			return nil, fmt.Errorf("persist session tokens: %w", err)
		}
	}
	return &res, nil
}

// Logout ends the backend session and drops the stored tokens. The local
// tokens are cleared even when the backend call fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if c.tokens != nil {
		if clearErr := c.tokens.Clear(ctx); clearErr != nil && err == nil {
			err = clearErr
		}
	}
	return err
}

// ChangePassword rotates the current user's password.
func (c *HTTPClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/change-password", nil,
		map[string]string{"oldPassword": oldPassword, "newPassword": newPassword})
	return err
}

// ForgotPassword triggers the reset-link email.
func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/forgot-password", nil,
		map[string]string{"email": email})
	return err
}

// ResetPassword completes a password reset started by ForgotPassword.
func (c *HTTPClient) ResetPassword(ctx context.Context, password, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/reset-password", nil,
		map[string]string{"password": password, "token": token})
	return err
}

// SendOTP mails a one-time verification code.
func (c *HTTPClient) SendOTP(ctx context.Context, name, email string) error {
	body := map[string]string{"email": email}
	if name != "" {
		body["name"] = name
	}
	_, err := c.do(ctx, http.MethodPost, "/otp/send", nil, body)
	return err
}

// VerifyOTP confirms the code and marks the account verified.
func (c *HTTPClient) VerifyOTP(ctx context.Context, email, otp string) error {
	_, err := c.do(ctx, http.MethodPost, "/otp/verify", nil,
		map[string]string{"email": email, "otp": otp})
	return err
}
