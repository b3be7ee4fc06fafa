// services/identity.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Sentinel errors the auth controller maps onto distinct user messages.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
)

// IdentitySession is what a successful password sign-in yields.
type IdentitySession struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Email       string `json:"-"`
}

type identityError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"msg"`
}

// IdentityClient talks to the hosted identity provider (a GoTrue-compatible
// API). With no base URL configured the client runs in local mode: password
// sign-in succeeds without remote verification, which matches the behavior
// of a device that has never been pointed at a backend.
type IdentityClient struct {
	http *resty.Client
	log  *zap.Logger

	enabled bool
}

func NewIdentityClient(baseURL, apiKey string, log *zap.Logger) *IdentityClient {
	if log == nil {
		log = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("apikey", apiKey)

	return &IdentityClient{
		http:    client,
		log:     log,
		enabled: baseURL != "",
	}
}

// SignInWithPassword verifies credentials with the identity provider.
func (c *IdentityClient) SignInWithPassword(ctx context.Context, email, password string) (IdentitySession, error) {
	if !c.enabled {
		c.log.Debug("identity provider not configured, accepting sign-in locally",
			zap.String("email", email))
		return IdentitySession{Email: email}, nil
	}

	var session IdentitySession
	var apiErr identityError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&session).
		SetError(&apiErr).
		Post("/token?grant_type=password")
	if err != nil {
		return IdentitySession{}, fmt.Errorf("identity sign-in: %w", err)
	}
	if resp.IsError() {
		desc := apiErr.ErrorDescription
		if desc == "" {
			desc = apiErr.Message
		}
		if strings.Contains(strings.ToLower(desc), "not confirmed") {
			return IdentitySession{}, ErrEmailNotConfirmed
		}
		return IdentitySession{}, ErrInvalidCredentials
	}
	session.Email = email
	return session, nil
}

// SignUp creates a provider account for email. Depending on provider
// settings the account may require email confirmation before sign-in works.
func (c *IdentityClient) SignUp(ctx context.Context, email, password string) error {
	if !c.enabled {
		return nil
	}
	var apiErr identityError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetError(&apiErr).
		Post("/signup")
	if err != nil {
		return fmt.Errorf("identity sign-up: %w", err)
	}
	if resp.IsError() {
		desc := apiErr.ErrorDescription
		if desc == "" {
			desc = apiErr.Message
		}
		if desc == "" {
			desc = fmt.Sprintf("status %d", resp.StatusCode())
		}
		return fmt.Errorf("identity sign-up: %s", desc)
	}
	return nil
}

// SignInWithOtp requests a passwordless one-time code for email.
func (c *IdentityClient) SignInWithOtp(ctx context.Context, email string) error {
	if !c.enabled {
		return nil
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"email": email, "create_user": true}).
		Post("/otp")
	if err != nil {
		return fmt.Errorf("identity otp: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("identity otp: status %d", resp.StatusCode())
	}
	return nil
}

// ResetPasswordForEmail triggers the provider's recovery mail flow.
func (c *IdentityClient) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	if !c.enabled {
		return nil
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email}).
		SetQueryParam("redirect_to", redirectTo).
		Post("/recover")
	if err != nil {
		return fmt.Errorf("identity recover: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("identity recover: status %d", resp.StatusCode())
	}
	return nil
}

// UpdateUser sets a new password for the session holder.
func (c *IdentityClient) UpdateUser(ctx context.Context, accessToken, password string) error {
	if !c.enabled {
		return nil
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(map[string]string{"password": password}).
		Put("/user")
	if err != nil {
		return fmt.Errorf("identity update user: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("identity update user: status %d", resp.StatusCode())
	}
	return nil
}

// SignOut asks the provider to invalidate the session. Callers treat this as
// best effort; logout never fails locally because of it.
func (c *IdentityClient) SignOut(ctx context.Context, accessToken string) error {
	if !c.enabled {
		return nil
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Post("/logout")
	if err != nil {
		return fmt.Errorf("identity sign-out: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("identity sign-out: status %d", resp.StatusCode())
	}
	return nil
}
