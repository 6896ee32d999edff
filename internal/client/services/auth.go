// Package services contains the application services of the MedKeeper client.
// This file defines the session manager: login, logout, restore at start-up,
// forced expiry and signup. It is the only writer of the stored credentials.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medkeeper/internal/client/client"
	"github.com/dmitrijs2005/medkeeper/internal/client/credentials"
	"github.com/dmitrijs2005/medkeeper/internal/client/models"
	"github.com/dmitrijs2005/medkeeper/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/medkeeper/internal/logging"
)

// AuthService defines the session operations the CLI needs.
//
// Contract:
//   - Login: verify credentials with the store, then persist them.
//   - Logout: best-effort store logout, then always clear local state.
//   - Restore: rebuild the session from storage, verified by the store.
//   - Expire: tear down a session the store stopped accepting.
//   - Signup: validate locally, then create the account on the store.
//
// Memory and storage are updated together on every transition.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Logout(ctx context.Context)
	Restore(ctx context.Context) models.Session
	Expire(ctx context.Context)
	Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error)
	AuthHeader() (string, bool)
	Current() models.Session
	Close(ctx context.Context) error
}

// SessionManager is the AuthService backed by the store client and the
// local credentials repository. Not safe for concurrent use.
type SessionManager struct {
	client  client.Client
	repo    sessions.Repository
	logger  logging.Logger
	session models.Session
}

var _ AuthService = (*SessionManager)(nil)

func NewSessionManager(c client.Client, repo sessions.Repository, logger logging.Logger) *SessionManager {
	return &SessionManager{
		client:  c,
		repo:    repo,
		logger:  logger.With("component", "session"),
		session: models.AnonymousSession(),
	}
}

func (m *SessionManager) Current() models.Session {
	return m.session
}

// AuthHeader returns the Authorization header value while authenticated.
func (m *SessionManager) AuthHeader() (string, bool) {
	if !m.session.IsAuthenticated() {
		return "", false
	}
	return credentials.Header(m.session.Token), true
}

// Login makes exactly one verification call. The session becomes
// AUTHENTICATED only after the credentials are durably stored.
func (m *SessionManager) Login(ctx context.Context, username, password string) (*models.Session, error) {
	token := credentials.Encode(username, password)

	if err := m.client.Login(ctx, token); err != nil {
		switch {
		case errors.Is(err, client.ErrUnauthorized):
			m.logger.Info(ctx, "login rejected", "username", username)
			return nil, ErrInvalidCredentials
		case errors.Is(err, client.ErrUnavailable):
			return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
		default:
			m.logger.Warn(ctx, "login failed", "username", username, "error", err)
			return nil, fmt.Errorf("%w: %w", ErrLoginFailed, err)
		}
	}

	if err := m.repo.Save(context.WithoutCancel(ctx), models.StoredCredentials{Username: username, Token: token}); err != nil {
		m.logger.Error(ctx, "could not persist session", "error", err)
		return nil, fmt.Errorf("persist session: %w", err)
	}

	m.session = models.Session{Username: username, Token: token, Status: models.StatusAuthenticated}
	m.logger.Info(ctx, "logged in", "username", username)

	s := m.session
	return &s, nil
}

// Logout never fails locally: the store call is best effort and the local
// session is cleared regardless of its outcome.
func (m *SessionManager) Logout(ctx context.Context) {
	if m.session.Token != "" {
		if err := m.client.Logout(ctx, m.session.Token); err != nil {
			m.logger.Warn(ctx, "store logout failed", "error", err)
		}
	}
	m.reset(ctx)
	m.logger.Info(ctx, "logged out")
}

// Restore returns AUTHENTICATED only when stored credentials exist and the
// store confirms them. Every other outcome clears storage.
func (m *SessionManager) Restore(ctx context.Context) models.Session {
	creds, err := m.repo.Load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "discarding stored session", "error", err)
		m.reset(ctx)
		return m.session
	}
	if creds == nil {
		m.session = models.AnonymousSession()
		return m.session
	}

	ok, err := m.client.Status(ctx, creds.Token)
	if err != nil || !ok {
		m.logger.Info(ctx, "stored session not accepted", "username", creds.Username, "error", err)
		m.reset(ctx)
		return m.session
	}

	m.session = models.Session{Username: creds.Username, Token: creds.Token, Status: models.StatusAuthenticated}
	m.logger.Info(ctx, "session restored", "username", creds.Username)
	return m.session
}

// Expire is called when an authenticated call came back 401.
func (m *SessionManager) Expire(ctx context.Context) {
	if m.session.Status == models.StatusAuthenticated {
		m.session.Status = models.StatusExpired
		m.logger.Info(ctx, "session expired", "username", m.session.Username)
	}
	m.Logout(ctx)
}

// Signup validates req first and does not touch the network when it fails.
func (m *SessionManager) Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := m.client.Signup(ctx, req)
	if err != nil {
		var se *client.StatusError
		switch {
		case errors.Is(err, client.ErrUnavailable):
			return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
		case errors.As(err, &se) && se.Message != "":
			return nil, &SignupRejectedError{Message: se.Message}
		default:
			m.logger.Warn(ctx, "signup failed", "username", req.Username, "error", err)
			return nil, fmt.Errorf("%w: %w", ErrSignupFailed, err)
		}
	}

	if !resp.Success {
		if resp.Message != "" {
			return nil, &SignupRejectedError{Message: resp.Message}
		}
		return nil, ErrSignupFailed
	}

	m.logger.Info(ctx, "account created", "username", req.Username)
	return resp, nil
}

func (m *SessionManager) Close(ctx context.Context) error {
	return m.client.Close()
}

// reset clears storage and memory. Storage is cleared even when ctx is
// already cancelled. A storage failure is logged; the in-memory session is
// anonymous either way.
func (m *SessionManager) reset(ctx context.Context) {
	if err := m.repo.Clear(context.WithoutCancel(ctx)); err != nil {
		m.logger.Error(ctx, "could not clear stored session", "error", err)
	}
	m.session = models.AnonymousSession()
}
