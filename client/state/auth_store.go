// Package state holds the two client state containers: the authentication
// session and the inspection capture workflow. Both are mutated only from the
// UI update loop.
package state

import (
	"context"

	"go.uber.org/zap"
	"p9e.in/assettrack/client/session"
	"p9e.in/assettrack/pkg/apperr"
)

// Authenticator is the backend side of the session.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*session.User, string, error)
	Logout(ctx context.Context) error
	Restore(token string)
}

type AuthStore struct {
	auth  Authenticator
	store session.Store
	log   *zap.Logger

	User  *session.User
	Token string
}

func NewAuthStore(auth Authenticator, store session.Store, log *zap.Logger) *AuthStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthStore{auth: auth, store: store, log: log}
}

// IsAuthenticated is true while a token is held.
func (s *AuthStore) IsAuthenticated() bool {
	return s.Token != ""
}

// LoginResult is the backend answer to a login attempt.
type LoginResult struct {
	Username string
	User     *session.User
	Token    string
	Err      error
}

// Request asks the backend without touching the store, so it can run off
// the UI loop.
func (s *AuthStore) Request(ctx context.Context, username, password string) LoginResult {
	user, token, err := s.auth.Login(ctx, username, password)
	return LoginResult{Username: username, User: user, Token: token, Err: err}
}

// Complete applies a login result and persists the session. On failure the
// store is left signed out.
func (s *AuthStore) Complete(r LoginResult) error {
	if r.Err != nil {
		s.User, s.Token = nil, ""
		s.log.Info("login failed", zap.String("username", r.Username), zap.String("kind", string(apperr.KindOf(r.Err))))
		return r.Err
	}
	s.User, s.Token = r.User, r.Token
	if err := s.store.Save(session.Data{User: r.User, Token: r.Token}); err != nil {
		s.log.Warn("session not persisted", zap.Error(err))
	}
	s.log.Info("logged in", zap.String("username", r.User.Username))
	return nil
}

// Login authenticates and persists the session.
func (s *AuthStore) Login(ctx context.Context, username, password string) error {
	return s.Complete(s.Request(ctx, username, password))
}

// EndSession drops the session locally.
func (s *AuthStore) EndSession() error {
	s.User, s.Token = nil, ""
	return s.store.Clear()
}

// NotifyLogout tells the backend. Failures are only logged.
func (s *AuthStore) NotifyLogout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warn("logout request failed", zap.Error(err))
	}
}

// Logout clears the session locally even when the backend call fails.
func (s *AuthStore) Logout(ctx context.Context) error {
	s.NotifyLogout(ctx)
	return s.EndSession()
}

// CheckAuth restores the session saved by a previous run.
func (s *AuthStore) CheckAuth() error {
	d, err := s.store.Load()
	if err != nil {
		return err
	}
	s.User, s.Token = d.User, d.Token
	if s.Token != "" {
		s.auth.Restore(s.Token)
	}
	return nil
}
