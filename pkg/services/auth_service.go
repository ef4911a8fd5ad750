package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"p9e.in/assettrack/models"
	"p9e.in/assettrack/pkg/apperr"
)

type AuthService struct {
	users UserRepository
}

func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Authenticate checks username and password. An unknown user and a wrong
// password fail the same way.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	const op = "auth.Authenticate"

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.New(apperr.KindInvalidCredentials, op, "")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.New(apperr.KindInvalidCredentials, op, "")
		}
		return nil, apperr.Wrap(apperr.KindBackend, op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.KindInvalidCredentials, op, "")
	}
	return user, nil
}

// Me resolves the user behind a session token subject.
func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.New(apperr.KindNoSession, "auth.Me", "user no longer exists")
		}
		return nil, err
	}
	return user, nil
}
