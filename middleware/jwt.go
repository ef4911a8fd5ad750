// auth/jwt.go
package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"p9e.in/assettrack/models"
	"p9e.in/assettrack/pkg/apperr"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 24 * time.Hour

// Claims are the custom payload in the session JWT
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// unexported type prevents collisions in context
type ctxKey int

const (
	userClaimsKey ctxKey = iota
)

// Tokens issues and verifies HS256 session tokens.
type Tokens struct {
	key []byte
	now func() time.Time
}

func NewTokens(secret string) *Tokens {
	return &Tokens{key: []byte(secret), now: time.Now}
}

// GenerateToken creates a signed JWT valid for 24 h
func (t *Tokens) GenerateToken(u *models.User) (string, error) {
	now := t.now()
	claims := Claims{
		UserID:   u.ID.String(),
		Username: u.Username,
		Name:     u.DisplayName(),
		Role:     string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.key)
}

// Parse validates tokenStr and returns its claims.
func (t *Tokens) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return t.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return nil, apperr.Wrap(apperr.KindNoSession, "jwt.Parse", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apperr.New(apperr.KindNoSession, "jwt.Parse", "invalid token claims")
	}
	return claims, nil
}

// JWTMiddleware validates the bearer token and stashes the Claims in ctx
func (t *Tokens) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			WriteError(w, apperr.New(apperr.KindNoSession, "jwt", "missing Authorization header"))
			return
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			WriteError(w, apperr.New(apperr.KindNoSession, "jwt", "invalid auth header"))
			return
		}

		claims, err := t.Parse(parts[1])
		if err != nil {
			WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole wraps a handler and ensures the JWT's role is one of roles
func RequireRole(roles []models.UserRole, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := models.UserRole(GetRole(r))
		if slices.Contains(roles, role) {
			next.ServeHTTP(w, r)
			return
		}
		WriteError(w, apperr.New(apperr.KindForbidden, "role", ""))
	})
}

// GetClaims pulls the *Claims out of the request context (or nil)
func GetClaims(r *http.Request) *Claims {
	if c, ok := r.Context().Value(userClaimsKey).(*Claims); ok {
		return c
	}
	return nil
}

// WithClaims returns ctx carrying c, for handlers mounted without the middleware.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, userClaimsKey, c)
}

// GetUserID returns the authenticated user's id, or uuid.Nil.
func GetUserID(r *http.Request) uuid.UUID {
	if c := GetClaims(r); c != nil {
		if id, err := uuid.Parse(c.UserID); err == nil {
			return id
		}
	}
	return uuid.Nil
}

func GetRole(r *http.Request) string {
	if c := GetClaims(r); c != nil {
		return c.Role
	}
	return ""
}
