// handlers/auth.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"p9e.in/assettrack/middleware"
	"p9e.in/assettrack/models"
	"p9e.in/assettrack/pkg/apperr"
	"p9e.in/assettrack/pkg/services"
)

type AuthHandler struct {
	auth   *services.AuthService
	tokens *middleware.Tokens
	log    *zap.Logger
}

func NewAuthHandler(auth *services.AuthService, tokens *middleware.Tokens, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, log: log}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID       uuid.UUID       `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	FullName *string         `json:"full_name"`
	Phone    *string         `json:"phone"`
}

func toUserPayload(u *models.User) userPayload {
	return userPayload{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		FullName: u.FullName,
		Phone:    u.Phone,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, apperr.Invalidf("auth.Login", "JSON no válido"))
		return
	}

	user, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInvalidCredentials {
			h.log.Info("login rejected", zap.String("username", req.Username))
		} else {
			h.log.Error("login failed", zap.String("username", req.Username), zap.Error(err))
		}
		middleware.WriteError(w, err)
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		h.log.Error("couldn't create token", zap.Error(err))
		middleware.WriteError(w, apperr.Wrap(apperr.KindBackend, "auth.Login", err))
		return
	}

	h.log.Info("user logged in", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	middleware.WriteJSON(w, http.StatusOK, loginResp{Token: token, User: toUserPayload(user)})
}

// Me returns the user behind the bearer token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Me(r.Context(), middleware.GetUserID(r))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, toUserPayload(user))
}

// Logout only acknowledges; tokens are stateless and the client drops its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c := middleware.GetClaims(r); c != nil {
		h.log.Info("user logged out", zap.String("username", c.Username))
	}
	w.WriteHeader(http.StatusNoContent)
}
