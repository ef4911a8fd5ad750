package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/assettrack/pkg/apperr"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Kind    apperr.Kind `json:"kind"`
	Message string      `json:"message"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to its status and writes the error body. Backend
// failures never leak their cause to the caller.
func WriteError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	msg := apperr.UserMessage(err)
	if kind == apperr.KindBackend {
		msg = "internal error"
	}
	WriteJSON(w, apperr.HTTPStatus(kind), ErrorBody{Error: ErrorDetail{Kind: kind, Message: msg}})
}

// PathUUID parses the named mux variable as a UUID.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, apperr.Invalidf("path", "Identificador no válido: %s", name)
	}
	return id, nil
}
