// Package apperr holds the error kinds shared by the backend and the terminal
// client. Every failure that crosses a component boundary carries one Kind so
// callers can tell precondition failures from backend failures.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindInvalidCredentials Kind = "invalid_credentials"
	KindMissingSignature   Kind = "missing_signature"
	KindNoSession          Kind = "no_session"
	KindBackend            Kind = "backend_error"
	KindNotFound           Kind = "not_found"
	KindInvalid            Kind = "invalid"
	KindForbidden          Kind = "forbidden"
)

// Sentinels usable with errors.Is. Matching is done on Kind only.
var (
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrMissingSignature   = &Error{Kind: KindMissingSignature}
	ErrNoSession          = &Error{Kind: KindNoSession}
	ErrBackend            = &Error{Kind: KindBackend}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInvalid            = &Error{Kind: KindInvalid}
	ErrForbidden          = &Error{Kind: KindForbidden}
)

type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Invalidf(op, format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the Kind carried by err. Errors without one are backend errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindBackend
}

// Retryable is true only for backend failures; precondition failures never
// succeed on a second attempt with the same input.
func Retryable(err error) bool {
	return err != nil && KindOf(err) == KindBackend
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidCredentials, KindNoSession:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindMissingSignature:
		return http.StatusUnprocessableEntity
	case KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// KindFromStatus is used by the client when the body carries no kind.
func KindFromStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindNoSession
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindInvalid
	default:
		return KindBackend
	}
}

// UserMessage is the single human-readable line shown at a UI boundary.
func UserMessage(err error) string {
	switch KindOf(err) {
	case "":
		return ""
	case KindInvalidCredentials:
		return "Usuario o contraseña incorrectos"
	case KindMissingSignature:
		return "Debe firmar la inspección antes de guardar"
	case KindNoSession:
		return "No hay usuario autenticado"
	case KindNotFound:
		return "No se encontró el registro solicitado"
	case KindForbidden:
		return "No tiene permisos para esta operación"
	case KindInvalid:
		var e *Error
		if errors.As(err, &e) && e.Msg != "" {
			return e.Msg
		}
		return "Datos no válidos"
	default:
		if Retryable(err) {
			return "Error al comunicarse con el servidor. Por favor, intente nuevamente."
		}
		return "No se pudo completar la operación"
	}
}
