package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIsMatchesOnKind(t *testing.T) {
	err := fmt.Errorf("save: %w", New(KindMissingSignature, "inspection.save", "firma vacía"))

	assert.True(t, errors.Is(err, ErrMissingSignature))
	assert.False(t, errors.Is(err, ErrNoSession))
	assert.Equal(t, KindMissingSignature, KindOf(err))
}

func TestKindOfUntypedIsBackend(t *testing.T) {
	assert.Equal(t, KindBackend, KindOf(errors.New("connection refused")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"backend", Wrap(KindBackend, "op", errors.New("boom")), true},
		{"untyped", errors.New("boom"), true},
		{"missing signature", ErrMissingSignature, false},
		{"invalid credentials", ErrInvalidCredentials, false},
		{"not found", ErrNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Retryable(tt.err))
		})
	}
}

func TestHTTPStatusRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindNoSession, KindForbidden, KindNotFound, KindInvalid, KindBackend} {
		assert.Equal(t, k, KindFromStatus(HTTPStatus(k)), "kind %s", k)
	}
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(KindMissingSignature))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(KindInvalidCredentials))
}

func TestErrorString(t *testing.T) {
	err := Wrap(KindBackend, "assets.list", errors.New("timeout"))
	assert.Equal(t, "assets.list: backend_error: timeout", err.Error())

	err = New(KindInvalid, "", "tension inválida")
	assert.Equal(t, "tension inválida", err.Error())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Debe firmar la inspección antes de guardar", UserMessage(ErrMissingSignature))
	assert.Equal(t, "observaciones demasiado largas", UserMessage(Invalidf("op", "observaciones demasiado largas")))
	assert.Contains(t, UserMessage(errors.New("x")), "intente nuevamente")
	assert.Contains(t, UserMessage(Wrap(KindBackend, "op", errors.New("timeout"))), "intente nuevamente")
	assert.Equal(t, "No se pudo completar la operación", UserMessage(New(Kind("conflict"), "op", "")))
	assert.Empty(t, UserMessage(nil))
}
