// Package repository implements the service repositories on top of gorm and
// PostgreSQL.
package repository

import (
	"errors"

	"gorm.io/gorm"
	"p9e.in/assettrack/pkg/apperr"
)

// translate maps gorm errors onto the shared error kinds.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.KindNotFound, op, "")
	}
	return apperr.Wrap(apperr.KindBackend, op, err)
}
