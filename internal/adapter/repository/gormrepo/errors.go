package gormrepo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"vms-backend/internal/domain/apperr"
)

// translate maps driver errors onto the application error kinds.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(what + " not found")
	case isDuplicate(err):
		return apperr.Conflict(what + " already exists")
	}
	return apperr.Transient(what+": database error", err)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	// sqlite / mysql 1062
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
