package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrConflict    = errors.New("record conflicts with existing data")
	ErrPersistence = errors.New("persistence failure")

	// ErrInvalidQuery means a caller passed a non-positive page or page size.
	ErrInvalidQuery = errors.New("page and page size must be positive")
)

// isKind reports whether err already carries one of the package kinds.
func isKind(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrPersistence) ||
		errors.Is(err, ErrInvalidQuery)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
