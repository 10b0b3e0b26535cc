package services

import (
	"errors"

	"github.com/jouerflux/jouerflux/internal/repository"
)

// kindError is a sentinel that also matches a repository error kind.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newKindError(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}

// Messages are returned to API clients verbatim.
var (
	ErrFirewallNotFound = newKindError(repository.ErrNotFound, "Firewall not found")
	ErrPolicyNotFound   = newKindError(repository.ErrNotFound, "Policy not found")
	ErrRuleNotFound     = newKindError(repository.ErrNotFound, "Rule not found")

	ErrFirewallExists    = newKindError(repository.ErrConflict, "Firewall with this name already exists.")
	ErrPolicyExists      = newKindError(repository.ErrConflict, "Policy with this name already exists.")
	ErrAlreadyAssociated = newKindError(repository.ErrConflict, "Policy already associated with firewall")
	ErrNotAssociated     = newKindError(repository.ErrConflict, "Policy not associated with firewall")
)

// replaceKind swaps a bare repository kind for the entity specific sentinel.
// Persistence failures pass through unchanged.
func replaceKind(err, notFound, conflict error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, repository.ErrNotFound):
		return notFound
	case conflict != nil && errors.Is(err, repository.ErrConflict):
		return conflict
	default:
		return err
	}
}
