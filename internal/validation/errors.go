package validation

import "errors"

// ErrValidation is the kind shared by every error this package returns.
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidEnumValue = errors.New("invalid enum value")
	ErrInvalidIPAddress = errors.New("invalid IP address")
	ErrInvalidPort      = errors.New("invalid port")
	ErrInvalidName      = errors.New("invalid name")
	ErrPortRequired     = errors.New("port required")
	ErrPortForbidden    = errors.New("port forbidden")
)

// Error describes a rejected input. It matches both its specific sentinel
// and ErrValidation under errors.Is.
type Error struct {
	Field string
	Err   error
	Msg   string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

func (e *Error) Unwrap() []error {
	return []error{e.Err, ErrValidation}
}

func newError(sentinel error, msg string) *Error {
	return &Error{Err: sentinel, Msg: msg}
}

// withField tags err with the request field it came from.
func withField(err error, field string) error {
	var verr *Error
	if errors.As(err, &verr) && verr.Field == "" {
		return &Error{Field: field, Err: verr.Err, Msg: verr.Msg}
	}
	return err
}
