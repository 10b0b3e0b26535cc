// Package validation holds the pure input checks applied before anything
// touches the database. Nothing here has side effects.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"net/netip"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jouerflux/jouerflux/internal/models"
)

const (
	MinPort       = 0
	MaxPort       = 65535
	MaxNameLength = 100
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("entityname", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ParseAction converts value into an Action using an exact, case-sensitive match.
func ParseAction(value string) (models.Action, error) {
	for _, a := range models.Actions() {
		if string(a) == value {
			return a, nil
		}
	}
	return "", invalidEnum(value, models.Actions())
}

// ParseProtocol converts value into a Protocol using an exact, case-sensitive match.
func ParseProtocol(value string) (models.Protocol, error) {
	for _, p := range models.Protocols() {
		if string(p) == value {
			return p, nil
		}
	}
	return "", invalidEnum(value, models.Protocols())
}

func invalidEnum[T ~string](value string, legal []T) error {
	names := make([]string, len(legal))
	for i, v := range legal {
		names[i] = string(v)
	}
	return newError(ErrInvalidEnumValue,
		fmt.Sprintf("invalid value '%s', valid values are: %s", value, strings.Join(names, ", ")))
}

// ValidateIP accepts any IPv4 or IPv6 literal and returns its canonical
// string form (dotted quad, or compressed IPv6).
func ValidateIP(text string) (string, error) {
	if err := validate.Var(text, "required,ip"); err != nil {
		return "", newError(ErrInvalidIPAddress, fmt.Sprintf("'%s' is not a valid IPv4 or IPv6 address", text))
	}
	addr, err := netip.ParseAddr(text)
	if err != nil {
		return "", newError(ErrInvalidIPAddress, fmt.Sprintf("'%s' is not a valid IPv4 or IPv6 address", text))
	}
	return addr.String(), nil
}

// ValidatePort accepts integers in [0, 65535]. JSON numbers arrive as
// float64 or json.Number and are accepted only when integral.
func ValidatePort(value any) (int, error) {
	n, ok := toInteger(value)
	if !ok {
		return 0, newError(ErrInvalidPort, fmt.Sprintf("port must be an integer, got %v", value))
	}
	if n < MinPort || n > MaxPort {
		return 0, newError(ErrInvalidPort, fmt.Sprintf("port %d out of range %d-%d", n, MinPort, MaxPort))
	}
	return int(n), nil
}

func toInteger(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float32:
		return floatToInteger(float64(v))
	case float64:
		return floatToInteger(v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}

func floatToInteger(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < -(1<<63) || f >= 1<<63 {
		return 0, false
	}
	return int64(f), true
}

// ValidateName accepts 1 to 100 characters from [A-Za-z0-9_-] and returns
// the name unchanged.
func ValidateName(text string) (string, error) {
	if text == "" {
		return "", newError(ErrInvalidName, "name cannot be empty")
	}
	if err := validate.Var(text, fmt.Sprintf("min=1,max=%d,entityname", MaxNameLength)); err != nil {
		return "", newError(ErrInvalidName,
			fmt.Sprintf("name must be 1-%d characters of letters, digits, '_' or '-'", MaxNameLength))
	}
	return text, nil
}
