package actions

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is wrapped by every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError reports the first invalid field of a request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Reasons shown to the user.
const (
	ReasonEmpty   = "must not be empty"
	ReasonPort    = "must be a valid port between 1 and 65535"
	ReasonForward = "must look like \"tag (src → dst)\""
)

var forwardEntry = regexp.MustCompile(`\((\d+)\s`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("label")
	})
	mustRegister(v, "port", func(fl validator.FieldLevel) bool {
		return IsPort(fl.Field().String())
	})
	mustRegister(v, "forward", func(fl validator.FieldLevel) bool {
		return forwardEntry.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// IsPort reports whether s is a decimal port number in [1, 65535].
func IsPort(s string) bool {
	if s == "" || len(s) > 5 {
		return false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		n = n*10 + int(r-'0')
	}
	return n >= 1 && n <= 65535
}

// Validate checks req and returns a *ValidationError for the first invalid
// field, in declaration order.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate %T: %w", req, err)
	}
	fe := fieldErrs[0]
	return &ValidationError{Field: fe.Field(), Reason: reason(fe.Tag())}
}

func reason(tag string) string {
	switch tag {
	case "port":
		return ReasonPort
	case "forward":
		return ReasonForward
	default:
		return ReasonEmpty
	}
}

// ForwardSource extracts the source port from a forward entry as listed in
// the remove dialogs, e.g. "db (5432 → 5432)" yields "5432".
func ForwardSource(entry string) (string, error) {
	m := forwardEntry.FindStringSubmatch(entry)
	if m == nil {
		return "", &ValidationError{Field: "Forward", Reason: ReasonForward}
	}
	return m[1], nil
}
