package jsonmodel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/jsonmodel/i18n"
)

// Error codes carried by ValidationError.Code.
const (
	CodeRequired    = "required"
	CodeInvalidType = "invalid_type"
	CodeValidator   = "validator"
	CodeUnknownKey  = "unknown_key"
)

// Sentinels matched by ValidationError.Is, one per error code.
var (
	ErrMissingRequired = errors.New("jsonmodel: missing required field")
	ErrTypeMismatch    = errors.New("jsonmodel: type mismatch")
	ErrValidatorFailed = errors.New("jsonmodel: validator failed")
	ErrUnknownKey      = errors.New("jsonmodel: unknown key")
)

// ValidationError reports the first failure found while validating or
// reconstructing an instance.
type ValidationError struct {
	Path    Path
	Code    string // One of the codes listed above.
	Message string
	// Expected and Actual describe the shapes involved in a type mismatch.
	Expected string
	Actual   string
	// Cause is the error returned by a failing validator.
	Cause error
}

// Error renders e.g. "required at car.brand: field is required".
func (e *ValidationError) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Code)
	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(e.Path.String())
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Code == CodeInvalidType && e.Expected != "" {
		fmt.Fprintf(b, " (expected %s, got %s)", e.Expected, e.Actual)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the validator error, if any.
func (e *ValidationError) Unwrap() error { return e.Cause }

// Is matches the sentinel belonging to the error code.
func (e *ValidationError) Is(target error) bool {
	switch e.Code {
	case CodeRequired:
		return target == ErrMissingRequired
	case CodeInvalidType:
		return target == ErrTypeMismatch
	case CodeValidator:
		return target == ErrValidatorFailed
	case CodeUnknownKey:
		return target == ErrUnknownKey
	}
	return false
}

func missingRequired(p Path) *ValidationError {
	return &ValidationError{Path: p, Code: CodeRequired, Message: i18n.T(CodeRequired, nil)}
}

func typeMismatch(p Path, expected, actual string) *ValidationError {
	return &ValidationError{Path: p, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Expected: expected, Actual: actual}
}

func validatorFailure(p Path, cause error) *ValidationError {
	return &ValidationError{Path: p, Code: CodeValidator, Message: i18n.T(CodeValidator, nil), Cause: cause}
}

// AsValidationError extracts a *ValidationError from err using errors.As.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// DeclarationError reports an invalid model declaration. It is raised while
// building a Model and never by validation.
type DeclarationError struct {
	Model  string
	Field  string
	Reason string
}

func (e *DeclarationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("jsonmodel: model %q: %s", e.Model, e.Reason)
	}
	return fmt.Sprintf("jsonmodel: model %q field %q: %s", e.Model, e.Field, e.Reason)
}
