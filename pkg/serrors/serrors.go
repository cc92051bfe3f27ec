// Package serrors provides coded errors for the roster core.
//
// Codes follow a prefix convention:
//
//	CONFIG_*       — programming defects (unknown transition, missing repository);
//	                 fatal, never retried.
//	VALIDATION_*   — business-rule failures; surfaced to the caller and abort
//	                 the enclosing transaction.
//	COMPENSATION_* — best-effort rollback failures; logged and swallowed.
package serrors

import (
	"errors"
	"fmt"
	"strings"
)

type BaseError struct {
	Code    string
	Message string
	Details string
}

func NewError(code, message, details string) *BaseError {
	return &BaseError{Code: code, Message: message, Details: details}
}

func (e *BaseError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on code so wrapped instances compare equal to their sentinel.
func (e *BaseError) Is(target error) bool {
	var be *BaseError
	if !errors.As(target, &be) {
		return false
	}
	return e.Code == be.Code
}

// WithDetails returns a copy carrying extra context, preserving the code.
func (e *BaseError) WithDetails(format string, args ...any) *BaseError {
	return &BaseError{Code: e.Code, Message: e.Message, Details: fmt.Sprintf(format, args...)}
}

func Code(err error) string {
	var be *BaseError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

func IsConfiguration(err error) bool { return strings.HasPrefix(Code(err), "CONFIG_") }
func IsValidation(err error) bool    { return strings.HasPrefix(Code(err), "VALIDATION_") }
func IsCompensation(err error) bool  { return strings.HasPrefix(Code(err), "COMPENSATION_") }
