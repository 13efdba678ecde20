package scheduling

import (
	"errors"
	"fmt"
)

// Error codes for the scheduling core. Handlers map these onto HTTP statuses;
// empty slot or candidate lists are ordinary results, not errors.
const (
	CodeValidation        = "validationError"
	CodeConflict          = "conflictError"
	CodeNotFound          = "notFoundError"
	CodeIllegalTransition = "illegalTransitionError"
)

// Error is a typed scheduling failure.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(format string, args ...interface{}) error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...interface{}) error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewIllegalTransitionError(format string, args ...interface{}) error {
	return &Error{Code: CodeIllegalTransition, Message: fmt.Sprintf(format, args...)}
}

func hasCode(err error, code string) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == code
}

func IsValidation(err error) bool        { return hasCode(err, CodeValidation) }
func IsConflict(err error) bool          { return hasCode(err, CodeConflict) }
func IsNotFound(err error) bool          { return hasCode(err, CodeNotFound) }
func IsIllegalTransition(err error) bool { return hasCode(err, CodeIllegalTransition) }
