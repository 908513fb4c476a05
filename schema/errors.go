package schema

import (
	"errors"
	"fmt"
)

// EvalError is a typed evaluation failure. Every error surfaced by the
// engine is one of these so callers can switch on Kind.
type EvalError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewEvalError builds an EvalError with a formatted message.
func NewEvalError(kind ErrorKind, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from err. Errors that did not originate in
// the engine are reported as ParseError so that callers always see a kind
// from the fixed taxonomy.
func KindOf(err error) ErrorKind {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return ParseError
}

// AsItemError converts err into an ItemError for the given batch position.
// A missing expression is recorded as "unknown" for diagnosability.
func AsItemError(index int, expression string, err error) ItemError {
	if expression == "" {
		expression = "unknown"
	}
	var ee *EvalError
	if errors.As(err, &ee) {
		return ItemError{Index: index, Expression: expression, Kind: ee.Kind, Message: ee.Message}
	}
	return ItemError{Index: index, Expression: expression, Kind: ParseError, Message: err.Error()}
}
