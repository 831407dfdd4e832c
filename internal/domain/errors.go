package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput signals a matrix with zero rows or zero columns.
	ErrEmptyInput = errors.New("empty input")
	// ErrMalformedMatrix signals unequal row lengths or a cell that is not a finite number.
	ErrMalformedMatrix = errors.New("malformed matrix")
	// ErrDimensionMismatch signals per-criterion parameters whose length differs from the criteria count.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrInvalidParameter signals a parameter value outside its domain (negative weight, v outside [0,1]).
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDegenerateComputation signals a zero division that has no documented substitution.
	ErrDegenerateComputation = errors.New("degenerate computation")
	// ErrUnknownMethod signals a method name outside the supported set.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrNotFound signals a missing or expired evaluation.
	ErrNotFound = errors.New("not found")
	// ErrTooLarge signals a matrix above the configured size limits.
	ErrTooLarge = errors.New("input too large")
)

// KeyPrefix namespaces every key rankdex writes to the key-value store.
const KeyPrefix = "rankdex:"

// MethodError qualifies a failure with the ranking method that produced it.
type MethodError struct {
	Method string
	Err    error
}

func (e *MethodError) Error() string { return e.Method + ": " + e.Err.Error() }

func (e *MethodError) Unwrap() error { return e.Err }

// NewMethodError wraps err with the method name. A nil err stays nil.
func NewMethodError(method string, err error) error {
	if err == nil {
		return nil
	}
	var me *MethodError
	if errors.As(err, &me) && me.Method == method {
		return err
	}
	return &MethodError{Method: method, Err: err}
}

// Errorf builds an error that wraps sentinel with a formatted detail message.
func Errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
