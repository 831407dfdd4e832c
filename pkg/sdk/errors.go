package rankdex

import "github.com/kailas-cloud/rankdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEmptyInput            = domain.ErrEmptyInput
	ErrMalformedMatrix       = domain.ErrMalformedMatrix
	ErrDimensionMismatch     = domain.ErrDimensionMismatch
	ErrInvalidParameter      = domain.ErrInvalidParameter
	ErrDegenerateComputation = domain.ErrDegenerateComputation
	ErrUnknownMethod         = domain.ErrUnknownMethod
	ErrNotFound              = domain.ErrNotFound
	ErrTooLarge              = domain.ErrTooLarge
)

// MethodError names the ranking method that failed. Use errors.As() to extract it.
type MethodError = domain.MethodError
