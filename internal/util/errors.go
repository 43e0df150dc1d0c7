// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrAlreadyExists       = errors.New("account already exists")
	ErrQuotaExceeded       = errors.New("daily claim quota exceeded")
	ErrInsufficientBalance = errors.New("accrued balance below claimable threshold")
)

// IsError reports whether target appears in err's chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
