package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientHoldings indicates a sell or transfer asked for more units than the holding has.
var ErrInsufficientHoldings = errors.New("insufficient holdings")

// ErrArithmetic indicates an impossible calculation, such as deriving an implied rate with a zero divisor.
var ErrArithmetic = errors.New("arithmetic error")

// ErrRateUnavailable indicates a currency conversion was required but no exchange rate exists.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrConflict indicates a concurrent modification was detected at commit time.
// The engine never retries internally; callers must retry the whole operation.
var ErrConflict = errors.New("conflicting concurrent modification")

// ErrInternal indicates an unexpected failure that is not the caller's fault.
var ErrInternal = errors.New("internal error")
