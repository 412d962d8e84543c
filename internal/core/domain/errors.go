package domain

import "errors"

// Sentinel errors shared across services. Every failure is scoped to a
// single request; none of these is fatal to the process.
var (
	// ErrUnauthorized is returned when the access resolver denies a read
	// or write. Ambiguous callers are always denied, never defaulted.
	ErrUnauthorized = errors.New("caller not authorized")

	// ErrValidation wraps all field-level validation failures.
	ErrValidation = errors.New("validation failed")

	// ErrPreconditionFailed is returned when a statement fetch is
	// attempted before both KYC numbers are saved on the profile.
	ErrPreconditionFailed = errors.New("kyc details missing from profile")

	// ErrFetchFailed covers network and parse failures on the external
	// statement source. It is the only retryable class.
	ErrFetchFailed = errors.New("statement fetch failed")
)
