package domain

import "errors"

var (
	ErrQueryEmpty          = errors.New("query is empty")
	ErrQueryTooLong        = errors.New("query exceeds maximum length")
	ErrQueryInvalid        = errors.New("query contains disallowed characters")
	ErrUpstreamUnavailable = errors.New("upstream endpoint unavailable")
	ErrBadUpstreamResponse = errors.New("upstream response not in expected shape")
	ErrNotCached           = errors.New("query not present in cache")
)

// IsValidationError reports whether err is a client-side query problem,
// i.e. one that must be rejected before any network call is made.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrQueryEmpty) ||
		errors.Is(err, ErrQueryTooLong) ||
		errors.Is(err, ErrQueryInvalid)
}
