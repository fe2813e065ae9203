package domain

import "errors"

var (
	ErrPackageNotFound   = errors.New("package not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrCompanyNotFound   = errors.New("company not found")
	ErrMessageNotFound   = errors.New("chat message not found")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrForbidden         = errors.New("role not allowed")
	ErrChatBusy          = errors.New("a suggestion request is already in flight")
	ErrInvalidTravelers  = errors.New("number of travelers must be at least 1")
	ErrPackageInactive   = errors.New("package is not available")
	ErrMissingCredential = errors.New("token missing from auth response")
	ErrAuthUnavailable   = errors.New("auth backend not configured")
)
