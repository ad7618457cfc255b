package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrPasswordMismatch    = errors.New("passwords do not match")

	ErrOTPInvalid         = errors.New("invalid otp or otp expired")
	ErrResetTicketInvalid = errors.New("password reset ticket is invalid or expired")

	ErrIdentityIncomplete  = errors.New("identity provider did not share a verified email address")
	ErrOAuthDisabled       = errors.New("oauth sign-in is not configured")
	ErrUsernameUnavailable = errors.New("no free username could be derived")

	// ErrUpstream wraps failures of the mail API, the asset store and the
	// identity provider.
	ErrUpstream = errors.New("upstream service failure")
)
