package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnavailable         = errors.New("upstream unavailable")
	ErrInternalServerError = errors.New("internal server error")

	// ErrRequestFailed is returned when the request never produced a response.
	ErrRequestFailed = errors.New("upstream request failed")

	// ErrAssetsDisabled is returned by the asset store when no bucket is configured.
	ErrAssetsDisabled = errors.New("avatar storage is not configured")

	// ErrOAuthExchange is returned when the authorization code is rejected.
	ErrOAuthExchange = errors.New("oauth code exchange failed")

	// ErrInvalidProfile is returned when the userinfo response cannot be decoded.
	ErrInvalidProfile = errors.New("invalid identity profile")
)
