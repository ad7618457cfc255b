// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrNoUserInContext is returned when a protected handler runs without
	// the session middleware having resolved a user.
	ErrNoUserInContext = errors.New("no authenticated user in request context")

	// ErrInvalidForm is returned when a request body cannot be parsed as a
	// form or a required form value is malformed.
	ErrInvalidForm = errors.New("invalid form submitted")

	// ErrOAuthStateMismatch is returned when the OAuth callback carries a
	// state that does not match the signed state cookie.
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")

	// ErrPageNotFound is rendered for unknown routes.
	ErrPageNotFound = errors.New("page not found")
)
