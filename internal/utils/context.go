// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, cookie signing,
// password hashing, one-time codes, HTTP response writing, HTTP client
// initialization, and reset ticket generation and validation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated user identifier
// in the context. The session middleware writes it; handlers read it through
// GetUserIDFromContext.
var UserIDCtxKey = contextKey("userID")

// SessionIDCtxKey is the key used to store the current session id so that
// sign-out and account deletion can destroy it.
var SessionIDCtxKey = contextKey("sessionID")

// WithUserID returns a copy of ctx carrying the user and session ids.
func WithUserID(ctx context.Context, userID, sessionID string) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	return context.WithValue(ctx, SessionIDCtxKey, sessionID)
}

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns ok == false when the value is missing, empty or of an unexpected
// type.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// GetSessionIDFromContext retrieves the session identifier from the context.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok && sessionID != ""
}
