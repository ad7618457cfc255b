// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// ResetTicket is the short-lived proof that a user passed OTP verification.
//
// It is issued by the verify step, carried between the verify and set
// steps in an HttpOnly cookie, and consumed by the set step. The OTP claim
// binds the ticket to the exact code that was verified, so once that code is
// cleared from the user record the ticket can no longer be used.
type ResetTicket struct {
	jwt.RegisteredClaims

	// OTP is the code that was verified.
	OTP int `json:"otp"`

	// SignedString is the compact JWS representation of the ticket.
	SignedString string `json:"-"`
}

// UserID returns the subject claim, which holds the user id.
func (t ResetTicket) UserID() string {
	return t.Subject
}

// String returns the compact JWS serialization of the ticket.
func (t ResetTicket) String() string {
	return t.SignedString
}
