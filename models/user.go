// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Default avatar paths served from the static directory. A user whose
// Avatar.FileID is empty is using the default placeholder.
const (
	DefaultAvatarURL          = "/images/default.png"
	DefaultAvatarThumbnailURL = "/images/default.png"
)

// User represents an account entity used for authentication and for owning
// expense records.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the immutable UUIDv7 identifier generated at creation.
	ID string `json:"id"`

	// Username is the display/login name, 3 to 20 characters, unique.
	Username string `json:"username"`

	// Email is the lowercased, unique e-mail address.
	Email string `json:"email"`

	// PasswordHash is a bcrypt hash of the user's password. It is empty for
	// accounts created through an external identity provider.
	PasswordHash string `json:"-"`

	// Avatar references the user's profile image in the asset store.
	Avatar Avatar `json:"avatar"`

	// ExpenseIDs lists the ids of owned expenses in creation order.
	ExpenseIDs []string `json:"expense_ids"`

	// OTP is the pending password-recovery code, if any.
	OTP *int `json:"-"`

	// OTPExpiry is the instant after which OTP is no longer accepted.
	OTPExpiry *time.Time `json:"-"`

	// OTPAttempts counts failed verifications of the current OTP.
	OTPAttempts int `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasPassword reports whether the account can sign in with local credentials.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

// OTPValidAt reports whether code matches the stored OTP and the OTP has
// not expired at now. An absent OTP never matches.
func (u User) OTPValidAt(code int, now time.Time) bool {
	if u.OTP == nil || u.OTPExpiry == nil {
		return false
	}
	return *u.OTP == code && now.Before(*u.OTPExpiry)
}

// Avatar is the structured reference to a user's profile image.
type Avatar struct {
	// FileID is the asset store key. Empty for the default placeholder.
	FileID       string `json:"file_id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// DefaultAvatar returns the placeholder avatar assigned to new users.
func DefaultAvatar() Avatar {
	return Avatar{
		URL:          DefaultAvatarURL,
		ThumbnailURL: DefaultAvatarThumbnailURL,
	}
}

// IsDefault reports whether the avatar is the static placeholder, which
// has no remote asset behind it.
func (a Avatar) IsDefault() bool {
	return a.FileID == ""
}

// Credentials is the sign-in form: Login is a username or an e-mail.
type Credentials struct {
	Login    string
	Password string
}

// SignupForm carries the fields accepted by local account creation.
type SignupForm struct {
	Username string
	Email    string
	Password string
}

// ProfileUpdate is the allow-list of fields a user may change on their own
// profile. Nothing outside this struct is ever written by a profile update.
type ProfileUpdate struct {
	Username string
	Email    string
}

// PasswordChange is the authenticated password change form.
type PasswordChange struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}
