// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/expense-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	jpegBytes = append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, 32)...)
	gifBytes  = append([]byte("GIF89a"), make([]byte, 32)...)
	textBytes = []byte("just some plain text, definitely not an image")
)

func validSignup() models.SignupForm {
	return models.SignupForm{Username: "alice", Email: "a@x.com", Password: "pw12345"}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestAccountValidator_Dispatch(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()
	signup := validSignup()

	assert.NoError(t, v.Validate(ctx, signup))
	assert.NoError(t, v.Validate(ctx, &signup))
	assert.NoError(t, v.Validate(ctx, models.Credentials{Login: "alice", Password: "pw"}))
	assert.NoError(t, v.Validate(ctx, models.ProfileUpdate{Username: "alice", Email: "a@x.com"}))
	assert.NoError(t, v.Validate(ctx, models.PasswordChange{OldPassword: "a", NewPassword: "b"}))
	assert.NoError(t, v.Validate(ctx, models.AvatarUpload{FileName: "me.png", Data: pngBytes}))
	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, models.ExpenseForm{}), ErrUnsupportedType)
}

// ---------------------------------------------------------------------------
// Signup
// ---------------------------------------------------------------------------

func TestAccountValidator_Signup(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(f *models.SignupForm)
		fields  []string
		wantErr error
	}{
		{name: "valid", modify: func(f *models.SignupForm) {}},
		{name: "username of 3 chars", modify: func(f *models.SignupForm) { f.Username = "bob" }},
		{name: "username of 20 chars", modify: func(f *models.SignupForm) { f.Username = strings.Repeat("a", 20) }},
		{name: "username of 2 chars", modify: func(f *models.SignupForm) { f.Username = "ab" }, wantErr: ErrInvalidUsername},
		{name: "username of 21 chars", modify: func(f *models.SignupForm) { f.Username = strings.Repeat("a", 21) }, wantErr: ErrInvalidUsername},
		{name: "multibyte username counts runes", modify: func(f *models.SignupForm) { f.Username = "ёжик" }},
		{name: "empty username", modify: func(f *models.SignupForm) { f.Username = "" }, wantErr: ErrInvalidUsername},
		{name: "username with at sign", modify: func(f *models.SignupForm) { f.Username = "bob@home" }, wantErr: ErrInvalidUsername},
		{name: "username that looks like an email", modify: func(f *models.SignupForm) { f.Username = "a@x.com" }, wantErr: ErrInvalidUsername},
		{name: "username with dot and dash", modify: func(f *models.SignupForm) { f.Username = "bob.home-1" }},
		{name: "email with dots and dashes", modify: func(f *models.SignupForm) { f.Email = "first.last-x@mail.example.com" }},
		{name: "email without at", modify: func(f *models.SignupForm) { f.Email = "ax.com" }, wantErr: ErrInvalidEmail},
		{name: "email with long tld", modify: func(f *models.SignupForm) { f.Email = "a@x.coffee" }, wantErr: ErrInvalidEmail},
		{name: "email without domain dot", modify: func(f *models.SignupForm) { f.Email = "a@localhost" }, wantErr: ErrInvalidEmail},
		{name: "empty email", modify: func(f *models.SignupForm) { f.Email = "" }, wantErr: ErrInvalidEmail},
		{name: "empty password", modify: func(f *models.SignupForm) { f.Password = "" }, wantErr: ErrEmptyPassword},
		{name: "scoped to username ignores bad email", modify: func(f *models.SignupForm) { f.Email = "bad" }, fields: []string{FieldUsername}},
		{name: "unknown field", modify: func(f *models.SignupForm) {}, fields: []string{"nope"}, wantErr: ErrUnknownField},
	}

	v := NewAccountValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validSignup()
			tt.modify(&form)

			err := v.Validate(context.Background(), form, tt.fields...)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// Credentials / ProfileUpdate / PasswordChange
// ---------------------------------------------------------------------------

func TestAccountValidator_Credentials(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.Credentials{Login: "   ", Password: "pw"}), ErrEmptyLogin)
	assert.ErrorIs(t, v.Validate(ctx, models.Credentials{Login: "alice"}), ErrEmptyPassword)
	assert.NoError(t, v.Validate(ctx, models.Credentials{Login: "A@X.com", Password: "pw"}))
}

func TestAccountValidator_ProfileUpdate(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.ProfileUpdate{Username: "al", Email: "a@x.com"}), ErrInvalidUsername)
	assert.ErrorIs(t, v.Validate(ctx, models.ProfileUpdate{Username: "bob@home", Email: "a@x.com"}), ErrInvalidUsername)
	assert.ErrorIs(t, v.Validate(ctx, models.ProfileUpdate{Username: "alice", Email: "nope"}), ErrInvalidEmail)
	assert.NoError(t, v.Validate(ctx, &models.ProfileUpdate{Username: "alice", Email: "a@x.com"}))
}

func TestAccountValidator_PasswordChange(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.PasswordChange{NewPassword: "new"}), ErrEmptyPassword)
	assert.ErrorIs(t, v.Validate(ctx, models.PasswordChange{OldPassword: "old"}), ErrEmptyPassword)
	assert.NoError(t, v.Validate(ctx, models.PasswordChange{OldPassword: "old", NewPassword: "new"}))
}

// ---------------------------------------------------------------------------
// Avatar
// ---------------------------------------------------------------------------

func TestAccountValidator_Avatar(t *testing.T) {
	tests := []struct {
		name    string
		upload  models.AvatarUpload
		wantErr error
	}{
		{name: "png", upload: models.AvatarUpload{FileName: "me.png", Data: pngBytes}},
		{name: "jpg", upload: models.AvatarUpload{FileName: "me.jpg", Data: jpegBytes}},
		{name: "uppercase jpeg extension", upload: models.AvatarUpload{FileName: "ME.JPEG", Data: jpegBytes}},
		{name: "gif", upload: models.AvatarUpload{FileName: "me.gif", Data: gifBytes}},
		{name: "empty data", upload: models.AvatarUpload{FileName: "me.png"}, wantErr: ErrEmptyAvatar},
		{name: "wrong extension", upload: models.AvatarUpload{FileName: "me.bmp", Data: pngBytes}, wantErr: ErrInvalidAvatarType},
		{name: "no extension", upload: models.AvatarUpload{FileName: "me", Data: pngBytes}, wantErr: ErrInvalidAvatarType},
		{name: "text disguised as png", upload: models.AvatarUpload{FileName: "me.png", Data: textBytes}, wantErr: ErrInvalidAvatarType},
		{
			name:    "too large",
			upload:  models.AvatarUpload{FileName: "me.png", Data: append(bytes.Clone(pngBytes), make([]byte, MaxAvatarSize)...)},
			wantErr: ErrAvatarTooLarge,
		},
	}

	v := NewAccountValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.upload)

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAvatarAtSizeLimitIsAccepted(t *testing.T) {
	data := append(bytes.Clone(pngBytes), make([]byte, MaxAvatarSize-len(pngBytes))...)
	require.Len(t, data, MaxAvatarSize)

	err := NewAccountValidator().Validate(context.Background(), models.AvatarUpload{FileName: "me.png", Data: data})

	assert.NoError(t, err)
}

// ---------------------------------------------------------------------------
// Normalization
// ---------------------------------------------------------------------------

func TestNormalize(t *testing.T) {
	assert.Equal(t, "alice", NormalizeUsername("  alice \t"))
	assert.Equal(t, "Alice", NormalizeUsername("Alice"))
	assert.Equal(t, "a@x.com", NormalizeEmail(" A@X.com "))
}
