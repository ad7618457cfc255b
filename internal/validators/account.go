// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"path"
	"slices"
	"strings"

	"github.com/MKhiriev/expense-tracker/models"
	"github.com/gabriel-vasile/mimetype"
)

// Field name constants used to restrict account validation to a subset of
// fields.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldLogin       = "login"
	FieldPassword    = "password"
	FieldOldPassword = "old_password"
	FieldNewPassword = "new_password"
	FieldAvatarType  = "avatar_type"
	FieldAvatarSize  = "avatar_size"
)

// MaxAvatarSize is the largest accepted avatar upload in bytes.
const MaxAvatarSize = 5 << 20

var allowedAvatarExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

var allowedAvatarMIMETypes = []string{"image/jpeg", "image/png", "image/gif"}

// AccountValidator implements [Validator] for the account forms:
// SignupForm, Credentials, ProfileUpdate, PasswordChange and AvatarUpload.
type AccountValidator struct {
}

// NewAccountValidator constructs an AccountValidator.
func NewAccountValidator() Validator {
	return &AccountValidator{}
}

// Validate dispatches validation on the dynamic type of obj. Values and
// pointers are both accepted. Returns ErrUnsupportedType for any other type.
func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupForm:
		return v.validateSignup(value, fields...)
	case *models.SignupForm:
		return v.validateSignup(*value, fields...)

	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	case models.ProfileUpdate:
		return v.validateProfileUpdate(value, fields...)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(*value, fields...)

	case models.PasswordChange:
		return v.validatePasswordChange(value, fields...)
	case *models.PasswordChange:
		return v.validatePasswordChange(*value, fields...)

	case models.AvatarUpload:
		return v.validateAvatar(value, fields...)
	case *models.AvatarUpload:
		return v.validateAvatar(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateSignup(form models.SignupForm, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldUsername:
			err = check(form.Username, tagUsername, ErrInvalidUsername)
		case FieldEmail:
			err = check(form.Email, tagEmail, ErrInvalidEmail)
		case FieldPassword:
			err = check(form.Password, tagRequired, ErrEmptyPassword)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *AccountValidator) validateCredentials(creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldLogin:
			err = check(strings.TrimSpace(creds.Login), tagRequired, ErrEmptyLogin)
		case FieldPassword:
			err = check(creds.Password, tagRequired, ErrEmptyPassword)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *AccountValidator) validateProfileUpdate(update models.ProfileUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldUsername:
			err = check(update.Username, tagUsername, ErrInvalidUsername)
		case FieldEmail:
			err = check(update.Email, tagEmail, ErrInvalidEmail)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *AccountValidator) validatePasswordChange(change models.PasswordChange, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOldPassword, FieldNewPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldOldPassword:
			err = check(change.OldPassword, tagRequired, ErrEmptyPassword)
		case FieldNewPassword:
			err = check(change.NewPassword, tagRequired, ErrEmptyPassword)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// validateAvatar checks the file extension and the sniffed content type
// against the allowed image formats, and the size against MaxAvatarSize.
func (v *AccountValidator) validateAvatar(upload models.AvatarUpload, fields ...string) error {
	if len(upload.Data) == 0 {
		return ErrEmptyAvatar
	}

	if len(fields) == 0 {
		fields = []string{FieldAvatarType, FieldAvatarSize}
	}

	for _, f := range fields {
		switch f {
		case FieldAvatarType:
			ext := strings.ToLower(path.Ext(upload.FileName))
			if !slices.Contains(allowedAvatarExtensions, ext) || !isAllowedImage(upload.Data) {
				return ErrInvalidAvatarType
			}
		case FieldAvatarSize:
			if len(upload.Data) > MaxAvatarSize {
				return ErrAvatarTooLarge
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isAllowedImage(data []byte) bool {
	detected := mimetype.Detect(data)
	for _, m := range allowedAvatarMIMETypes {
		if detected.Is(m) {
			return true
		}
	}
	return false
}
