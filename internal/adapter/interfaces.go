// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the remote collaborators of the
// expense tracker: the transactional mail API, the S3-compatible avatar
// store and the Google OAuth 2.0 identity provider.
//
// Each collaborator is hidden behind a small interface so the service layer
// can be tested with gomock. Error values defined in errors.go are mapped
// from HTTP status codes by mapHTTPError so that callers can use [errors.Is]
// regardless of the concrete client (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/expense-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Mailer delivers transactional e-mails such as password recovery codes.
type Mailer interface {
	// Send delivers msg. An error means the message was not accepted by the
	// upstream API.
	Send(ctx context.Context, msg models.MailMessage) error
}

// AssetStore stores user avatars in a remote object store.
type AssetStore interface {
	// Upload stores the image under a fresh key owned by userID and returns
	// the public references to it.
	Upload(ctx context.Context, userID string, upload models.AvatarUpload) (models.UploadedAsset, error)

	// Delete removes the object identified by fileID. Deleting an object
	// that does not exist is not an error.
	Delete(ctx context.Context, fileID string) error
}

// IdentityProvider performs the OAuth 2.0 authorization code flow against an
// external identity provider.
type IdentityProvider interface {
	// AuthCodeURL returns the provider consent page URL carrying state.
	AuthCodeURL(state string) string

	// Exchange trades the authorization code for a token and fetches the
	// verified profile of the signed-in account.
	Exchange(ctx context.Context, code string) (models.IdentityProfile, error)
}
