// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// IdentityProfile is the verified identity returned by an external OAuth
// provider after the authorization code exchange.
type IdentityProfile struct {
	Provider       string
	ProviderUserID string
	Email          string
	EmailVerified  bool
	DisplayName    string
}

// MailMessage is a single outgoing e-mail.
type MailMessage struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// AvatarUpload is a user-submitted image waiting to be stored.
type AvatarUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// UploadedAsset describes an object stored in the remote asset store.
type UploadedAsset struct {
	FileID       string
	URL          string
	ThumbnailURL string
}

// Avatar converts the uploaded asset into the user's avatar reference.
func (a UploadedAsset) Avatar() Avatar {
	return Avatar{
		FileID:       a.FileID,
		URL:          a.URL,
		ThumbnailURL: a.ThumbnailURL,
	}
}
