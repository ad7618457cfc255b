// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

var (
	// ErrInvalidStorageConfigs is returned when the database DSN is missing.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidAppConfigs is returned when the reset ticket key is missing
	// or the environment name is unknown.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")

	// ErrInvalidOAuthConfigs is returned when a Google client id is set
	// without its secret or redirect URL.
	ErrInvalidOAuthConfigs = errors.New("invalid oauth configuration")

	// ErrInvalidAssetsConfigs is returned when a bucket is set without the
	// public URL objects are served from.
	ErrInvalidAssetsConfigs = errors.New("invalid assets configuration")

	// ErrInvalidMailConfigs is returned when a mail API is set without a
	// sender address.
	ErrInvalidMailConfigs = errors.New("invalid mail configuration")
)
