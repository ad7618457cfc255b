// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user-submitted forms before they reach the
// store.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//
// Usage patterns:
//  1. Normalize raw input with [NormalizeUsername] and [NormalizeEmail].
//  2. Inject a Validator into a service.
//  3. Call Validate with context, value, and optional field names.
//
// Field rules are expressed as go-playground/validator tags; avatar content
// is sniffed with gabriel-vasile/mimetype.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
