// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created")

	// errServerStopped is returned when the listener exits before a
	// shutdown was requested, e.g. because the address is already in use.
	errServerStopped = errors.New("server stopped unexpectedly")
)
