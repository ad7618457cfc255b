// Package http serves the expense tracker's browser-facing pages.
//
// Handlers render html/template pages, read form posts and answer every
// state change with a flash cookie and a 303 redirect. The middleware chain
// assigns a trace id, writes the access log, gzips text responses and
// resolves the signed-in user from the session cookie before a route hands
// the request to the service layer.
package http
