// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/utils"
	"github.com/MKhiriev/expense-tracker/models"
)

const (
	sessionCookieName     = "session_id"
	flashCookieName       = "flash"
	oauthStateCookieName  = "oauth_state"
	resetTicketCookieName = "reset_ticket"

	oauthStateTTL = 10 * time.Minute
)

const (
	flashSuccess = "success"
	flashError   = "error"
)

// flash is a one-shot message shown on the next rendered page.
type flash struct {
	Kind    string
	Message string
}

func (h *Handler) setCookie(w http.ResponseWriter, name, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, session models.Session) {
	h.setCookie(w, sessionCookieName, session.ID, session.ExpiresAt)
}

func sessionIDFromRequest(r *http.Request) string {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// setFlash stores a signed flash message. The message is base64 encoded
// because cookie values may not carry spaces or commas.
func (h *Handler) setFlash(w http.ResponseWriter, kind, message string) {
	value := base64.RawURLEncoding.EncodeToString([]byte(kind + "|" + message))
	h.setCookie(w, flashCookieName, utils.SignValue(value, h.signKey), time.Time{})
}

// popFlash reads and clears the flash message. A tampered cookie is
// dropped silently.
func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request) flash {
	c, err := r.Cookie(flashCookieName)
	if err != nil {
		return flash{}
	}
	h.clearCookie(w, flashCookieName)

	value, ok := utils.VerifySignedValue(c.Value, h.signKey)
	if !ok {
		return flash{}
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return flash{}
	}

	kind, message, found := strings.Cut(string(raw), "|")
	if !found {
		return flash{}
	}
	return flash{Kind: kind, Message: message}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, url, kind, message string) {
	h.setFlash(w, kind, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func (h *Handler) setOAuthState(w http.ResponseWriter, state string) {
	h.setCookie(w, oauthStateCookieName, utils.SignValue(state, h.signKey), time.Now().Add(oauthStateTTL))
}

// consumeOAuthState clears the state cookie and reports whether it
// matches state.
func (h *Handler) consumeOAuthState(w http.ResponseWriter, r *http.Request, state string) bool {
	c, err := r.Cookie(oauthStateCookieName)
	if err != nil {
		return false
	}
	h.clearCookie(w, oauthStateCookieName)

	stored, ok := utils.VerifySignedValue(c.Value, h.signKey)
	return ok && state != "" && stored == state
}

func (h *Handler) setResetTicket(w http.ResponseWriter, ticket models.ResetTicket) {
	var expires time.Time
	if ticket.ExpiresAt != nil {
		expires = ticket.ExpiresAt.Time
	}
	h.setCookie(w, resetTicketCookieName, ticket.String(), expires)
}

func resetTicketFromRequest(r *http.Request) string {
	c, err := r.Cookie(resetTicketCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
