package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/service"
	"github.com/google/uuid"
)

func (h *Handler) googleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.services.OAuthService.Enabled() {
		h.notFound(w, r)
		return
	}

	state := uuid.NewString()
	h.setOAuthState(w, state)

	http.Redirect(w, r, h.services.OAuthService.AuthCodeURL(state), http.StatusFound)
}

// googleCallback finishes the authorization code flow. A denial by the
// provider or a forged state sends the browser home without a session.
func (h *Handler) googleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	query := r.URL.Query()

	if providerErr := query.Get("error"); providerErr != "" {
		log.Info().Str("provider_error", providerErr).Msg("google sign-in denied")
		h.clearCookie(w, oauthStateCookieName)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if !h.consumeOAuthState(w, r, query.Get("state")) {
		log.Warn().Err(ErrOAuthStateMismatch).Send()
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	user, err := h.services.OAuthService.Link(ctx, query.Get("code"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIdentityIncomplete):
			log.Info().Err(err).Msg("google profile rejected")
			h.redirectWithFlash(w, r, "/user/signin", flashError, msgNoOAuthEmail)
		case errors.Is(err, service.ErrOAuthDisabled):
			h.notFound(w, r)
		default:
			log.Err(err).Msg("google sign-in failed")
			h.redirectWithFlash(w, r, "/user/signin", flashError, msgSignInFailed)
		}
		return
	}

	if err = h.startSession(w, r, user.ID); err != nil {
		h.redirectWithFlash(w, r, "/user/signin", flashError, msgLoginFailed)
		return
	}

	h.redirectWithFlash(w, r, "/user/profile", flashSuccess, msgSignedIn)
}
