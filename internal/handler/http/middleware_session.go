package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/internal/utils"
)

// withSession resolves the session cookie and, when it names a live
// session, stores the user and session ids in the request context and
// tags the request logger with the user id.
//
// Requests without a valid session continue anonymously. A stale cookie
// is cleared so the browser stops sending it.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := sessionIDFromRequest(r)
		if sessionID == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		log := logger.FromRequest(r)

		session, err := h.services.SessionService.Resolve(ctx, sessionID)
		if err != nil {
			if errors.Is(err, store.ErrSessionNotFound) {
				log.Debug().Msg("stale session cookie")
				h.clearCookie(w, sessionCookieName)
			} else {
				log.Err(err).Msg("session lookup failed")
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx = log.ForUser(session.UserID).WithContext(ctx)
		ctx = utils.WithUserID(ctx, session.UserID, session.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireUser redirects anonymous requests to the sign-in page.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			h.redirectWithFlash(w, r, "/user/signin", flashError, msgSignInRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// currentUserID returns the id stored by withSession. Protected handlers
// run behind requireUser, so a missing id is a wiring error.
func currentUserID(r *http.Request) (string, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return "", ErrNoUserInContext
	}
	return userID, nil
}
