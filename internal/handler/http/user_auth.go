package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/service"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/internal/utils"
	"github.com/MKhiriev/expense-tracker/models"
)

type authPage struct {
	OAuthEnabled bool
}

func (h *Handler) signupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signup", "Sign Up", authPage{OAuthEnabled: h.services.OAuthService.Enabled()})
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	form := models.SignupForm{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	user, err := h.services.AuthService.Register(ctx, form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Debug().Err(err).Msg("invalid signup form")
			h.redirectWithFlash(w, r, "/user/signup", flashError, validationMessage(err))
		case errors.Is(err, store.ErrUserAlreadyExists):
			log.Debug().Err(err).Msg("username or email already exists")
			h.redirectWithFlash(w, r, "/user/signup", flashError, msgAlreadyTaken)
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			h.renderError(w, r, err)
		}
		return
	}

	log.Info().Str("user_id", user.ID).Msg("user registered")
	h.redirectWithFlash(w, r, "/user/signin", flashSuccess, msgAccountCreated)
}

func (h *Handler) signinPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signin", "Sign In", authPage{OAuthEnabled: h.services.OAuthService.Enabled()})
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	creds := models.Credentials{
		Login:    r.PostFormValue("login"),
		Password: r.PostFormValue("password"),
	}

	user, err := h.services.AuthService.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Debug().Msg("invalid login/password")
			h.redirectWithFlash(w, r, "/user/signin", flashError, msgInvalidCredentials)
			return
		}
		log.Err(err).Msg("unexpected error occurred during user login")
		h.redirectWithFlash(w, r, "/user/signin", flashError, msgSignInFailed)
		return
	}

	if err = h.startSession(w, r, user.ID); err != nil {
		h.redirectWithFlash(w, r, "/user/signin", flashError, msgLoginFailed)
		return
	}

	h.redirectWithFlash(w, r, "/user/profile", flashSuccess, msgSignedIn)
}

// startSession replaces any session the browser already holds with a new
// one for userID.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, userID string) error {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := h.services.SessionService.Destroy(ctx, sessionIDFromRequest(r)); err != nil {
		log.Warn().Err(err).Msg("previous session could not be destroyed")
	}

	session, err := h.services.SessionService.Create(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("session creation failed")
		return err
	}

	h.setSessionCookie(w, session)
	log.Info().Str("user_id", userID).Msg("user signed in")
	return nil
}

func (h *Handler) signout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, _ := utils.GetSessionIDFromContext(ctx)
	if err := h.services.SessionService.Destroy(ctx, sessionID); err != nil {
		logger.FromRequest(r).Err(err).Msg("session deletion failed")
	}

	h.clearCookie(w, sessionCookieName)
	h.redirectWithFlash(w, r, "/user/signin", flashSuccess, msgSignedOut)
}
