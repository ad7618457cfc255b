// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/service"
	"github.com/go-chi/chi/v5"
)

type recoveryPage struct {
	UserID string
}

func verifyOTPPath(userID string) string {
	return "/user/verify-otp/" + url.PathEscape(userID)
}

func setPasswordPath(userID string) string {
	return "/user/set-password/" + url.PathEscape(userID)
}

func (h *Handler) forgetPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "forget_password", "Forget Password", nil)
}

// forgetPassword answers identically whether or not the email belongs to
// an account.
func (h *Handler) forgetPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := h.services.RecoveryService.Issue(r.Context(), r.PostFormValue("email"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			h.redirectWithFlash(w, r, "/user/forget-password", flashError, validationMessage(err))
		case errors.Is(err, service.ErrUpstream):
			log.Err(err).Msg("otp delivery failed")
			h.redirectWithFlash(w, r, "/user/forget-password", flashError, msgOTPSendFailed)
		default:
			log.Err(err).Msg("otp issue failed")
			h.renderError(w, r, err)
		}
		return
	}

	h.redirectWithFlash(w, r, verifyOTPPath(userID), flashSuccess, msgOTPSent)
}

func (h *Handler) verifyOTPPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "verify_otp", "Verify OTP", recoveryPage{UserID: chi.URLParam(r, "id")})
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	userID := chi.URLParam(r, "id")

	ticket, err := h.services.RecoveryService.Verify(r.Context(), userID, r.PostFormValue("otp"))
	if err != nil {
		if errors.Is(err, service.ErrOTPInvalid) {
			log.Info().Str("user_id", userID).Msg("otp rejected")
			h.redirectWithFlash(w, r, "/user/forget-password", flashError, msgOTPInvalid)
			return
		}
		log.Err(err).Str("user_id", userID).Msg("otp verification failed")
		h.renderError(w, r, err)
		return
	}

	h.setResetTicket(w, ticket)
	http.Redirect(w, r, setPasswordPath(userID), http.StatusSeeOther)
}

func (h *Handler) setPasswordPage(w http.ResponseWriter, r *http.Request) {
	if resetTicketFromRequest(r) == "" {
		h.redirectWithFlash(w, r, "/user/forget-password", flashError, msgVerifyFirst)
		return
	}

	h.render(w, r, http.StatusOK, "set_password", "Set Password", recoveryPage{UserID: chi.URLParam(r, "id")})
}

// setPassword consumes the reset ticket. On success every session of the
// user is destroyed so a stolen session does not outlive the reset.
func (h *Handler) setPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	userID := chi.URLParam(r, "id")

	err := h.services.RecoveryService.SetPassword(ctx, userID, resetTicketFromRequest(r),
		r.PostFormValue("password"), r.PostFormValue("confirm_password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			h.redirectWithFlash(w, r, setPasswordPath(userID), flashError, msgPasswordsDiffer)
		case errors.Is(err, service.ErrInvalidDataProvided):
			h.redirectWithFlash(w, r, setPasswordPath(userID), flashError, validationMessage(err))
		case errors.Is(err, service.ErrResetTicketInvalid), errors.Is(err, service.ErrOTPInvalid):
			log.Info().Err(err).Str("user_id", userID).Msg("password reset rejected")
			h.clearCookie(w, resetTicketCookieName)
			h.redirectWithFlash(w, r, "/user/forget-password", flashError, msgOTPInvalid)
		default:
			log.Err(err).Str("user_id", userID).Msg("password reset failed")
			h.renderError(w, r, err)
		}
		return
	}

	h.clearCookie(w, resetTicketCookieName)
	if err = h.services.SessionService.DestroyAll(ctx, userID); err != nil {
		log.Err(err).Str("user_id", userID).Msg("sessions could not be destroyed after password reset")
	}

	h.redirectWithFlash(w, r, "/user/signin", flashSuccess, msgPasswordReset)
}
