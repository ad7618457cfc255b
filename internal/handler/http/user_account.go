package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/service"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/internal/utils"
	"github.com/MKhiriev/expense-tracker/internal/validators"
	"github.com/MKhiriev/expense-tracker/models"
)

// maxAvatarRequestSize leaves room for the multipart envelope around the
// largest accepted image.
const maxAvatarRequestSize = validators.MaxAvatarSize + 1<<20

type profilePage struct {
	User models.User
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	h.renderProfile(w, r, "profile", "Profile")
}

func (h *Handler) updateProfilePage(w http.ResponseWriter, r *http.Request) {
	h.renderProfile(w, r, "update_profile", "Update Profile")
}

func (h *Handler) renderProfile(w http.ResponseWriter, r *http.Request, page, title string) {
	userID, err := currentUserID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	user, err := h.services.AccountService.Profile(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("profile lookup failed")
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, page, title, profilePage{User: user})
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := currentUserID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	update := models.ProfileUpdate{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
	}

	if _, err = h.services.AccountService.UpdateProfile(r.Context(), userID, update); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			h.redirectWithFlash(w, r, "/user/update-profile", flashError, validationMessage(err))
		case errors.Is(err, store.ErrUserAlreadyExists):
			h.redirectWithFlash(w, r, "/user/update-profile", flashError, msgAlreadyTaken)
		default:
			log.Err(err).Msg("profile update failed")
			h.renderError(w, r, err)
		}
		return
	}

	h.redirectWithFlash(w, r, "/user/profile", flashSuccess, msgProfileUpdated)
}

func (h *Handler) updateAvatar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := currentUserID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarRequestSize)
	upload, err := avatarFromRequest(r)
	if err != nil {
		log.Debug().Err(err).Msg("avatar form rejected")
		h.redirectWithFlash(w, r, "/user/update-profile", flashError, validationMessage(err))
		return
	}

	if _, err = h.services.AccountService.UpdateAvatar(r.Context(), userID, upload); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			h.redirectWithFlash(w, r, "/user/update-profile", flashError, validationMessage(err))
		default:
			log.Err(err).Msg("avatar update failed")
			h.redirectWithFlash(w, r, "/user/update-profile", flashError, msgAvatarFailed)
		}
		return
	}

	h.redirectWithFlash(w, r, "/user/update-profile", flashSuccess, msgAvatarUpdated)
}

// avatarFromRequest reads the "avatar" multipart field. A body over the
// size limit is reported as validators.ErrAvatarTooLarge.
func avatarFromRequest(r *http.Request) (models.AvatarUpload, error) {
	file, header, err := r.FormFile("avatar")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return models.AvatarUpload{}, validators.ErrAvatarTooLarge
		}
		return models.AvatarUpload{}, validators.ErrEmptyAvatar
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.AvatarUpload{}, errors.Join(ErrInvalidForm, err)
	}

	return models.AvatarUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *Handler) changePasswordPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "reset_password", "Reset Password", nil)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := currentUserID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	change := models.PasswordChange{
		OldPassword:     r.PostFormValue("old_password"),
		NewPassword:     r.PostFormValue("new_password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	if err = h.services.AccountService.ChangePassword(r.Context(), userID, change); err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			h.redirectWithFlash(w, r, "/user/reset-password", flashError, msgPasswordsDiffer)
		case errors.Is(err, service.ErrInvalidCredentials):
			h.redirectWithFlash(w, r, "/user/reset-password", flashError, msgWrongPassword)
		case errors.Is(err, service.ErrInvalidDataProvided):
			h.redirectWithFlash(w, r, "/user/reset-password", flashError, validationMessage(err))
		default:
			log.Err(err).Msg("password change failed")
			h.redirectWithFlash(w, r, "/user/reset-password", flashError, msgChangePassFailed)
		}
		return
	}

	h.redirectWithFlash(w, r, "/user/profile", flashSuccess, msgPasswordChanged)
}

// deleteAccount removes the account and then every session of the user.
// Sessions are only touched once the deletion has committed.
func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := currentUserID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if err = h.services.AccountService.DeleteAccount(ctx, userID); err != nil {
		log.Err(err).Msg("account deletion failed")
		h.redirectWithFlash(w, r, "/user/profile", flashError, msgAccountNotDelete)
		return
	}

	if err = h.services.SessionService.DestroyAll(ctx, userID); err != nil {
		log.Err(err).Msg("sessions could not be destroyed after account deletion")
		sessionID, _ := utils.GetSessionIDFromContext(ctx)
		if err = h.services.SessionService.Destroy(ctx, sessionID); err != nil {
			log.Err(err).Msg("current session could not be destroyed after account deletion")
		}
	}

	h.clearCookie(w, sessionCookieName)
	h.redirectWithFlash(w, r, "/user/signin", flashSuccess, msgAccountDeleted)
}
