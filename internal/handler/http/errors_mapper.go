package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/expense-tracker/internal/service"
	"github.com/MKhiriev/expense-tracker/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrPasswordMismatch:    http.StatusBadRequest,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrOTPInvalid:          http.StatusUnauthorized,
	service.ErrResetTicketInvalid:  http.StatusUnauthorized,
	service.ErrIdentityIncomplete:  http.StatusUnauthorized,
	service.ErrOAuthDisabled:       http.StatusNotFound,
	service.ErrUsernameUnavailable: http.StatusConflict,
	service.ErrUpstream:            http.StatusBadGateway,

	store.ErrUserAlreadyExists: http.StatusConflict,
	store.ErrUserNotFound:      http.StatusNotFound,
	store.ErrExpenseNotFound:   http.StatusNotFound,
	store.ErrSessionNotFound:   http.StatusUnauthorized,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
	store.ErrCommittingTx:       http.StatusInternalServerError,

	ErrNoUserInContext: http.StatusUnauthorized,
	ErrInvalidForm:     http.StatusBadRequest,
	ErrPageNotFound:    http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
