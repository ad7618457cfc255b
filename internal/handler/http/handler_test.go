package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svcs := &service.Services{}
	log := logger.Nop()

	h := NewHandler(svcs, testAppConfig, log)

	require.NotNil(t, h)
	assert.Equal(t, svcs, h.services)
	assert.Equal(t, log, h.logger)
	assert.Equal(t, testSignKey, h.signKey)
	assert.True(t, h.development)
}

func TestNewHandler_ParsesEveryPage(t *testing.T) {
	h := NewHandler(&service.Services{}, testAppConfig, logger.Nop())

	for _, page := range []string{
		"home", "about", "error",
		"signup", "signin", "profile", "update_profile", "reset_password",
		"forget_password", "verify_otp", "set_password",
		"expense_form", "expense_list", "expense_details",
	} {
		assert.Contains(t, h.views.pages, page)
	}
	assert.NotContains(t, h.views.pages, "layout")
}

// ─────────────────────────────────────────────
// render / renderError
// ─────────────────────────────────────────────

func TestRender_UnknownPage(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	rec := httptest.NewRecorder()

	h.render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "missing", "x", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRenderError_DetailOnlyInDevelopment(t *testing.T) {
	tests := []struct {
		name        string
		development bool
		wantDetail  bool
	}{
		{name: "development", development: true, wantDetail: true},
		{name: "production", development: false, wantDetail: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{})
			h.development = tt.development
			rec := httptest.NewRecorder()

			h.renderError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errBoom)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			if tt.wantDetail {
				assert.Contains(t, rec.Body.String(), errBoom.Error())
			} else {
				assert.NotContains(t, rec.Body.String(), errBoom.Error())
			}
		})
	}
}
