// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/MKhiriev/expense-tracker/internal/service"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/internal/validators"
	"github.com/MKhiriev/expense-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// signup
// ─────────────────────────────────────────────

func TestSignup(t *testing.T) {
	tests := []struct {
		name         string
		registerErr  error
		wantLocation string
		wantFlash    flash
	}{
		{
			name:         "created",
			wantLocation: "/user/signin",
			wantFlash:    flash{Kind: flashSuccess, Message: msgAccountCreated},
		},
		{
			name:         "invalid username",
			registerErr:  fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrInvalidUsername),
			wantLocation: "/user/signup",
			wantFlash:    flash{Kind: flashError, Message: "Username must be 3 to 20 characters long."},
		},
		{
			name:         "duplicate",
			registerErr:  fmt.Errorf("user creation failed: %w", store.ErrUserAlreadyExists),
			wantLocation: "/user/signup",
			wantFlash:    flash{Kind: flashError, Message: msgAlreadyTaken},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.SignupForm
			h := newTestHandler(t, &service.Services{
				AuthService: &mockAuthService{
					registerFn: func(_ context.Context, form models.SignupForm) (models.User, error) {
						got = form
						return models.User{ID: "u1"}, tt.registerErr
					},
				},
			})

			rec := serve(h, postForm("/user/signup", url.Values{
				"username": {"alice"},
				"email":    {"A@X.com"},
				"password": {"pw12345"},
			}))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			assert.Equal(t, tt.wantFlash, flashOf(t, h, rec))
			assert.Equal(t, models.SignupForm{Username: "alice", Email: "A@X.com", Password: "pw12345"}, got)
		})
	}
}

func TestSignup_UnexpectedErrorRendersErrorPage(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			registerFn: func(context.Context, models.SignupForm) (models.User, error) {
				return models.User{}, errBoom
			},
		},
	})

	rec := serve(h, postForm("/user/signup", url.Values{"username": {"alice"}}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSigninPage_ShowsGoogleLinkWhenEnabled(t *testing.T) {
	h := newTestHandler(t, &service.Services{OAuthService: &mockOAuthService{enabled: true}})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/user/signin", nil))

	assert.Contains(t, rec.Body.String(), "/user/auth/google")
}

// ─────────────────────────────────────────────
// signin
// ─────────────────────────────────────────────

func TestSignin_Success(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			loginFn: func(_ context.Context, creds models.Credentials) (models.User, error) {
				assert.Equal(t, models.Credentials{Login: "A@X.com", Password: "pw12345"}, creds)
				return models.User{ID: "u1"}, nil
			},
		},
	})

	rec := serve(h, postForm("/user/signin", url.Values{"login": {"A@X.com"}, "password": {"pw12345"}}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/user/profile", rec.Header().Get("Location"))
	assert.Equal(t, flash{Kind: flashSuccess, Message: msgSignedIn}, flashOf(t, h, rec))

	cookie := responseCookie(rec, sessionCookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	session, err := h.services.SessionService.Resolve(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)
}

func TestSignin_ReplacesPreviousSession(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			loginFn: func(context.Context, models.Credentials) (models.User, error) {
				return models.User{ID: "u1"}, nil
			},
		},
	})
	req := postForm("/user/signin", url.Values{"login": {"alice"}, "password": {"pw"}})
	old := signIn(t, h, req, "u1")

	rec := serve(h, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	_, err := h.services.SessionService.Resolve(context.Background(), old.ID)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
	assert.NotEqual(t, old.ID, responseCookie(rec, sessionCookieName).Value)
}

func TestSignin_Failures(t *testing.T) {
	tests := []struct {
		name      string
		loginErr  error
		wantFlash string
	}{
		{name: "wrong credentials", loginErr: service.ErrInvalidCredentials, wantFlash: msgInvalidCredentials},
		{name: "storage failure", loginErr: errBoom, wantFlash: msgSignInFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{
				AuthService: &mockAuthService{
					loginFn: func(context.Context, models.Credentials) (models.User, error) {
						return models.User{}, tt.loginErr
					},
				},
			})

			rec := serve(h, postForm("/user/signin", url.Values{"login": {"alice"}, "password": {"nope"}}))

			assert.Equal(t, "/user/signin", rec.Header().Get("Location"))
			assert.Equal(t, flash{Kind: flashError, Message: tt.wantFlash}, flashOf(t, h, rec))
			assert.Nil(t, responseCookie(rec, sessionCookieName))
		})
	}
}

// ─────────────────────────────────────────────
// signout
// ─────────────────────────────────────────────

func TestSignout(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	req := httptest.NewRequest(http.MethodGet, "/user/signout", nil)
	session := signIn(t, h, req, "u1")

	rec := serve(h, req)

	assert.Equal(t, "/user/signin", rec.Header().Get("Location"))
	assert.Equal(t, msgSignedOut, flashOf(t, h, rec).Message)
	assert.Equal(t, -1, responseCookie(rec, sessionCookieName).MaxAge)

	_, err := h.services.SessionService.Resolve(context.Background(), session.ID)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}
