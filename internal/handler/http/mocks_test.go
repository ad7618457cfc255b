package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/config"
	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/service"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// Each mock implements a service interface through overridable function
// fields. A test only sets the fields its handler calls.

type mockAuthService struct {
	registerFn func(ctx context.Context, form models.SignupForm) (models.User, error)
	loginFn    func(ctx context.Context, creds models.Credentials) (models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, form models.SignupForm) (models.User, error) {
	return m.registerFn(ctx, form)
}

func (m *mockAuthService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	return m.loginFn(ctx, creds)
}

type mockOAuthService struct {
	enabled       bool
	authCodeURLFn func(state string) string
	linkFn        func(ctx context.Context, code string) (models.User, error)
}

func (m *mockOAuthService) Enabled() bool {
	return m.enabled
}

func (m *mockOAuthService) AuthCodeURL(state string) string {
	return m.authCodeURLFn(state)
}

func (m *mockOAuthService) Link(ctx context.Context, code string) (models.User, error) {
	return m.linkFn(ctx, code)
}

type mockRecoveryService struct {
	issueFn       func(ctx context.Context, email string) (string, error)
	verifyFn      func(ctx context.Context, userID, code string) (models.ResetTicket, error)
	setPasswordFn func(ctx context.Context, userID, ticket, password, confirm string) error
}

func (m *mockRecoveryService) Issue(ctx context.Context, email string) (string, error) {
	return m.issueFn(ctx, email)
}

func (m *mockRecoveryService) Verify(ctx context.Context, userID, code string) (models.ResetTicket, error) {
	return m.verifyFn(ctx, userID, code)
}

func (m *mockRecoveryService) SetPassword(ctx context.Context, userID, ticket, password, confirm string) error {
	return m.setPasswordFn(ctx, userID, ticket, password, confirm)
}

type mockAccountService struct {
	profileFn        func(ctx context.Context, userID string) (models.User, error)
	updateProfileFn  func(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error)
	updateAvatarFn   func(ctx context.Context, userID string, upload models.AvatarUpload) (models.Avatar, error)
	changePasswordFn func(ctx context.Context, userID string, change models.PasswordChange) error
	deleteAccountFn  func(ctx context.Context, userID string) error
}

func (m *mockAccountService) Profile(ctx context.Context, userID string) (models.User, error) {
	return m.profileFn(ctx, userID)
}

func (m *mockAccountService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	return m.updateProfileFn(ctx, userID, update)
}

func (m *mockAccountService) UpdateAvatar(ctx context.Context, userID string, upload models.AvatarUpload) (models.Avatar, error) {
	return m.updateAvatarFn(ctx, userID, upload)
}

func (m *mockAccountService) ChangePassword(ctx context.Context, userID string, change models.PasswordChange) error {
	return m.changePasswordFn(ctx, userID, change)
}

func (m *mockAccountService) DeleteAccount(ctx context.Context, userID string) error {
	return m.deleteAccountFn(ctx, userID)
}

type mockExpenseService struct {
	createFn func(ctx context.Context, userID string, form models.ExpenseForm) (models.Expense, error)
	listFn   func(ctx context.Context, userID string) ([]models.Expense, error)
	getFn    func(ctx context.Context, userID, expenseID string) (models.Expense, error)
	updateFn func(ctx context.Context, userID, expenseID string, form models.ExpenseForm) (models.Expense, error)
	deleteFn func(ctx context.Context, userID, expenseID string) error
}

func (m *mockExpenseService) Create(ctx context.Context, userID string, form models.ExpenseForm) (models.Expense, error) {
	return m.createFn(ctx, userID, form)
}

func (m *mockExpenseService) List(ctx context.Context, userID string) ([]models.Expense, error) {
	return m.listFn(ctx, userID)
}

func (m *mockExpenseService) Get(ctx context.Context, userID, expenseID string) (models.Expense, error) {
	return m.getFn(ctx, userID, expenseID)
}

func (m *mockExpenseService) Update(ctx context.Context, userID, expenseID string, form models.ExpenseForm) (models.Expense, error) {
	return m.updateFn(ctx, userID, expenseID, form)
}

func (m *mockExpenseService) Delete(ctx context.Context, userID, expenseID string) error {
	return m.deleteFn(ctx, userID, expenseID)
}

type mockAppInfoService struct {
	buildInfo models.AppBuildInfo
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.buildInfo.BuildVersion()
}

func (m *mockAppInfoService) GetBuildInfo(_ context.Context) models.AppBuildInfo {
	return m.buildInfo
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testSignKey = "test-sign-key"

var testAppConfig = config.App{
	Env:                config.EnvDevelopment,
	ResetTicketSignKey: testSignKey,
	SessionTTL:         time.Hour,
}

// newTestHandler builds a Handler around svcs. Unset services get inert
// defaults; sessions are real and kept in memory.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()

	if svcs.SessionService == nil {
		svcs.SessionService = service.NewSessionService(store.NewMemorySessionStore(), time.Hour, logger.Nop())
	}
	if svcs.OAuthService == nil {
		svcs.OAuthService = &mockOAuthService{}
	}
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{buildInfo: models.NewAppBuildInfo("test", "", "")}
	}

	return NewHandler(svcs, testAppConfig, logger.Nop())
}

// serve runs req through the full router.
func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init(5*time.Second).ServeHTTP(rec, req)
	return rec
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// signIn attaches a live session cookie for userID to req.
func signIn(t *testing.T, h *Handler, req *http.Request, userID string) models.Session {
	t.Helper()

	session, err := h.services.SessionService.Create(context.Background(), userID)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: session.ID})
	return session
}

// responseCookie returns the named cookie set by the response, or nil.
func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// flashOf decodes the flash message set by the response.
func flashOf(t *testing.T, h *Handler, rec *httptest.ResponseRecorder) flash {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if c := responseCookie(rec, flashCookieName); c != nil {
		req.AddCookie(c)
	}
	return h.popFlash(httptest.NewRecorder(), req)
}

var pngFixture = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func writeFile(dir, name string, data []byte) error {
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
