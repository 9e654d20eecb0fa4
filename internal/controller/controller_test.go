package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"brotech_admin/internal/assist"
	"brotech_admin/internal/auth"
	"brotech_admin/internal/dashboard"
	"brotech_admin/internal/model"
	"brotech_admin/internal/store"
	"brotech_admin/pkg/database"
	"brotech_admin/pkg/utils/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testEmail    = "ops@brotech.io"
	testPassword = "s3cret!"
)

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	gw    *store.Gateway
	token string
}

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func newTestEnv(t *testing.T, configure ...func(*Dependencies)) *testEnv {
	t.Helper()
	jwt.Init("test-secret", time.Hour)

	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	require.NoError(t, database.MigrateDatabase(db, append(store.Models(), auth.Models()...)...))

	hashed, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{Email: testEmail, Password: hashed, DisplayName: "Ops"}).Error)

	gw := store.New(db)
	deps := Dependencies{
		Store:     gw,
		Auth:      auth.NewService(db),
		Dashboard: dashboard.NewService(gw.Contacts, gw.PricingPlans, time.UTC),
		Assistant: assist.New(nil),
	}
	for _, fn := range configure {
		fn(&deps)
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	SetupRoutes(app, deps)

	env := &testEnv{app: app, db: db, gw: gw}
	env.token = env.login(t)
	return env
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    testEmail,
		"password": testPassword,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

// do sends a JSON request; token may be empty for public routes.
func (e *testEnv) do(t *testing.T, method, path, token string, payload any) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return e.send(t, req, token)
}

func (e *testEnv) send(t *testing.T, req *http.Request, token string) (*http.Response, []byte) {
	t.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    testEmail,
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	out := decode[map[string]string](t, body)
	assert.Equal(t, auth.CredentialsGuidance, out["guidance"])
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/me", "/api/messages", "/api/dashboard/stats", "/api/settings"} {
		resp, _ := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/api/me", env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/api/auth/logout", env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/me", env.token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetMe_IncludesRecentLogins(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/me", env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[struct {
		User         map[string]any   `json:"user"`
		RecentLogins []map[string]any `json:"recentLogins"`
	}](t, body)
	assert.Equal(t, testEmail, out.User["email"])
	assert.Len(t, out.RecentLogins, 1)
}

func TestChangePassword_Validation(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPut, "/api/me/password", env.token, map[string]string{
		"currentPassword": testPassword,
		"newPassword":     "abcdef",
		"confirmPassword": "abcdeg",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decode[map[string]string](t, body)
	assert.Equal(t, "confirmPassword", out["field"])
	assert.Equal(t, "The new passwords do not match.", out["error"])

	resp, body = env.do(t, http.MethodPut, "/api/me/password", env.token, map[string]string{
		"currentPassword": "nope",
		"newPassword":     "abcdef",
		"confirmPassword": "abcdef",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "The current password you entered is incorrect.", decode[map[string]string](t, body)["error"])

	resp, _ = env.do(t, http.MethodPut, "/api/me/password", env.token, map[string]string{
		"currentPassword": testPassword,
		"newPassword":     "abcdef",
		"confirmPassword": "abcdef",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPut, "/api/me/profile", env.token, map[string]string{"displayName": "Operator"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[struct {
		User map[string]any `json:"user"`
	}](t, body)
	assert.Equal(t, "Operator", out.User["displayName"])
}

func TestUnknownProtectedRoute(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/does-not-exist", env.token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "/api/dashboard/stats", decode[map[string]string](t, body)["redirect"])
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[map[string]string](t, body)["status"])
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.gw.Contacts.Create(ctx, &model.ContactMessage{Name: "A", Email: "a@x.io", Message: "hi"})
	require.NoError(t, err)

	resp, body := env.do(t, http.MethodGet, "/api/dashboard/stats", env.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	stats := decode[dashboard.Stats](t, body)
	assert.Equal(t, 1, stats.NewMessages)
	assert.Equal(t, 1, stats.TotalMessages)
	assert.Equal(t, dashboard.NotSet, stats.MostPopularPlan)
	assert.Len(t, stats.Weekly, dashboard.WeekLength)
	assert.Len(t, stats.RecentMessages, 1)
}

func TestSettings(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPut, "/api/settings", env.token, map[string]string{
		"contactEmail": "hello@brotech.io",
		"githubUrl":    "https://github.com/brotech",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	// sadece gönderilen alan değişir
	resp, _ = env.do(t, http.MethodPut, "/api/settings", env.token, map[string]string{"phoneNumber": "+1 555"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = env.do(t, http.MethodPut, "/api/settings/impact-numbers", env.token, model.ImpactNumbers{
		ProjectsCompleted: 12, HappyClients: -3, YearsOfExperience: 5,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	resp, body = env.do(t, http.MethodGet, "/api/public/settings", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[struct {
		ContactEmail  string              `json:"contactEmail"`
		PhoneNumber   string              `json:"phoneNumber"`
		GithubURL     string              `json:"githubUrl"`
		ImpactNumbers model.ImpactNumbers `json:"impactNumbers"`
	}](t, body)
	assert.Equal(t, "hello@brotech.io", out.ContactEmail)
	assert.Equal(t, "+1 555", out.PhoneNumber)
	assert.Equal(t, "https://github.com/brotech", out.GithubURL)
	assert.Equal(t, model.ImpactNumbers{ProjectsCompleted: 12, HappyClients: 0, YearsOfExperience: 5}, out.ImpactNumbers)
}

func TestSettings_InvalidEmail(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPut, "/api/settings", env.token, map[string]string{"contactEmail": "not-an-email"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "contactEmail", decode[map[string]string](t, body)["field"])
}
