package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/http/middleware"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/http/routes"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/models"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/config"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T, deps routes.Deps) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	cfg := &config.Config{
		Port:           "0",
		JWT:            config.JWTConfig{Secret: "test-secret", ExpiryMinutes: 60},
		AllowedOrigins: "*",
	}

	if deps.Assistant == nil {
		deps.Assistant = services.NewAssistantService(nil, nil, nil)
	}
	if deps.Telegram == nil {
		deps.Telegram = services.NewTelegramService("")
	}
	if deps.Uploader == nil {
		deps.Uploader = services.NewUploadService(config.StorageConfig{})
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	routes.Setup(app, db, cfg, deps)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func signup(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()

	resp, body := doJSON(t, app, "POST", "/auth/signup", "", map[string]string{
		"email":    email,
		"password": "pass1234",
		"name":     "Test User",
		"role":     role,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestSignupLoginMe(t *testing.T) {
	app := newTestApp(t, routes.Deps{})

	token := signup(t, app, "ada@corps.ng", "")

	// default role is Corps Member
	resp, body := doJSON(t, app, "GET", "/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	me := body["data"].(map[string]interface{})
	assert.Equal(t, "ada@corps.ng", me["email"])
	assert.Equal(t, models.RoleCorpsMember, me["role"])

	// duplicate email is rejected
	resp, body = doJSON(t, app, "POST", "/auth/signup", "", map[string]string{
		"email": "ada@corps.ng", "password": "other", "name": "Other",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already registered", body["error"])

	// login round-trip
	resp, body = doJSON(t, app, "POST", "/auth/login", "", map[string]string{
		"email": "ada@corps.ng", "password": "pass1234",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["data"].(map[string]interface{})["token"])

	// wrong password and unknown email are indistinguishable
	resp, wrongPass := doJSON(t, app, "POST", "/auth/login", "", map[string]string{
		"email": "ada@corps.ng", "password": "wrong",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, unknown := doJSON(t, app, "POST", "/auth/login", "", map[string]string{
		"email": "nobody@corps.ng", "password": "wrong",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, wrongPass["error"], unknown["error"])
}

func TestSocialLoginProvisions(t *testing.T) {
	app := newTestApp(t, routes.Deps{})

	resp, body := doJSON(t, app, "POST", "/auth/social-login", "", map[string]string{
		"email": "new@social.ng", "provider": "google",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Social User", data["name"])
	assert.Equal(t, "Pending", data["state"])
	assert.NotEmpty(t, data["token"])

	// second login reuses the provisioned account
	resp, body = doJSON(t, app, "POST", "/auth/social-login", "", map[string]string{
		"email": "new@social.ng", "provider": "google",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	again := body["data"].(map[string]interface{})
	assert.Equal(t, data["id"], again["id"])
}

func TestProfilePartialUpdate(t *testing.T) {
	app := newTestApp(t, routes.Deps{})
	token := signup(t, app, "partial@corps.ng", "")

	resp, body := doJSON(t, app, "PUT", "/auth/profile", token, map[string]string{
		"phone": "08031234567",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "08031234567", data["phone"])
	assert.Equal(t, "Test User", data["name"], "absent fields must stay untouched")

	// a later update leaves the phone intact
	resp, body = doJSON(t, app, "PUT", "/auth/profile", token, map[string]string{
		"state": "Lagos",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "Lagos", data["state"])
	assert.Equal(t, "08031234567", data["phone"])
}

func TestPublicEndpoints(t *testing.T) {
	app := newTestApp(t, routes.Deps{})

	resp, body := doJSON(t, app, "GET", "/", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "NYSC AI (Hybrid Mode) is Ready!", body["message"])

	resp, _ = doJSON(t, app, "GET", "/api/news", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/api/resources", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// the timeline is personalized
	resp, _ = doJSON(t, app, "GET", "/api/timeline", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token := signup(t, app, "tl@corps.ng", "")
	resp, body = doJSON(t, app, "GET", "/api/timeline", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Pending", body["deployment_state"])
	assert.Equal(t, "Open", body["registration_status"])
}

func submitClearance(t *testing.T, app *fiber.App, token, month string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("month", month))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/clearance/request", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestClearanceFlow(t *testing.T) {
	app := newTestApp(t, routes.Deps{})

	corps := signup(t, app, "cm@corps.ng", "")
	official := signup(t, app, "official@nysc.gov.ng", models.RoleOfficial)

	// one request per month
	resp := submitClearance(t, app, corps, "August 2026")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = submitClearance(t, app, corps, "August 2026")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = submitClearance(t, app, corps, "September 2026")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// officials cannot submit
	resp = submitClearance(t, app, official, "August 2026")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// owner sees both requests
	resp, _ = doJSON(t, app, "GET", "/clearance/my-history", corps, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// corps members cannot see the review queue
	resp, _ = doJSON(t, app, "GET", "/clearance/pending", corps, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/clearance/pending", official, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// review: approve once, then the decision is final
	resp, _ = doJSON(t, app, "PUT", "/clearance/1/action", official, map[string]string{
		"status": "Approved",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, "PUT", "/clearance/1/action", official, map[string]string{
		"status": "Rejected",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Clearance request already reviewed", body["error"])

	// only the two terminal statuses are accepted
	resp, _ = doJSON(t, app, "PUT", "/clearance/2/action", official, map[string]string{
		"status": "Maybe",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// unknown id
	resp, _ = doJSON(t, app, "PUT", "/clearance/999/action", official, map[string]string{
		"status": "Approved",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminEndpoints(t *testing.T) {
	app := newTestApp(t, routes.Deps{})

	corps := signup(t, app, "cm2@corps.ng", "")
	admin := signup(t, app, "admin@nysc.gov.ng", models.RoleAdmin)

	resp, _ := doJSON(t, app, "GET", "/admin/users", corps, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/admin/users", admin, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/admin/stats", admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, body["total_users"])

	// news titles are unique
	resp, _ = doJSON(t, app, "POST", "/admin/news", admin, map[string]string{
		"title": "Batch C mobilization begins",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, app, "POST", "/admin/news", admin, map[string]string{
		"title": "Batch C mobilization begins",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "A news item with this title already exists", body["error"])

	// without a search key the refresh job reports itself disabled
	resp, body = doJSON(t, app, "POST", "/admin/news/refresh", admin, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Web search is not configured", body["error"])

	resp, _ = doJSON(t, app, "POST", "/admin/resources", admin, map[string]string{
		"title": "Bye-Laws PDF", "url": "https://nysc.gov.ng/byelaws.pdf",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

type stubModel struct{ reply string }

func (m *stubModel) Name() string { return "stub" }

func (m *stubModel) Generate(_ context.Context, _, _ string) (string, error) {
	return m.reply, nil
}

func TestAskEndpoint(t *testing.T) {
	assistant := services.NewAssistantService(&stubModel{reply: "Camp opens in November."}, nil, nil)
	app := newTestApp(t, routes.Deps{Assistant: assistant})

	resp, body := doJSON(t, app, "POST", "/ask", "", map[string]string{
		"question": "When does camp open?",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Camp opens in November.", body["answer"])

	resp, _ = doJSON(t, app, "POST", "/ask", "", map[string]string{"question": "   "})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAskMaintenanceMode(t *testing.T) {
	app := newTestApp(t, routes.Deps{})

	resp, body := doJSON(t, app, "POST", "/ask", "", map[string]string{
		"question": "Anything",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, services.MsgMaintenance, body["answer"])
}

func TestTelegramAlwaysAcks(t *testing.T) {
	app := newTestApp(t, routes.Deps{})

	// well-formed update with a disabled bot token
	resp, body := doJSON(t, app, "POST", "/telegram", "", map[string]interface{}{
		"update_id": 1,
		"message":   map[string]interface{}{"chat": map[string]int64{"id": 5}, "text": "hi"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	// garbage body still acks so Telegram stops retrying
	req := httptest.NewRequest("POST", "/telegram", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp2.StatusCode)
}

func TestFullCorpsMemberJourney(t *testing.T) {
	app := newTestApp(t, routes.Deps{})

	token := signup(t, app, fmt.Sprintf("journey%d@corps.ng", 1), "")

	// complete the profile
	resp, _ := doJSON(t, app, "PUT", "/auth/profile", token, map[string]string{
		"state": "Kaduna", "state_code": "KD/26A/1234", "cds_group": "Road Safety",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// submit a clearance request and watch it through review
	resp = submitClearance(t, app, token, "August 2026")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	official := signup(t, app, "reviewer@nysc.gov.ng", models.RoleOfficial)
	resp, _ = doJSON(t, app, "PUT", "/clearance/1/action", official, map[string]interface{}{
		"status": "Approved", "comment": "All requirements met",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/clearance/my-history", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
