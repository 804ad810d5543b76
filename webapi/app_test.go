package webapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/finance/pkg/app"
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/testutils"
	"github.com/amirasaad/finance/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Run()
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.App{
		Env:       "test",
		Server:    &config.Server{Host: "localhost", Port: 3000},
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: "test-secret", Expiry: time.Hour}},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		Alerts:    &config.Alerts{IncreaseThreshold: 20, SuggestionMargin: 10},
	}
	deps := config.Deps{
		Uow:    testutils.NewUoW(testutils.NewStore()),
		Logger: slog.Default(),
		Config: cfg,
	}
	return webapi.SetupApp(app.New(deps))
}

func doJSON(t *testing.T, fiberApp *fiber.App, method, path, token string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp, decoded
}

func registerAndLogin(t *testing.T, fiberApp *fiber.App) string {
	t.Helper()
	email := fmt.Sprintf("user-%d@example.com", time.Now().UnixNano())
	resp, _ := doJSON(t, fiberApp, http.MethodPost, "/users/register", "", map[string]any{
		"name":     "Ada",
		"email":    email,
		"password": "correct horse battery",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, fiberApp, http.MethodPost, "/users/login", "", map[string]any{
		"email":    email,
		"password": "correct horse battery",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginAndSpend(t *testing.T) {
	fiberApp := newTestApp(t)
	token := registerAndLogin(t, fiberApp)

	resp, body := doJSON(t, fiberApp, http.MethodPost, "/accounts", token, map[string]any{
		"kind":    "debit",
		"name":    "Checking",
		"balance": "500",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	accountID := body["data"].(map[string]any)["id"].(string)

	resp, body = doJSON(t, fiberApp, http.MethodPost, "/transactions", token, map[string]any{
		"account_id": accountID,
		"kind":       "expense",
		"amount":     "120.50",
		"category":   "food",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)

	resp, body = doJSON(t, fiberApp, http.MethodGet, "/accounts/"+accountID, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	balance := body["data"].(map[string]any)["balance"].(string)
	assert.Equal(t, "379.5", balance)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	fiberApp := newTestApp(t)
	for _, path := range []string{"/accounts", "/transactions", "/dashboard", "/budgets/alerts"} {
		resp, _ := doJSON(t, fiberApp, http.MethodGet, path, "", nil)
		assert.NotEqual(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestRecordOverdraftRejected(t *testing.T) {
	fiberApp := newTestApp(t)
	token := registerAndLogin(t, fiberApp)

	resp, body := doJSON(t, fiberApp, http.MethodPost, "/accounts", token, map[string]any{
		"kind":    "debit",
		"name":    "Checking",
		"balance": "50",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	accountID := body["data"].(map[string]any)["id"].(string)

	resp, body = doJSON(t, fiberApp, http.MethodPost, "/transactions", token, map[string]any{
		"account_id": accountID,
		"kind":       "expense",
		"amount":     "50.01",
		"category":   "food",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode, body)
}

func TestTransferEndpoint(t *testing.T) {
	fiberApp := newTestApp(t)
	token := registerAndLogin(t, fiberApp)

	create := func(name string) string {
		resp, body := doJSON(t, fiberApp, http.MethodPost, "/accounts", token, map[string]any{
			"kind":    "debit",
			"name":    name,
			"balance": "100",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
		return body["data"].(map[string]any)["id"].(string)
	}
	source, dest := create("Source"), create("Dest")

	resp, body := doJSON(t, fiberApp, http.MethodPost, "/transfers", token, map[string]any{
		"source_account_id": source,
		"dest_account_id":   dest,
		"amount":            "40",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	assert.NotEmpty(t, body["data"].(map[string]any)["transfer_group_id"])

	resp, body = doJSON(t, fiberApp, http.MethodGet, "/transactions?grouped=true", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	entries := body["data"].([]any)
	assert.Len(t, entries, 1, "the transfer pair collapses to one entry")
}

func TestBudgetLifecycle(t *testing.T) {
	fiberApp := newTestApp(t)
	token := registerAndLogin(t, fiberApp)

	payload := map[string]any{
		"category": "food",
		"limit":    "1000",
		"month":    3,
		"year":     2026,
	}
	resp, body := doJSON(t, fiberApp, http.MethodPost, "/budgets", token, payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)

	resp, _ = doJSON(t, fiberApp, http.MethodPost, "/budgets", token, payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "one budget per category and period")

	resp, body = doJSON(t, fiberApp, http.MethodGet, "/budgets/alerts?month=3&year=2026", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]any), 1)
}
