package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/example/bazaar/internal/config"
	"github.com/example/bazaar/internal/store"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := &config.Config{
		AppPort:      "0",
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
	}

	app := fiber.New()
	notifier := Register(app, st, cfg)
	t.Cleanup(notifier.Close)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, map[string]any) {
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

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"name":             "Asha",
		"email":            "asha@x.com",
		"phone":            "9876543210",
		"password":         "Passw0rd!",
		"confirm_password": "Passw0rd!",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"identifier": "asha@x.com",
		"password":   "Passw0rd!",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterDuplicateEmailReturnsConflict(t *testing.T) {
	app := newTestApp(t)
	registerAndLogin(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"name":             "Other",
		"email":            "asha@x.com",
		"phone":            "9123456780",
		"password":         "Passw0rd!",
		"confirm_password": "Passw0rd!",
	}, "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Email or phone already registered", body["message"])
}

func TestLoginFailureReturnsGenericMessage(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"identifier": "nobody@x.com",
		"password":   "whatever1",
	}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Invalid email/phone or password", body["message"])
}

func TestPlaceOrderRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"name": "Asha", "email": "asha@x.com", "address": "somewhere", "payment_method": "card",
	}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPlaceOrderEmptyCartIsStateError(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"name": "Asha", "email": "asha@x.com", "address": "somewhere", "payment_method": "card",
	}, token)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Cart is empty", body["message"])
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	product := map[string]any{"id": 7, "title": "Widget", "price": 10.0}

	for _, qty := range []int{2, 3} {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/cart/items", map[string]any{
			"product": product, "quantity": qty,
		}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/cart", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	require.InDelta(t, 50.0, data["total_usd"].(float64), 1e-9)
	require.InDelta(t, 4250.0, data["total_inr"].(float64), 1e-9)
	require.Len(t, data["items"].([]any), 1)

	resp, body = doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"name": "Asha", "email": "asha@x.com", "address": "12 MG Road", "payment_method": "card",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := body["data"].(map[string]any)
	require.Equal(t, "4250", order["totalINR"])
	require.Equal(t, "Confirmed", order["status"])

	// Cart emptied by checkout.
	resp, body = doJSON(t, app, http.MethodGet, "/api/cart", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	require.Empty(t, data["items"])

	// Ledger lists the order newest-first.
	resp, body = doJSON(t, app, http.MethodGet, "/api/orders", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	orders := body["data"].([]any)
	require.Len(t, orders, 1)
	require.Equal(t, order["id"], orders[0].(map[string]any)["id"])
}

func TestOtpLoginOverHTTP(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/otp/request", map[string]string{
		"phone": "9000000001",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The engine delivered the code to the mock mailbox.
	resp, body := doJSON(t, app, http.MethodGet, "/api/mailbox/9000000001", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	msg := body["data"].(map[string]any)
	code := msg["otp"].(string)
	require.Len(t, code, 4)

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/otp/verify", map[string]string{
		"phone": "9000000001",
		"code":  code,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, body["token"])
	session := body["data"].(map[string]any)
	require.Equal(t, true, session["phone_verified"])
}

func TestLogoutInvalidatesToken(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/logout", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/orders", nil, token)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
