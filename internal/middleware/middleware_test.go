package middleware_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/middleware"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/services"
)

func newCORSApp() (*fiber.App, *bool) {
	reached := false
	app := fiber.New()
	app.Use(middleware.CORS([]string{"https://shop.example.com"}))
	app.All("/*", func(c *fiber.Ctx) error {
		reached = true
		return c.SendString("handled")
	})
	return app, &reached
}

func TestCORS_EchoesAllowedOrigin(t *testing.T) {
	app, _ := newCORSApp()

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "https://shop.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", resp.Header.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestCORS_OmitsUnknownOrigin(t *testing.T) {
	app, _ := newCORSApp()

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	app, reached := newCORSApp()

	req := httptest.NewRequest(http.MethodOptions, "/api/anything/at/all", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
	assert.False(t, *reached, "preflight must not reach the handler")
	assert.Equal(t, "https://shop.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

type stubValidator struct {
	claims *services.Claims
	err    error
}

func (s stubValidator) ValidateToken(string) (*services.Claims, error) {
	return s.claims, s.err
}

func runGuard(t *testing.T, v middleware.TokenValidator, header string) (*services.Claims, error) {
	t.Helper()
	app := fiber.New()
	guard := middleware.Authenticate(v)

	var gotClaims *services.Claims
	var gotErr error
	app.Get("/", func(c *fiber.Ctx) error {
		gotErr = guard(c)
		gotClaims = middleware.ClaimsFrom(c)
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return gotClaims, gotErr
}

func TestAuthenticate(t *testing.T) {
	ok := stubValidator{claims: &services.Claims{Username: "alice"}}

	claims, err := runGuard(t, ok, "Bearer good")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	tests := []struct {
		name      string
		validator middleware.TokenValidator
		header    string
		message   string
	}{
		{"missing header", ok, "", "Authorization header is missing"},
		{"wrong scheme", ok, "Basic abc", "Authorization header format must be 'Bearer <token>'"},
		{"expired", stubValidator{err: fmt.Errorf("%w: x", services.ErrTokenExpired)}, "Bearer t", "Token has expired"},
		{"malformed", stubValidator{err: fmt.Errorf("%w: x", services.ErrTokenMalformed)}, "Bearer t", "Invalid token"},
		{"bad signature", stubValidator{err: fmt.Errorf("%w: x", services.ErrTokenInvalid)}, "Bearer t", "Token verification failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := runGuard(t, tt.validator, tt.header)
			assert.Nil(t, claims)
			var fe *fiber.Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, fiber.StatusUnauthorized, fe.Code)
			assert.Equal(t, tt.message, fe.Message)
		})
	}
}

func TestMetrics_CountsByOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg, "test")

	app := fiber.New()
	app.Use(metrics.Handler())
	app.Get("/api/items", func(c *fiber.Ctx) error {
		c.Locals(middleware.OperationKey, "list-items")
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/items", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "list-items", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.RequestsInFlight))
}
