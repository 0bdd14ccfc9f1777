package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/handlers"
)

type panickingSet struct{}

func (panickingSet) Operations() map[string]handlers.Operation {
	return map[string]handlers.Operation{
		"boom": {Name: "boom", Method: fiber.MethodGet, Handle: func(*fiber.Ctx, string) error {
			panic("kaboom")
		}},
	}
}

func TestRouter_PanicBecomesServerError(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(recover.New())
	handlers.NewRouter(nil, panickingSet{}).RegisterRoutes(app.Group("/api"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 500, body.Status)
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.Equal(t, "kaboom", body.Error)
}

func TestRouter_DuplicatePrimaryPanics(t *testing.T) {
	assert.Panics(t, func() {
		handlers.NewRouter(nil, panickingSet{}, panickingSet{})
	})
}
