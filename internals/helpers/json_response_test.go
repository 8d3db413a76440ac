package helper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, app *fiber.App, path string) (int, ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/fiber", func(*fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "event not found") })
	app.Get("/plain", func(*fiber.Ctx) error { return errors.New("boom") })
	app.Get("/limited", func(c *fiber.Ctx) error { return JsonError(c, fiber.StatusTooManyRequests, "slow down") })

	tests := []struct {
		path    string
		status  int
		code    string
		message string
	}{
		{"/fiber", fiber.StatusNotFound, "NOT_FOUND", "event not found"},
		{"/plain", fiber.StatusInternalServerError, "INTERNAL_ERROR", fiber.ErrInternalServerError.Message},
		{"/limited", fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS", "slow down"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := decode(t, app, tt.path)
			assert.Equal(t, tt.status, status)
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.ErrorCode)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestValidationError(t *testing.T) {
	type payload struct {
		QRCodeData string `validate:"required"`
	}
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ValidationError(c, validator.New().Struct(payload{}))
	})

	status, body := decode(t, app, "/")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, []string{"required"}, body.Errors["qrcodedata"])
}

func TestResolveLimit(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(strconv.Itoa(ResolveLimit(c, 20, 100)))
	})

	tests := []struct {
		query string
		want  string
	}{
		{"", "20"},
		{"?limit=5", "5"},
		{"?limit=0", "20"},
		{"?limit=-3", "20"},
		{"?limit=abc", "20"},
		{"?limit=500", "100"},
		{"?per_page=7", "7"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(body))
		})
	}
}
