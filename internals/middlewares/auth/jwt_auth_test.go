package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zionhub_backend/internals/constants"
	helper "zionhub_backend/internals/helpers"
	helperAuth "zionhub_backend/internals/helpers/auth"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func newApp(opts AuthJWTOpts, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	handlers := append([]fiber.Handler{AuthJWT(opts)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   c.Locals(helperAuth.LocUserID),
			"church_id": c.Locals(helperAuth.LocChurchID),
			"role":      c.Locals(helperAuth.LocRole),
			"is_master": c.Locals(helperAuth.LocIsMaster),
		})
	})
	app.Get("/me", handlers...)
	return app
}

func do(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthJWT(t *testing.T) {
	user, church := uuid.New().String(), uuid.New().String()
	exp := time.Now().Add(time.Hour).Unix()
	app := newApp(AuthJWTOpts{Secret: testSecret})

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"valid", sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"userId": user, "churchId": church, "role": "member", "exp": exp}), fiber.StatusOK},
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"userId": user, "exp": exp}), fiber.StatusUnauthorized},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"userId": user, "exp": time.Now().Add(-time.Minute).Unix()}), fiber.StatusUnauthorized},
		{"no user id", sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"churchId": church, "exp": exp}), fiber.StatusUnauthorized},
		{"none alg", sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"userId": user, "exp": exp}), fiber.StatusUnauthorized},
		{"garbage", "abc.def.ghi", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(t, app, tt.token))
		})
	}
}

func TestAuthJWTBlacklist(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"userId": uuid.New().String(), "exp": time.Now().Add(time.Hour).Unix()})

	revoked := newApp(AuthJWTOpts{Secret: testSecret, BlacklistChecker: func(context.Context, string) (bool, error) { return true, nil }})
	assert.Equal(t, fiber.StatusUnauthorized, do(t, revoked, token))

	failing := newApp(AuthJWTOpts{Secret: testSecret, BlacklistChecker: func(context.Context, string) (bool, error) { return false, errors.New("db down") }})
	assert.Equal(t, fiber.StatusOK, do(t, failing, token))
}

func TestAuthJWTCookieFallback(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"userId": uuid.New().String(), "exp": time.Now().Add(time.Hour).Unix()})

	for _, allow := range []bool{true, false} {
		app := newApp(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: allow})
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Cookie", "access_token="+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		if allow {
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		} else {
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		}
	}
}

func TestOnlyRoles(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	app := newApp(AuthJWTOpts{Secret: testSecret}, OnlyRoles(constants.RoleErrorLeader("check-in QR"), constants.LeaderAndAbove...))

	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   int
	}{
		{"leader", jwt.MapClaims{"role": constants.RoleLeaderMinistry}, fiber.StatusOK},
		{"dept leader", jwt.MapClaims{"role": "LEADER_DEPT"}, fiber.StatusOK},
		{"member", jwt.MapClaims{"role": constants.RoleMember}, fiber.StatusForbidden},
		{"unknown role falls back to member", jwt.MapClaims{"role": "pastor"}, fiber.StatusForbidden},
		{"master flag wins", jwt.MapClaims{"role": constants.RoleMember, "isMaster": true}, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.claims["userId"] = uuid.New().String()
			tt.claims["exp"] = exp
			assert.Equal(t, tt.want, do(t, app, sign(t, jwt.SigningMethodHS256, []byte(testSecret), tt.claims)))
		})
	}
}

func TestAuthJWTRequiresSecret(t *testing.T) {
	assert.Panics(t, func() { AuthJWT(AuthJWTOpts{}) })
}
