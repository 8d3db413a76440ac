package helper

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserIDFromToken(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name     string
		local    any
		wantCode int
	}{
		{"string", id.String(), 0},
		{"uuid", id, 0},
		{"bytes", []byte(id.String()), 0},
		{"missing", nil, fiber.StatusUnauthorized},
		{"blank", "  ", fiber.StatusUnauthorized},
		{"nil uuid", uuid.Nil, fiber.StatusUnauthorized},
		{"garbage", "abc", fiber.StatusBadRequest},
		{"wrong type", 42, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				if tt.local != nil {
					c.Locals(LocUserID, tt.local)
				}
				got, err := GetUserIDFromToken(c)
				if tt.wantCode == 0 {
					assert.NoError(t, err)
					assert.Equal(t, id, got)
					return c.SendStatus(fiber.StatusOK)
				}
				var fe *fiber.Error
				if assert.ErrorAs(t, err, &fe) {
					assert.Equal(t, tt.wantCode, fe.Code)
				}
				return c.SendStatus(fiber.StatusOK)
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		})
	}
}

func TestRoleAndMasterLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Equal(t, "", GetRoleFromToken(c))
		assert.False(t, IsMaster(c))
		c.Locals(LocRole, " leader_dept ")
		c.Locals(LocIsMaster, true)
		assert.Equal(t, "leader_dept", GetRoleFromToken(c))
		assert.True(t, IsMaster(c))
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
}

func TestTokenDigest(t *testing.T) {
	a := TokenDigest("token", "secret")
	assert.Len(t, a, 64)
	assert.Equal(t, a, TokenDigest("token", "secret"))
	assert.NotEqual(t, a, TokenDigest("token", "other"))
}

func TestBlacklistWithoutDB(t *testing.T) {
	ok, err := IsBlacklisted(context.Background(), nil, "tok", "secret")
	assert.NoError(t, err)
	assert.False(t, ok)

	n, err := PurgeExpired(context.Background(), nil, time.Now())
	assert.NoError(t, err)
	assert.Zero(t, n)
}
