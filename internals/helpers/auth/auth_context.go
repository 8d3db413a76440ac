package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys hydrated by the AuthJWT middleware
const (
	LocUserID   = "user_id"   // string
	LocChurchID = "church_id" // string
	LocRole     = "userRole"  // string
	LocIsMaster = "is_master" // bool
	LocClaims   = "jwt_claims"
)

func uuidFromLocals(c *fiber.Ctx, key, label string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, label+" missing from session")
	}

	var s string
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, label+" missing from session")
		}
		return t, nil
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, label+" in token is invalid")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, label+" missing from session")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, label+" in token is invalid")
	}
	return id, nil
}

// GetUserIDFromToken returns 401 when not logged in, 400 when malformed.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocUserID, "user id")
}

func GetChurchIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocChurchID, "church id")
}

func GetRoleFromToken(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocRole).(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func IsMaster(c *fiber.Ctx) bool {
	b, _ := c.Locals(LocIsMaster).(bool)
	return b
}
