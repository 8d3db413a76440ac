package auth

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"zionhub_backend/internals/constants"
	helperAuth "zionhub_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret string
	// BlacklistChecker reports true when the raw token was revoked.
	BlacklistChecker func(ctx context.Context, rawToken string) (bool, error)
	// AllowCookieFallback reads the access_token cookie when no Bearer header is sent.
	AllowCookieFallback bool
}

// AuthJWT verifies the HS256 session token and hydrates user_id, church_id,
// userRole and is_master into Locals.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		// 1) token from Authorization: Bearer xxx (or cookie when allowed)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) blacklist (optional); lookup failures do not lock users out
		if o.BlacklistChecker != nil {
			black, err := o.BlacklistChecker(c.UserContext(), raw)
			if err != nil {
				log.Printf("[WARN] blacklist check failed: %v", err)
			} else if black {
				return fiber.NewError(fiber.StatusUnauthorized, "Token revoked")
			}
		}

		// 3) parse + pin the algorithm family
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		c.Locals(helperAuth.LocClaims, claims)

		// user id: userId / sub / user_id / id in order of preference
		userID := firstClaim(claims, "userId", "sub", "user_id", "id")
		if _, err := uuid.Parse(userID); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token has no valid user id")
		}
		c.Locals(helperAuth.LocUserID, userID)

		if churchID := firstClaim(claims, "churchId", "church_id"); churchID != "" {
			c.Locals(helperAuth.LocChurchID, churchID)
		}

		role := strings.ToLower(firstClaim(claims, "role"))
		if !constants.IsKnownRole(role) {
			role = constants.RoleMember
		}
		isMaster := boolClaim(claims, "isMaster") || boolClaim(claims, "is_master")
		if isMaster {
			role = constants.RoleMaster
		}
		c.Locals(helperAuth.LocRole, role)
		c.Locals(helperAuth.LocIsMaster, isMaster)

		return c.Next()
	}
}

// strClaim reads a trimmed string claim
func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstClaim(m jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s := strClaim(m, k); s != "" {
			return s
		}
	}
	return ""
}

func boolClaim(m jwt.MapClaims, key string) bool {
	switch t := m[key].(type) {
	case bool:
		return t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "true" || s == "1" || s == "yes"
	}
	return false
}
