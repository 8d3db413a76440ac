package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ResolveLimit reads ?limit= (alias ?per_page=) and normalizes it.
// - defaultLimit: fallback when missing/invalid
// - maxLimit: upper bound (0 = unbounded)
func ResolveLimit(c *fiber.Ctx, defaultLimit, maxLimit int) int {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("per_page"))
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return limit
}
