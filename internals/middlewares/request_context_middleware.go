package middlewares

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"zionhub_backend/internals/helpers/dbtime"
)

const LocRequestID = "reqid"

// RequestContext tags the request with an X-Request-ID, bounds it with a
// timeout (aligned with the DB statement_timeout) and logs its duration.
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = utils.UUIDv4()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals(LocRequestID, id)

		start := time.Now()
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}

// ChurchLocation exposes the church timezone to handlers via Locals.
func ChurchLocation(loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(dbtime.LocChurchLoc, loc)
		return c.Next()
	}
}
