package route

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"zionhub_backend/internals/constants"
	"zionhub_backend/internals/features/events/checkin/controller"
	"zionhub_backend/internals/middlewares"
	authMiddleware "zionhub_backend/internals/middlewares/auth"
)

// CheckinRoutes mounts /checkin under an authenticated router.
func CheckinRoutes(r fiber.Router, ctl *controller.CheckinController) {
	g := r.Group("/checkin")

	leaders := authMiddleware.OnlyRoles(constants.RoleErrorLeader("event check-in management"), constants.LeaderAndAbove...)
	scans := middlewares.CheckinRateLimiter(20, time.Minute)

	g.Get("/history/me", ctl.GetMyHistory)
	g.Post("/validate", scans, ctl.ValidateQRCode)

	g.Get("/:id/qrcode", leaders, ctl.GenerateQRCode)
	g.Post("/:id/checkin", scans, ctl.CheckIn)
	g.Post("/:id/checkout", scans, ctl.CheckOut)
	g.Get("/:id/attendance", ctl.GetEventAttendance)
	g.Get("/:id/roster", ctl.GetEventRoster)
	g.Delete("/:id/attendance/:user_id", leaders, ctl.Reset)
}
