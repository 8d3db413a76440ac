package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"zionhub_backend/internals/configs"
	helperAuth "zionhub_backend/internals/helpers/auth"
	authMiddleware "zionhub_backend/internals/middlewares/auth"
	routeDetails "zionhub_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes mounts every route group. db may be nil when STORE_DRIVER=memory.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db, cfg)

	log.Println("[INFO] Setting up PRIVATE group...")
	api := app.Group("/api",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              cfg.JWTSecret,
			BlacklistChecker:    helperAuth.BlacklistChecker(db, cfg.JWTSecret),
			AllowCookieFallback: true,
		}),
	)

	log.Println("[INFO] Mounting Event check-in routes...")
	routeDetails.EventRoutes(api, db, cfg)
}
