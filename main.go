package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"zionhub_backend/internals/configs"
	database "zionhub_backend/internals/databases"
	checkinModel "zionhub_backend/internals/features/events/checkin/model"
	authModel "zionhub_backend/internals/features/users/auth/model"
	scheduler "zionhub_backend/internals/features/users/auth/scheduler"
	helper "zionhub_backend/internals/helpers"
	middlewares "zionhub_backend/internals/middlewares"
	routes "zionhub_backend/internals/route"
)

func main() {
	cfg := configs.Load()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app, cfg)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var db *gorm.DB
	if cfg.StoreDriver != configs.StoreDriverMemory {
		var err error
		db, err = database.ConnectDB(cfg.DB)
		if err != nil {
			log.Fatalf("❌ database: %+v", err)
		}
		if err := database.TunePool(db); err != nil {
			log.Fatalf("❌ pool: %+v", err)
		}
		if err := database.AutoMigrate(db, &checkinModel.EventAssignmentModel{}, &authModel.TokenBlacklist{}); err != nil {
			log.Fatalf("❌ migrate: %+v", err)
		}
		database.WarmUpQueries(db)

		scheduler.StartBlacklistCleanupScheduler(ctx, db, cfg.TokenBlacklistTTL)
	}

	routes.SetupRoutes(app, db, cfg)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s (store=%s)", cfg.Port, cfg.StoreDriver)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(shutdownCtx)

	database.Close(db)
}
