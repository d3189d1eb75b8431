package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"campus_events_backend/internals/configs"
	database "campus_events_backend/internals/databases"
	catService "campus_events_backend/internals/features/events/categories/service"
	scheduler "campus_events_backend/internals/features/users/auth/scheduler"
	authService "campus_events_backend/internals/features/users/auth/service"
	"campus_events_backend/internals/helpers/dbtime"
	"campus_events_backend/internals/helpers/storage"
	middlewares "campus_events_backend/internals/middlewares"
	routes "campus_events_backend/internals/route"
	"campus_events_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	dbtime.DefaultTimezone = configs.AppTimezone

	app := fiber.New(middlewares.ServerConfig())

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + schema
	database.ConnectDB()
	database.TunePool()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	database.WarmUpQueries()

	if configs.GetEnvBool("SEED_ON_START", false) {
		if err := seeds.RunAllSeeds(database.DB, configs.GetEnv("SEED_DIR", seeds.DefaultDir)); err != nil {
			log.Printf("[WARN] seeding incomplete: %v", err)
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	categories := catService.NewCache(database.DB)
	if err := categories.Warm(ctx); err != nil {
		log.Printf("[WARN] category cache warm-up failed: %v", err)
	}

	// ⏱ scheduler after the DB is ready
	scheduler.StartSessionCleanupScheduler(ctx, database.DB, configs.GetEnvDuration("SESSION_CLEANUP_INTERVAL", time.Hour))

	routes.SetupRoutes(app, routes.Deps{
		DB:           database.DB,
		Sessions:     authService.NewSessionService(database.DB, configs.SessionSecret, configs.SessionTTL),
		Categories:   categories,
		Images:       storage.NewImageStoreFromEnv(),
		Google:       authService.NewGoogleVerifier(configs.GoogleClientID),
		SecureCookie: configs.IsProduction(),
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(shutdownCtx)

	database.Close(database.DB)
}
