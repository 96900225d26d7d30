package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/OzanKEreal/EndlleesTube/config"
	"github.com/OzanKEreal/EndlleesTube/db"
	authhandler "github.com/OzanKEreal/EndlleesTube/internal/auth/handler"
	authrepo "github.com/OzanKEreal/EndlleesTube/internal/auth/repository/postgres"
	authservice "github.com/OzanKEreal/EndlleesTube/internal/auth/service"
	"github.com/OzanKEreal/EndlleesTube/internal/health"
	"github.com/OzanKEreal/EndlleesTube/internal/logging"
	videohandler "github.com/OzanKEreal/EndlleesTube/internal/video/handler"
	videorepo "github.com/OzanKEreal/EndlleesTube/internal/video/repository/postgres"
	videoservice "github.com/OzanKEreal/EndlleesTube/internal/video/service"
)

func main() {
	cfg := config.Load()
	log := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Error(ctx, "failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Error(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := authrepo.NewUserRepository(pool)
	sessionStore := authrepo.NewRefreshSessionStore(pool, cfg.RefreshHashKey)
	tokenService := authservice.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	hasher := authservice.NewArgon2Hasher(authservice.DefaultArgon2Params())

	userService, err := authservice.NewUserService(userRepo, sessionStore, tokenService, hasher, log)
	if err != nil {
		log.Error(ctx, "failed to build user service", "error", err)
		os.Exit(1)
	}

	videoService := videoservice.NewVideoService(
		videorepo.NewVideoRepository(pool),
		videorepo.NewCommentRepository(pool),
		videorepo.NewEngagementRepository(pool),
		log,
	)

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.VideoMaxBytes),
	})
	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: cfg.CORSOrigins != "*",
	}))

	app.Static("/uploads", cfg.UploadDir)

	authhandler.RegisterRoutes(app, authhandler.NewAuthHandler(userService, tokenService, cfg))
	videohandler.RegisterRoutes(app, videohandler.NewVideoHandler(videoService, cfg), tokenService)
	health.RegisterRoutes(app, health.NewHandler(pool))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	log.Info(ctx, "starting server", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
