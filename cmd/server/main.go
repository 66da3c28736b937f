package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"secadmin/internal/admin/config"
	"secadmin/internal/admin/directory"
	"secadmin/internal/admin/handler"
	"secadmin/internal/admin/matrix"
	"secadmin/internal/admin/registry"
	"secadmin/internal/admin/repository"
	"secadmin/internal/admin/router"
	"secadmin/internal/admin/util"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// 0. Init Logger
	util.InitLogger()
	logger := util.GetLogger()

	// 1. Load Config (.env first, real env wins)
	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. Init MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	// 3. Init Layers
	db := client.Database(cfg.DBName)
	repo := repository.NewMongoRepository(db, cfg.PermissionsCollection, cfg.EstablishmentsCollection, cfg.UsersCollection)

	if err := repo.EnsureIndexes(context.Background()); err != nil {
		logger.Warn("Failed to ensure indexes", "error", err)
	}

	reg, err := registry.New()
	if err != nil {
		logger.Error("Failed to load page catalog", "error", err)
		os.Exit(1)
	}

	dir := directory.NewCached(directory.NewMongoSource(db, cfg.UsersCollection), cfg.DirectoryCacheTTL)
	engine := matrix.NewEngine(dir, reg, repo, cfg.StoreTimeout, logger)
	h := handler.NewAdminHandler(engine, repo, dir)

	// Warm the grid; a failed first load is retried lazily per request.
	if err := engine.Load(context.Background()); err != nil {
		logger.Warn("Initial grid load failed", "error", err)
	}

	// 4. Init Echo & Routes
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	router.RegisterRoutes(e, h, cfg.AuthSecret)

	// 5. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("shutting down the server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server Shutdown Failed", "error", err)
	}

	if err := client.Disconnect(ctx); err != nil {
		logger.Error("Failed to disconnect DB", "error", err)
	}

	logger.Info("Server exited properly")
}
