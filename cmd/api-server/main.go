package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"gamesarchive/database"
	"gamesarchive/internal/config"
	"gamesarchive/internal/formstash"
	"gamesarchive/internal/httpapi/handler"
	"gamesarchive/internal/httpapi/middleware"
	"gamesarchive/internal/httpapi/models"
	"gamesarchive/internal/httpapi/repository"
	"gamesarchive/internal/httpapi/service"
	"gamesarchive/internal/logger"
	"gamesarchive/internal/messaging"
	"gamesarchive/internal/storage/s3"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	store, err := s3.NewClient(context.Background(), cfg, log)
	if err != nil {
		log.Error("object store connection failed", "error", err)
		os.Exit(1)
	}

	queue, err := messaging.NewClient(cfg, log)
	if err != nil {
		log.Error("message broker connection failed", "error", err)
		os.Exit(1)
	}
	defer queue.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	gameRepo := repository.NewGameRepository(db)
	consoleRepo := repository.NewConsoleRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	screenshotRepo := repository.NewScreenshotRepository(db)

	// Services
	stash := formstash.New(rdb, cfg.StashTTL)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo, store)
	gameService := service.NewGameService(gameRepo, consoleRepo, supplierRepo, ratingRepo, store)
	consoleService := service.NewConsoleService(consoleRepo, supplierRepo, ratingRepo, store)
	supplierService := service.NewSupplierService(supplierRepo, store)
	ratingService := service.NewRatingService(ratingRepo, gameRepo, consoleRepo)
	commentService := service.NewCommentService(commentRepo, gameRepo, consoleRepo, stash)
	reviewService := service.NewReviewService(reviewRepo, gameRepo)
	screenshotService := service.NewScreenshotService(screenshotRepo, gameRepo, userRepo, store, queue)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, cfg.MaxUploadBytes)
	gameHandler := handler.NewGameHandler(gameService, cfg.MaxUploadBytes)
	consoleHandler := handler.NewConsoleHandler(consoleService, cfg.MaxUploadBytes)
	supplierHandler := handler.NewSupplierHandler(supplierService, cfg.MaxUploadBytes)
	ratingHandler := handler.NewRatingHandler(ratingService)
	commentHandler := handler.NewCommentHandler(commentService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	screenshotHandler := handler.NewScreenshotHandler(screenshotService, cfg.MaxUploadBytes)
	adminHandler := handler.NewAdminHandler(userService, gameService, consoleService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Telemetry(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Auth endpoints get a per-IP limiter to slow down credential stuffing.
	authLimiter := middleware.NewRateLimiter(rate.Limit(5), 10)
	authGroup := api.Group("")
	authGroup.Use(authLimiter.Middleware())
	authHandler.RegisterRoutes(authGroup)

	// Signed-in surface
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	authHandler.RegisterProtectedRoutes(authed)
	userHandler.RegisterRoutes(authed)
	userHandler.RegisterPublicRoutes(api)

	staff := api.Group("")
	staff.Use(middleware.AuthMiddleware(authService), middleware.RequireStaff())
	adminHandler.RegisterRoutes(staff)

	// Catalog: public reads carry optional auth so pages can render
	// viewer-specific bits (like a stashed comment) for signed-in users.
	gamesPublic := api.Group("/games")
	gamesPublic.Use(middleware.OptionalAuthMiddleware(authService))
	gamesAuthed := api.Group("/games")
	gamesAuthed.Use(middleware.AuthMiddleware(authService))

	consolesPublic := api.Group("/consoles")
	consolesPublic.Use(middleware.OptionalAuthMiddleware(authService))
	consolesAuthed := api.Group("/consoles")
	consolesAuthed.Use(middleware.AuthMiddleware(authService))

	gameHandler.RegisterRoutes(gamesPublic, gamesAuthed)
	consoleHandler.RegisterRoutes(consolesPublic, consolesAuthed)

	ratingHandler.RegisterRoutes(gamesPublic, gamesAuthed, models.KindGame, "game_id")
	ratingHandler.RegisterRoutes(consolesPublic, consolesAuthed, models.KindConsole, "console_id")

	commentHandler.RegisterRoutes(gamesPublic, models.KindGame, "game_id")
	commentHandler.RegisterRoutes(consolesPublic, models.KindConsole, "console_id")
	commentHandler.RegisterUserRoutes(authed)
	authed.DELETE("/comments/:comment_id", commentHandler.DeleteComment)

	reviewHandler.RegisterRoutes(gamesPublic, gamesAuthed)
	authed.DELETE("/reviews/:review_id", reviewHandler.Delete)

	screenshotHandler.RegisterGameRoutes(gamesPublic, gamesAuthed)
	screenshotHandler.RegisterRoutes(api, authed)

	suppliersPublic := api.Group("/suppliers")
	suppliersStaff := api.Group("/suppliers")
	suppliersStaff.Use(middleware.AuthMiddleware(authService), middleware.RequireStaff())
	supplierHandler.RegisterRoutes(suppliersPublic, suppliersStaff)

	// Expired refresh tokens are dead rows; sweep them in the background.
	tokenGC := time.NewTicker(12 * time.Hour)
	defer tokenGC.Stop()
	go func() {
		for range tokenGC.C {
			if err := authService.PurgeExpiredTokens(); err != nil {
				log.Error("refresh token sweep failed", "error", err)
			}
		}
	}()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
}
