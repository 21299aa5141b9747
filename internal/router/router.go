package router

import (
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/simple-twitter/backend/internal/handlers"
	"github.com/anonto42/simple-twitter/backend/internal/middleware"
	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/anonto42/simple-twitter/backend/internal/repositories"
	"github.com/anonto42/simple-twitter/backend/internal/services"
	"github.com/anonto42/simple-twitter/backend/pkg/config"
	"github.com/anonto42/simple-twitter/backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.RequestIDWithConfig(eMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.PrometheusMiddleware())
	e.Use(middleware.ZapRequestLogger())
	e.Use(eMiddleware.CORS())
	if cfg.RateLimit > 0 {
		e.Use(eMiddleware.RateLimiter(eMiddleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))
	}
	logger.L.Info("Global middleware configured.")
}

// Migrate creates or updates the relational schema.
func Migrate(pgdb *gorm.DB) error {
	return pgdb.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Reply{},
		&models.Like{},
		&models.Followship{},
	)
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, firebaseAuthClient *auth.Client) error {
	if err := Migrate(db.Postgres); err != nil {
		return fmt.Errorf("auto migrate models: %w", err)
	}
	logger.L.Info("PostgreSQL auto-migrations completed for all models.")

	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	// Health check - always accessible
	e.GET("/health", handlers.NewHealthHandler(sqlDB).HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	postRepo := repositories.NewPostgresPostRepository(db.Postgres)
	replyRepo := repositories.NewPostgresReplyRepository(db.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(db.Postgres)
	followshipRepo := repositories.NewPostgresFollowshipRepository(db.Postgres)

	// --- Initialize Services ---
	notificationService := services.NewNotificationService(nil)
	if db.Mongo != nil {
		notificationService = services.NewNotificationService(
			repositories.NewMongoNotificationRepository(db.Mongo.Database(cfg.MongoDatabase)),
		)
	}

	credentials := services.NewJWTCredentials(cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(userRepo, credentials, nil)
	if firebaseAuthClient != nil {
		userService.WithFirebase(firebaseAuthClient)
	}

	feedService := services.NewFeedService(userRepo, postRepo, replyRepo, likeRepo, followshipRepo).
		WithFanoutLimit(cfg.FanoutLimit)
	if db.Redis != nil {
		feedService.WithTopUsersCache(repositories.NewRedisTopUsersCache(db.Redis, cfg.TopUsersCacheTTL))
	}

	followService := services.NewFollowService(followshipRepo, userRepo, notificationService)
	postService := services.NewPostService(postRepo, replyRepo, likeRepo, notificationService)

	// --- Unprotected routes for authentication ---
	public := e.Group("/api")
	handlers.NewAuthHandler(userService).RegisterAuthRoutes(public)
	logger.L.Info("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(credentials))

	handlers.NewUserHandler(userService, feedService).RegisterProfileRoutes(api)
	handlers.NewFollowHandler(followService).RegisterFollowRoutes(api)
	handlers.NewPostHandler(postService, feedService).RegisterPostRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)

	logger.L.Info("All routes configured.")
	return nil
}
