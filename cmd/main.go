package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/Payphone-Digital/auth-service/config"
	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/internal/handler"
	"github.com/Payphone-Digital/auth-service/internal/middleware"
	"github.com/Payphone-Digital/auth-service/internal/repository"
	"github.com/Payphone-Digital/auth-service/internal/router"
	"github.com/Payphone-Digital/auth-service/internal/service"
	"github.com/Payphone-Digital/auth-service/pkg/circuit"
	"github.com/Payphone-Digital/auth-service/pkg/database"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/Payphone-Digital/auth-service/pkg/redis"
	"github.com/Payphone-Digital/auth-service/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	if config.UsesDefaultSecrets() {
		logger.GetLogger().Warn("Using built-in JWT secrets; set JWT_SECRET and REFRESH_TOKEN_SECRET")
		if config.IsProduction() {
			logger.GetLogger().Fatal("Built-in JWT secrets are not allowed in production")
		}
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, database.Config{
		DSN:             config.DatabaseConnectionString(),
		Environment:     config.App.Environment,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	hasher := service.NewBcryptHasher(config.Hash.Cost)
	tokens := service.NewJWTService(config.JWT)
	registry := validation.NewRegistry(validation.WithBaseVersion(config.App.APIVersion))
	if registry.Base() != config.App.APIVersion {
		logger.GetLogger().Warn("API_VERSION has no schema, using base version",
			zap.String("api_version", config.App.APIVersion),
			zap.String("base_version", registry.Base()),
		)
	}

	userRepo := repository.NewUserRepository(db, hasher)
	employeeRepo := repository.NewEmployeeRepository(db)

	if config.Seed.Enabled {
		created, err := database.Seed(ctx, userRepo, registry.Registration(ctx, constants.APIVersionV1), database.SeedAccount{
			Username: config.Seed.Username,
			Email:    config.Seed.Email,
			Password: config.Seed.Password,
		})
		if err != nil {
			logger.GetLogger().Fatal("Failed to seed database", zap.Error(err))
		}
		logger.GetLogger().Info("Seed account checked",
			zap.String("email", config.Seed.Email),
			zap.Bool("created", created),
		)
	}

	var (
		limiter    middleware.Limiter = middleware.NewMemoryLimiter(config.RateLimit.Request, config.RateLimitWindow())
		redisCheck handler.Check
	)
	if config.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, config)
		if err != nil {
			logger.GetLogger().Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()

		limiter = middleware.NewFallbackLimiter(
			middleware.NewRedisLimiter(redisClient, config.RateLimit.Request, config.RateLimitWindow()),
			limiter,
			circuit.NewBreaker("redis-rate-limit", circuit.DefaultConfig(), logger.GetLogger()),
		)
		redisCheck = redisClient.Ping
	}
	logger.GetLogger().Info("Rate limiter initialized",
		zap.Bool("redis", config.Redis.Enabled),
		zap.Int("max_requests", config.RateLimit.Request),
		zap.Duration("window", config.RateLimitWindow()),
	)

	authService, err := service.NewAuthService(userRepo, hasher, tokens, registry)
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize auth service", zap.Error(err))
	}
	employeeService := service.NewEmployeeService(employeeRepo, registry)

	authHandler := handler.NewAuthHandler(authService, handler.CookieOptions{Secure: config.IsProduction()})
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	healthHandler := handler.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}, redisCheck)

	r := router.NewRouter(
		authHandler,
		employeeHandler,
		healthHandler,

		middleware.NewJWTMiddleware(tokens),
		limiter,
	).SetupRoutes()

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       config.App.Timeout,
		WriteTimeout:      config.App.Timeout,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.Strings("api_versions", registry.Versions()),
			zap.String("base_version", registry.Base()),
			zap.Bool("debug", config.App.Debug),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().Error("Server forced to shutdown", zap.Error(err))
	}
	logger.GetLogger().Info("Server exited")
}
