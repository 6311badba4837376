package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-trading-journal/internal/api/config"
	delivery "golang-trading-journal/internal/api/delivery/http"
	_ "golang-trading-journal/internal/api/docs"
	"golang-trading-journal/internal/api/repository"
	"golang-trading-journal/internal/api/service"
	"golang-trading-journal/internal/leaderboard"
	"golang-trading-journal/pkg/logger"
	"golang-trading-journal/pkg/postgres"
	"golang-trading-journal/pkg/redis"
	"golang-trading-journal/pkg/utils"
	"golang-trading-journal/pkg/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the trading journal API",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting API Service", logger.Field("name", cfg.App.Name), logger.StringField("time_zone", cfg.App.TimeZone))
	if cfg.Auth.JWTSecret == "" {
		appLogger.Fatal("auth.jwt_secret is required")
	}

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	defer db.Close()

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	tradeRepo := repository.NewTradeRepository(db.DB)
	accountRepo := repository.NewAccountRepository(db.DB)
	setupRepo := repository.NewSetupRepository(db.DB)
	journalRepo := repository.NewJournalRepository(db.DB)
	ruleRepo := repository.NewRuleRepository(db.DB)
	profileRepo := repository.NewProfileRepository(db.DB)
	squadRepo := repository.NewSquadRepository(db.DB)

	// Initialize services
	tz := cfg.App.TimeZone
	minTrades := cfg.Metrics.LeaderboardMinTrades
	publisher := service.NewRedisTradeEventPublisher(redisClient.Client, cfg.Redis.StreamMaxLen)
	snapshotStore := leaderboard.NewRedisStore(redisClient.Client)

	tradeSvc := service.NewTradeService(tradeRepo, accountRepo, setupRepo, profileRepo, publisher, tz, appLogger)
	accountSvc := service.NewAccountService(accountRepo, appLogger)
	setupSvc := service.NewSetupService(setupRepo, tradeRepo, appLogger)
	journalSvc := service.NewJournalService(journalRepo, tradeRepo, profileRepo, tz, appLogger)
	ruleSvc := service.NewRuleService(ruleRepo, profileRepo, tz, appLogger)
	profileSvc := service.NewProfileService(profileRepo, appLogger)
	squadSvc := service.NewSquadService(squadRepo, profileRepo, tradeRepo, minTrades, tz, appLogger)
	leaderboardSvc := service.NewLeaderboardService(profileRepo, tradeRepo, snapshotStore, cfg.Cache.LeaderboardTTL, cfg.Cache.CleanupInterval, minTrades, appLogger)
	analyticsSvc := service.NewAnalyticsService(tradeRepo, accountRepo, profileRepo, cfg.Metrics, tz, appLogger)
	adminSvc := service.NewAdminService(profileRepo, tradeRepo, squadRepo, appLogger)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: utils.NewRequestID}))
	e.Use(delivery.RequestContextMiddleware())
	e.Use(requestLogger(appLogger))
	if cfg.RateLimit.Enabled {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
			Burst:     cfg.RateLimit.Burst,
			ExpiresIn: cfg.RateLimit.ExpiresIn,
		})))
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/swagger/*", swagger.WrapHandler)

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1", delivery.AuthMiddleware(cfg.Auth.JWTSecret))

	tradeHandler := delivery.NewTradeHandler(tradeSvc, appLogger)
	tradeHandler.RegisterRoutes(apiV1.Group("/trades"))

	accountHandler := delivery.NewAccountHandler(accountSvc, appLogger)
	accountHandler.RegisterRoutes(apiV1.Group("/accounts"))

	setupHandler := delivery.NewSetupHandler(setupSvc, appLogger)
	setupHandler.RegisterRoutes(apiV1.Group("/setups"))

	journalHandler := delivery.NewJournalHandler(journalSvc, ruleSvc, appLogger)
	journalHandler.RegisterRoutes(apiV1.Group("/journal"))
	journalHandler.RegisterRuleRoutes(apiV1.Group("/rules"))

	socialHandler := delivery.NewSocialHandler(profileSvc, squadSvc, leaderboardSvc, appLogger)
	socialHandler.RegisterRoutes(apiV1)

	analyticsHandler := delivery.NewAnalyticsHandler(analyticsSvc, adminSvc, appLogger)
	analyticsHandler.RegisterRoutes(apiV1)
	analyticsHandler.RegisterAdminRoutes(apiV1.Group("/admin", delivery.AdminMiddleware(cfg.Auth.AdminEmail)))

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func requestLogger(appLogger *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				logger.StringField("request_id", v.RequestID),
				logger.StringField("method", v.Method),
				logger.StringField("uri", v.URI),
				logger.IntField("status", v.Status),
				logger.Field("latency", v.Latency),
				logger.StringField("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				appLogger.Error("Request failed", append(fields, logger.ErrorField(v.Error))...)
				return nil
			}
			appLogger.Info("Request handled", fields...)
			return nil
		},
	})
}

// @title Trading Journal API
// @version 1.0
// @description Trade logging, analytics, journaling and social features for active traders.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
