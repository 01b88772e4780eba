package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/careplan-api/api/swagger"
	"github.com/noah-isme/careplan-api/internal/handler"
	"github.com/noah-isme/careplan-api/internal/middleware"
	"github.com/noah-isme/careplan-api/internal/platform"
	"github.com/noah-isme/careplan-api/internal/repository"
	"github.com/noah-isme/careplan-api/internal/service"
	"github.com/noah-isme/careplan-api/pkg/cache"
	"github.com/noah-isme/careplan-api/pkg/config"
	"github.com/noah-isme/careplan-api/pkg/database"
	"github.com/noah-isme/careplan-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/careplan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/careplan-api/pkg/middleware/requestid"
)

// @title Care Plan Tracker API
// @version 1.0.0
// @description Action plans for primary-care teams: history, dashboards, exports and option management
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, running without cache and session events", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	planRepo := repository.NewPlanRepository(db)
	optionRepo := repository.NewOptionRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, "careplan", logr)
	sessionEvents := repository.NewSessionEventRepository(redisClient, repository.DefaultAuthChannel, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled && redisClient != nil)
	invalidator := service.NewCacheInvalidator(cacheSvc, logr, service.CacheInvalidatorConfig{
		Workers:    cfg.Jobs.Workers,
		MaxRetries: cfg.Jobs.Retries,
	})
	invalidator.Start(ctx)
	defer invalidator.Stop()
	metricsSvc.WatchQueue(invalidator.Stats)

	authClient := platform.NewAuthClient(cfg.Platform, logr)
	authSvc := service.NewAuthService(authClient, profileRepo, sessionEvents, validate, logr, service.AuthConfig{JWTSecret: cfg.Platform.JWTSecret})
	profileSvc := service.NewProfileService(profileRepo, service.RoleCodes{AdminHash: cfg.Roles.AdminCodeHash, UserHash: cfg.Roles.UserCodeHash}, validate, logr)
	planSvc := service.NewPlanService(planRepo, optionRepo, invalidator, metricsSvc, validate, logr)
	optionSvc := service.NewOptionService(optionRepo, planRepo, invalidator, metricsSvc, validate, logr)
	historySvc := service.NewHistoryService(planRepo, metricsSvc, logr, service.HistoryServiceConfig{
		PageSizes:       cfg.History.PageSizes,
		DefaultPageSize: cfg.History.DefaultPageSize,
	})
	dashboardSvc := service.NewDashboardService(planRepo, cacheSvc, metricsSvc, logr, service.DashboardServiceConfig{
		CacheTTL:    cfg.Dashboard.CacheTTL,
		RecentLimit: cfg.Dashboard.RecentLimit,
	})
	exportSvc := service.NewExportService(historySvc, logr)

	listener := service.NewSessionEventListener(sessionEvents, invalidator, logr)
	if err := listener.Start(ctx); err != nil {
		logr.Warn("auth event subscription failed", zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc, "/health", "/ready", "/metrics"))

	metricsHandler := handler.NewMetricsHandler(metricsSvc, readinessChecks(db, redisClient))
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r.Group(cfg.APIPrefix, middleware.WithResponseMeta()), routeDeps{
		tokens:     authSvc,
		privileges: profileSvc,
		auth:       handler.NewAuthHandler(authSvc),
		profile:    handler.NewProfileHandler(profileSvc),
		plans:      handler.NewPlanHandler(planSvc, historySvc),
		export:     handler.NewExportHandler(exportSvc),
		dashboard:  handler.NewDashboardHandler(dashboardSvc),
		options:    handler.NewOptionHandler(optionSvc),
		metrics:    metricsHandler,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

type routeDeps struct {
	tokens     middleware.TokenValidator
	privileges middleware.PrivilegeResolver
	auth       *handler.AuthHandler
	profile    *handler.ProfileHandler
	plans      *handler.PlanHandler
	export     *handler.ExportHandler
	dashboard  *handler.DashboardHandler
	options    *handler.OptionHandler
	metrics    *handler.MetricsHandler
}

// registerRoutes mounts the API. Reads run with an optional session and
// answer empty data without one; mutations require a verified token.
func registerRoutes(api *gin.RouterGroup, d routeDeps) {
	optional := middleware.OptionalJWT(d.tokens, d.privileges)
	required := middleware.JWT(d.tokens, d.privileges)

	auth := api.Group("/auth")
	auth.POST("/register", d.auth.Register)
	auth.POST("/login", d.auth.Login)
	auth.POST("/logout", required, d.auth.Logout)
	auth.GET("/session", optional, d.auth.Session)

	api.GET("/profile", optional, d.profile.Me)
	api.PUT("/profile/role", required, d.profile.ChangeRole)

	plans := api.Group("/plans")
	plans.GET("", optional, d.plans.History)
	plans.GET("/export", optional, d.export.Plans)
	plans.GET("/:id", required, d.plans.Get)
	plans.POST("", required, d.plans.Create)
	plans.PUT("/:id", required, d.plans.Update)
	plans.DELETE("/:id", required, d.plans.Delete)

	api.GET("/dashboard", optional, d.dashboard.Summary)
	api.GET("/dashboard/aggregate", optional, d.dashboard.Aggregate)

	options := api.Group("/options")
	options.GET("", optional, d.options.List)
	options.POST("", required, middleware.RequireAdmin(), d.options.Add)
	options.PUT("/:type/:label", required, middleware.RequireAdmin(), d.options.Rename)
	options.DELETE("/:type/:label", required, middleware.RequireAdmin(), d.options.Delete)

	api.GET("/metrics/snapshot", required, middleware.RequireAdmin(), d.metrics.Snapshot)
}

func readinessChecks(db *sqlx.DB, client *redis.Client) map[string]handler.ReadinessCheck {
	checks := map[string]handler.ReadinessCheck{
		"postgres": db.PingContext,
	}
	if client != nil {
		checks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
	}
	return checks
}
