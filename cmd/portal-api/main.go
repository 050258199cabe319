package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/surat-tugas/portal-api/internal/handler"
	"github.com/surat-tugas/portal-api/internal/middleware"
	"github.com/surat-tugas/portal-api/internal/normalize"
	"github.com/surat-tugas/portal-api/internal/repository"
	"github.com/surat-tugas/portal-api/internal/service"
	"github.com/surat-tugas/portal-api/internal/sheets"
	"github.com/surat-tugas/portal-api/pkg/cache"
	"github.com/surat-tugas/portal-api/pkg/config"
	"github.com/surat-tugas/portal-api/pkg/logger"
	corsmiddleware "github.com/surat-tugas/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/surat-tugas/portal-api/pkg/middleware/requestid"
)

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect redis", "error", err)
	}

	locale := normalize.NewLocale(cfg.Locale.MonthNames, cfg.Locale.DayNames)

	feedClient := sheets.NewClient(cfg.Sheets, logr)
	sheetRepo := repository.NewSheetRepository(feedClient, locale, logr)
	scriptRepo := repository.NewScriptRepository(cfg.Script, logr)
	sessionRepo := repository.NewSessionRepository(redisClient, cfg.Session.TTL)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	snapshotSvc := service.NewSnapshotService(sheetRepo, cacheRepo, metricsSvc, cfg.Sheets.SnapshotTTL, cfg.Sheets.SnapshotCached, logr)
	registry := service.NewSessionRegistry()
	authSvc := service.NewAuthService(snapshotSvc, sessionRepo, registry, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})
	scheduleSvc := service.NewScheduleService(locale, logr)
	leaderboardSvc := service.NewLeaderboardService(logr)
	requestSvc := service.NewRequestService(scriptRepo, metricsSvc, locale, logr)
	profileSvc := service.NewProfileService(scriptRepo, authSvc, metricsSvc, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	dashboardHandler := handler.NewDashboardHandler(authSvc, scheduleSvc, leaderboardSvc, requestSvc)
	scheduleHandler := handler.NewScheduleHandler(authSvc, scheduleSvc)
	leaderboardHandler := handler.NewLeaderboardHandler(authSvc, leaderboardSvc)
	requestHandler := handler.NewRequestHandler(authSvc, requestSvc)
	profileHandler := handler.NewProfileHandler(authSvc, profileSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	secured := api.Group("", middleware.JWT(authSvc))
	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/me", authHandler.Me)
	secured.GET("/dashboard", dashboardHandler.Overview)
	secured.GET("/jadwal", scheduleHandler.List)
	secured.GET("/jadwal/export", scheduleHandler.Export)
	secured.GET("/leaderboard", leaderboardHandler.List)
	secured.GET("/permintaan", requestHandler.List)
	secured.POST("/permintaan/:id/approve", requestHandler.Approve)
	secured.POST("/permintaan/:id/reject", requestHandler.Reject)
	secured.PUT("/profil", profileHandler.Update)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
