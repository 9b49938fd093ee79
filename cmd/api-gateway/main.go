package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edudesk/edudesk-api/api/swagger"
	"github.com/edudesk/edudesk-api/internal/handler"
	"github.com/edudesk/edudesk-api/internal/middleware"
	"github.com/edudesk/edudesk-api/internal/reasoning"
	"github.com/edudesk/edudesk-api/internal/repository"
	"github.com/edudesk/edudesk-api/internal/service"
	"github.com/edudesk/edudesk-api/pkg/cache"
	"github.com/edudesk/edudesk-api/pkg/config"
	"github.com/edudesk/edudesk-api/pkg/database"
	"github.com/edudesk/edudesk-api/pkg/export"
	"github.com/edudesk/edudesk-api/pkg/jobs"
	"github.com/edudesk/edudesk-api/pkg/logger"
	corsmiddleware "github.com/edudesk/edudesk-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edudesk/edudesk-api/pkg/middleware/requestid"
)

// @title EduDesk API
// @version 0.1.0
// @description School administration dashboard backend with the substitute-teacher matching engine
// @BasePath /
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, schedule cache disabled", "error", err)
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	facultyRepo := repository.NewFacultyRepository(db)
	decisionRepo := repository.NewDecisionLogRepository(db)

	metrics := service.NewMetricsService()

	var reasoner reasoning.Provider
	if cfg.Reasoning.BaseURL != "" {
		reasoner = reasoning.NewHTTPProvider(cfg.Reasoning.BaseURL, cfg.Reasoning.Timeout)
	}

	var decisions service.DecisionSink
	if cfg.Decisions.Enabled {
		queue := jobs.NewQueue("decision-log", service.NewDecisionLogHandler(decisionRepo), jobs.QueueConfig{
			Workers:    cfg.Decisions.Workers,
			MaxRetries: cfg.Decisions.Retries,
			Logger:     logr,
		})
		queue.Start(context.Background())
		defer queue.Stop()
		decisions = service.NewDecisionRecorder(queue, logr)
	}

	availabilitySvc := service.NewAvailabilityService(nil, nil, logr)
	scheduleSvc := service.NewScheduleService(redisClient, cfg.Schedule.CacheTTL, logr)
	matchingSvc := service.NewMatchingService(reasoner, facultyRepo, decisions, metrics, nil, logr)

	substitutionHandler := handler.NewSubstitutionHandler(matchingSvc, facultyRepo, availabilitySvc, export.NewSlipExporter(), cfg.Engine.AvailabilityRate)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, facultyRepo, availabilitySvc, export.NewCSVExporter(), cfg.Engine.AvailabilityRate)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	facultyHandler := handler.NewFacultyHandler(facultyRepo, nil)
	decisionHandler := handler.NewDecisionHandler(decisionRepo)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/substitutions/generate", substitutionHandler.Generate)
		api.POST("/substitutions/commit", substitutionHandler.Commit)
		api.POST("/substitutions/slip", substitutionHandler.Slip)
		api.GET("/schedule", scheduleHandler.Day)
		api.GET("/schedule/export", scheduleHandler.Export)
		api.POST("/availability/regenerate", availabilityHandler.Regenerate)
		api.GET("/faculty", facultyHandler.List)
		api.POST("/faculty", facultyHandler.Create)
		api.GET("/faculty/:id", facultyHandler.Get)
		api.POST("/faculty/reset-week", facultyHandler.ResetWeek)
		api.GET("/decisions", decisionHandler.Recent)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
