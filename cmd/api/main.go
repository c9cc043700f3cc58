package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/studyhive-labs/studyhive-api/api/swagger"
	"github.com/studyhive-labs/studyhive-api/internal/handler"
	"github.com/studyhive-labs/studyhive-api/internal/middleware"
	"github.com/studyhive-labs/studyhive-api/internal/models"
	"github.com/studyhive-labs/studyhive-api/internal/payment"
	"github.com/studyhive-labs/studyhive-api/internal/repository"
	"github.com/studyhive-labs/studyhive-api/internal/service"
	"github.com/studyhive-labs/studyhive-api/pkg/cache"
	"github.com/studyhive-labs/studyhive-api/pkg/config"
	"github.com/studyhive-labs/studyhive-api/pkg/database"
	"github.com/studyhive-labs/studyhive-api/pkg/logger"
	corsmiddleware "github.com/studyhive-labs/studyhive-api/pkg/middleware/cors"
	reqidmiddleware "github.com/studyhive-labs/studyhive-api/pkg/middleware/requestid"
)

// @title StudyHive API
// @version 1.0.0
// @description Tutoring marketplace backend
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	authSvc := service.NewAuthService(userRepo, logr, service.AuthConfig{
		TokenSecret: cfg.Auth.TokenSecret,
		TokenExpiry: cfg.Auth.TokenExpiry,
		Issuer:      cfg.Auth.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	sessionSvc := service.NewSessionService(sessionRepo, validate, logr)
	bookingSvc := service.NewBookingService(bookingRepo, sessionSvc, validate, logr)
	reviewSvc := service.NewReviewService(reviewRepo, validate, logr)
	noteSvc := service.NewNoteService(noteRepo, validate, logr)
	statsSvc := service.NewStatsService(bookingRepo, userRepo, sessionRepo, cacheSvc, logr, cfg.Dashboard.CacheTTL)
	exportSvc := service.NewExportService(statsSvc, logr)
	paymentSvc := service.NewPaymentService(payment.NewStripeGateway(cfg.Payments.StripeSecretKey), validate, logr, cfg.Payments.Currency)

	authHandler := handler.NewAuthHandler(authSvc, userSvc, cfg)
	userHandler := handler.NewUserHandler(userSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	noteHandler := handler.NewNoteHandler(noteSvc)
	statsHandler := handler.NewStatsHandler(statsSvc, exportSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/token", authHandler.Token)
		api.GET("/auth/logout", authHandler.Logout)
		api.PUT("/users", userHandler.Upsert)
		api.GET("/tutors", userHandler.Tutors)
		api.GET("/sessions", sessionHandler.List)
		api.GET("/sessions/:id", sessionHandler.Get)
		api.GET("/reviews", reviewHandler.ListBySession)
	}

	authd := api.Group("")
	authd.Use(middleware.JWT(authSvc, cfg.Auth.CookieName))
	{
		authd.GET("/auth/me", authHandler.Me)
		authd.GET("/users/:email", userHandler.Get)
		authd.GET("/bookings/:id", bookingHandler.Get)
		authd.POST("/notes", noteHandler.Create)
		authd.GET("/notes", noteHandler.List)
		authd.GET("/notes/:id", noteHandler.Get)
		authd.PUT("/notes/:id", noteHandler.Update)
		authd.DELETE("/notes/:id", noteHandler.Delete)
	}

	admin := authd.Group("")
	admin.Use(middleware.RequireRoles(authSvc, models.RoleAdmin))
	{
		admin.GET("/users", userHandler.List)
		admin.PATCH("/users/:email/role", userHandler.UpdateRole)
		admin.PATCH("/sessions/:id/status", sessionHandler.Moderate)
		admin.GET("/stats/admin", statsHandler.Admin)
		admin.GET("/stats/admin/export", statsHandler.Export)
	}

	tutor := authd.Group("")
	tutor.Use(middleware.RequireRoles(authSvc, models.RoleTutor))
	{
		tutor.POST("/sessions", sessionHandler.Create)
		tutor.GET("/sessions/mine", sessionHandler.ListMine)
		tutor.GET("/stats/tutor", statsHandler.Tutor)
	}

	student := authd.Group("")
	student.Use(middleware.RequireRoles(authSvc, models.RoleStudent))
	{
		student.POST("/bookings", bookingHandler.Create)
		student.GET("/bookings", bookingHandler.List)
		student.POST("/reviews", reviewHandler.Create)
		student.POST("/payments/intent", paymentHandler.CreateIntent)
		student.GET("/stats/student", statsHandler.Student)
	}

	sessionOwner := authd.Group("")
	sessionOwner.Use(middleware.RequireRoles(authSvc, models.RoleTutor, models.RoleAdmin))
	{
		sessionOwner.PUT("/sessions/:id", sessionHandler.Update)
		sessionOwner.DELETE("/sessions/:id", sessionHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
