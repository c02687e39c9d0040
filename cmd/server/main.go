package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/yeshua-high/school-site-api/api/swagger"
	"github.com/yeshua-high/school-site-api/internal/handler"
	"github.com/yeshua-high/school-site-api/internal/middleware"
	"github.com/yeshua-high/school-site-api/internal/repository"
	"github.com/yeshua-high/school-site-api/internal/service"
	"github.com/yeshua-high/school-site-api/pkg/cache"
	"github.com/yeshua-high/school-site-api/pkg/config"
	"github.com/yeshua-high/school-site-api/pkg/database"
	"github.com/yeshua-high/school-site-api/pkg/logger"
	corsmiddleware "github.com/yeshua-high/school-site-api/pkg/middleware/cors"
	reqidmiddleware "github.com/yeshua-high/school-site-api/pkg/middleware/requestid"
	"github.com/yeshua-high/school-site-api/pkg/storage"
)

// @title Yeshua High School Site API
// @version 1.0.0
// @description Marketing site content and admissions backend
// @BasePath /api
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

	pools, err := database.NewPools(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pools.Close() //nolint:errcheck

	metricsService := service.NewMetricsService()

	var cacheService *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Cache.TTL, logr, true)
		}
	}

	var store storage.ObjectStorage
	var localStore *storage.LocalStorage
	switch cfg.Storage.Driver {
	case "local":
		localStore, err = storage.NewLocalStorage(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL)
		if err != nil {
			logr.Fatal("failed to init local storage", zap.Error(err))
		}
		store = localStore
	default:
		store, err = storage.NewS3Storage(cfg.Storage)
		if err != nil {
			logr.Fatal("failed to init object storage", zap.Error(err))
		}
	}

	newsRepo := repository.NewNewsRepository(pools.Read, pools.Write)
	eventRepo := repository.NewEventRepository(pools.Read, pools.Write)
	awardRepo := repository.NewAwardRepository(pools.Read, pools.Write)
	teacherRepo := repository.NewTeacherRepository(pools.Read, pools.Write)
	galleryRepo := repository.NewGalleryRepository(pools.Read, pools.Write)
	applicationRepo := repository.NewApplicationRepository(pools.Read, pools.Write)

	authService := service.NewAuthService(service.AuthConfig{
		Password:    cfg.Admin.Password,
		Hash:        cfg.Admin.Hash,
		TokenSecret: cfg.Session.Secret,
		TokenTTL:    cfg.Session.TTL,
	}, logr)
	newsService := service.NewNewsService(newsRepo, cacheService, nil, logr)
	eventService := service.NewEventService(eventRepo, cacheService, nil, logr)
	awardService := service.NewAwardService(awardRepo, cacheService, nil, logr)
	teacherService := service.NewTeacherService(teacherRepo, cacheService, nil, logr)
	galleryService := service.NewGalleryService(galleryRepo, cacheService, nil, logr)
	applicationService := service.NewApplicationService(applicationRepo, nil, logr)
	calendarService := service.NewCalendarService(eventRepo, logr)
	siteService := service.NewSiteService(newsService, eventService, teacherService, galleryService, logr)
	mediaService := service.NewMediaService(store, metricsService, service.MediaConfig{
		UploadDir:    cfg.Storage.UploadDir,
		MaxBytes:     cfg.Storage.MaxUploadBytes,
		AllowedMIMEs: cfg.Storage.AllowedMIMEs,
	}, logr)

	authHandler := handler.NewAuthHandler(authService, handler.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Env == config.EnvProduction,
	})
	newsHandler := handler.NewNewsHandler(newsService)
	eventHandler := handler.NewEventHandler(eventService)
	awardHandler := handler.NewAwardHandler(awardService)
	teacherHandler := handler.NewTeacherHandler(teacherService)
	galleryHandler := handler.NewGalleryHandler(galleryService)
	uploadHandler := handler.NewUploadHandler(mediaService)
	calendarHandler := handler.NewCalendarHandler(calendarService)
	siteHandler := handler.NewSiteHandler(siteService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := pools.Read.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Uploads are served straight from disk when the local driver is active;
	// the s3 driver serves them from the bucket's public URL instead.
	if localStore != nil {
		r.Static("/uploads", localStore.Dir())
	}

	guard := middleware.Session(authService, cfg.Session.CookieName)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", guard, authHandler.Me)

		// Content reads are public; every mutation sits behind the session
		// guard so the privileged database role is unreachable without a
		// valid cookie.
		api.GET("/news", newsHandler.List)
		api.POST("/news", guard, middleware.Audit(logr, "news"), newsHandler.Create)
		api.PUT("/news", guard, middleware.Audit(logr, "news"), newsHandler.Update)
		api.DELETE("/news", guard, middleware.Audit(logr, "news"), newsHandler.Delete)

		api.GET("/events", eventHandler.List)
		api.POST("/events", guard, middleware.Audit(logr, "events"), eventHandler.Create)
		api.PUT("/events", guard, middleware.Audit(logr, "events"), eventHandler.Update)
		api.DELETE("/events", guard, middleware.Audit(logr, "events"), eventHandler.Delete)

		api.GET("/awards", awardHandler.List)
		api.POST("/awards", guard, middleware.Audit(logr, "awards"), awardHandler.Create)
		api.PUT("/awards", guard, middleware.Audit(logr, "awards"), awardHandler.Update)
		api.DELETE("/awards", guard, middleware.Audit(logr, "awards"), awardHandler.Delete)

		api.GET("/teachers", teacherHandler.List)
		api.POST("/teachers", guard, middleware.Audit(logr, "teachers"), teacherHandler.Create)
		api.PUT("/teachers", guard, middleware.Audit(logr, "teachers"), teacherHandler.Update)
		api.DELETE("/teachers", guard, middleware.Audit(logr, "teachers"), teacherHandler.Delete)

		api.GET("/gallery", galleryHandler.List)
		api.POST("/gallery", guard, middleware.Audit(logr, "gallery"), galleryHandler.Create)
		api.PUT("/gallery", guard, middleware.Audit(logr, "gallery"), galleryHandler.Update)
		api.DELETE("/gallery", guard, middleware.Audit(logr, "gallery"), galleryHandler.Delete)

		api.POST("/upload", guard, middleware.Audit(logr, "media"), uploadHandler.Upload)
		api.DELETE("/upload", guard, middleware.Audit(logr, "media"), uploadHandler.Delete)

		api.GET("/calendar", calendarHandler.Month)
		api.GET("/home", siteHandler.Home)

		// Admission submissions come from the public form; everything else
		// on the admissions surface carries PII and stays admin-only.
		api.POST("/admissions", applicationHandler.Submit)
		api.GET("/admissions", guard, applicationHandler.List)
		api.GET("/admissions/export", guard, applicationHandler.Export)
		api.GET("/admissions/:id", guard, applicationHandler.Get)
		api.PATCH("/admissions/:id/review", guard, middleware.Audit(logr, "admissions"), applicationHandler.MarkReviewed)
	}

	// The admin console is a static bundle gated by a browser-friendly
	// guard that redirects to the login page instead of returning JSON.
	if cfg.Web.AdminDir != "" {
		pageGuard := middleware.AdminPage(authService, cfg.Session.CookieName, cfg.Web.LoginURL, cfg.Env == config.EnvProduction)
		admin := r.Group("/admin", pageGuard)
		admin.StaticFS("/", gin.Dir(cfg.Web.AdminDir, false))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
