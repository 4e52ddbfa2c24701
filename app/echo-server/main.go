package main

import (
	"context"
	"fmt"
	"log"
	"myBeautyMarket/app/echo-server/router"
	"myBeautyMarket/business/product"
	"myBeautyMarket/business/rating"
	"myBeautyMarket/business/recommend"
	userService "myBeautyMarket/business/user"
	"myBeautyMarket/internal/middleware"
	psqlRepo "myBeautyMarket/internal/repository/postgres"
	redisRepo "myBeautyMarket/internal/repository/redis"
	"myBeautyMarket/internal/rest"
	"myBeautyMarket/pkg/config"
	"myBeautyMarket/pkg/database"
	redisdb "myBeautyMarket/pkg/database/redis"
	"myBeautyMarket/pkg/logger"
	"myBeautyMarket/pkg/metrics"
	"myBeautyMarket/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MyBeautyMarket", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	ratingRepo := psqlRepo.NewRatingRepository(db)
	catalogRepo := psqlRepo.NewCatalogRepository(db)

	// Result cache and session store: Redis when enabled, in-process otherwise
	var recoCache recommend.Cache
	var tokenRepo userService.TokenRepository
	var authRequired echo.MiddlewareFunc

	if cfg.Redis.Enabled {
		redisClient, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		defer func() {
			if err := redisdb.CloseRedisClient(redisClient); err != nil {
				logger.Error("Failed to close redis client", err)
			}
		}()

		recoCache = redisRepo.NewRecommendationCache(redisClient, cfg.Reco.CacheTTL)
		tokenRepo = redisRepo.NewTokenRepository(redisClient)
		logger.Info("Redis connected successfully")
	} else {
		recoCache = recommend.NewMemoryCache(cfg.Reco.CacheTTL)
	}

	// Init service
	recoConfig := recommend.Config{
		ContentWeight:       cfg.Reco.ContentWeight,
		CollaborativeWeight: cfg.Reco.CollaborativeWeight,
		TrendingWeight:      cfg.Reco.TrendingWeight,
		HighRating:          cfg.Reco.HighRating,
		MinReviews:          cfg.Reco.MinReviews,
		CacheTTL:            cfg.Reco.CacheTTL,
		TrendLookback:       cfg.Reco.TrendLookback,
	}

	recoService := recommend.NewService(catalogRepo, recoCache, recoConfig)
	productService := product.NewProductService(productRepo, catalogRepo)
	ratingService := rating.NewRatingService(ratingRepo, productRepo)
	usrService := userService.NewUserService(userRepo, validate, tokenRepo)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	productHandler := rest.NewProductHandler(productService)
	ratingHandler := rest.NewRatingHandler(ratingService)
	recoHandler := rest.NewRecommendationHandler(recoService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	if cfg.Redis.Enabled {
		authRequired = middleware.AuthMiddlewareWithRedis(usrService)
	} else {
		authRequired = middleware.AuthMiddleware()
	}
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetRecommendationRoutes(api, recoHandler)
	router.SetRatingRoutes(api, ratingHandler, authRequired)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
