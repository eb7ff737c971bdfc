package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"catalog-service/internal/config"
	"catalog-service/internal/handlers"
	"catalog-service/internal/middleware"
	"catalog-service/internal/repository"
	"catalog-service/internal/services"
)

// @title Catalog Service API
// @version 1.0.0
// @description Catalog administration and storefront API with bulk spreadsheet import

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize Redis client
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{
			Addr: "localhost:6379",
		}
	}
	redisClient := redis.NewClient(redisOpts)

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	// Initialize repository and services
	catalogRepo := repository.NewCatalogRepository(db, redisClient)
	importService := services.NewImportService(catalogRepo, logger)
	authService := services.NewAuthService(redisClient, cfg, logger)
	storageService := services.NewStorageService(cfg, logger)

	// Initialize handlers
	productsHandler := handlers.NewProductsHandler(catalogRepo, storageService, cfg, logger)
	taxonomyHandler := handlers.NewTaxonomyHandler(catalogRepo, logger)
	heroHandler := handlers.NewHeroHandler(catalogRepo, logger)
	storefrontHandler := handlers.NewStorefrontHandler(catalogRepo, cfg, logger)
	importHandler := handlers.NewImportHandler(importService, catalogRepo, cfg, logger)
	uploadHandler := handlers.NewUploadHandler(storageService, logger)
	authHandler := handlers.NewAuthHandler(authService, logger)

	if cfg.AdminPassword == "" {
		log.Println("WARNING: ADMIN_PASSWORD not set, admin login is disabled")
	}

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.ReadyCheck(db, redisClient))

	api := router.Group("/api/v1")

	// Authentication endpoints
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	// Admin routes, gated by the session cookie
	admin := api.Group("")
	admin.Use(middleware.AdminAuth(authService))
	{
		products := admin.Group("/products")
		{
			products.GET("", productsHandler.ListProducts)
			products.GET("/:id", productsHandler.GetProduct)
			products.POST("", productsHandler.CreateProduct)
			products.PUT("/:id", productsHandler.UpdateProduct)
			products.DELETE("/:id", productsHandler.DeleteProduct)

			products.GET("/import/template", importHandler.GetImportTemplate)
			products.POST("/import/preview", importHandler.PreviewImport)
			products.POST("/import/commit", importHandler.CommitImport)
		}

		brands := admin.Group("/brands")
		{
			brands.GET("", taxonomyHandler.ListBrands)
			brands.POST("", taxonomyHandler.CreateBrand)
			brands.PUT("/:id", taxonomyHandler.UpdateBrand)
			brands.DELETE("/:id", taxonomyHandler.DeleteBrand)
		}

		categories := admin.Group("/categories")
		{
			categories.GET("", taxonomyHandler.ListCategories)
			categories.POST("", taxonomyHandler.CreateCategory)
			categories.PUT("/:id", taxonomyHandler.UpdateCategory)
			categories.DELETE("/:id", taxonomyHandler.DeleteCategory)
		}

		heroSlides := admin.Group("/hero-slides")
		{
			heroSlides.GET("", heroHandler.ListHeroSlides)
			heroSlides.GET("/:id", heroHandler.GetHeroSlide)
			heroSlides.POST("", heroHandler.CreateHeroSlide)
			heroSlides.PUT("/:id", heroHandler.UpdateHeroSlide)
			heroSlides.DELETE("/:id", heroHandler.DeleteHeroSlide)
		}

		admin.POST("/upload", uploadHandler.Upload)
	}

	// Public storefront endpoints (no auth required)
	storefront := api.Group("/storefront")
	{
		storefront.GET("/home", storefrontHandler.GetHome)
		storefront.GET("/products", storefrontHandler.ListProducts)
		storefront.GET("/products/:slug", storefrontHandler.GetProduct)
		storefront.GET("/brands", storefrontHandler.ListBrands)
		storefront.GET("/categories", storefrontHandler.ListCategories)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Catalog service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Shutting down catalog-service...")

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Catalog service stopped")
}
