package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/olumide/foodloan-backend/config"
	"github.com/olumide/foodloan-backend/internal/app/controller"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	"github.com/olumide/foodloan-backend/internal/app/service"
	"github.com/olumide/foodloan-backend/internal/db"
	"github.com/olumide/foodloan-backend/internal/middleware"
	"github.com/olumide/foodloan-backend/internal/router"
	"github.com/olumide/foodloan-backend/internal/scheduler"
	"github.com/olumide/foodloan-backend/internal/storage"
	"github.com/olumide/foodloan-backend/internal/ws"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"github.com/olumide/foodloan-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting FoodLoan Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (OTP store and token blacklist)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	variantRepo := repository.NewVariantRepository(db.GetDB())
	warehouseRepo := repository.NewWarehouseRepository(db.GetDB())
	inventoryRepo := repository.NewInventoryRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	wishlistRepo := repository.NewWishlistRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Tracking push hub
	hub := ws.NewHub()
	go hub.Run()

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		service.NewRedisOTPStore(),
		service.NewRedisTokenBlacklist(),
		cfg,
	)
	userAdminService := service.NewUserAdminService(userRepo)
	addressService := service.NewAddressService(addressRepo, userRepo, db.GetDB())
	categoryService := service.NewCategoryService(categoryRepo)
	pricingService := service.NewPricingService(productRepo, variantRepo)
	productService := service.NewProductService(productRepo, variantRepo, categoryRepo)
	warehouseService := service.NewWarehouseService(warehouseRepo, inventoryRepo, variantRepo)
	cartService := service.NewCartService(cartRepo, userRepo, pricingService, service.NewCreditLedger())
	wishlistService := service.NewWishlistService(wishlistRepo, pricingService)
	orderService := service.NewOrderService(orderRepo, cartRepo, userRepo, hub, db.GetDB())

	// Initialize controllers
	s3Storage := storage.NewS3Storage(&cfg.S3)
	authController := controller.NewAuthController(authService)
	userAdminController := controller.NewUserAdminController(userAdminService)
	categoryController := controller.NewCategoryController(categoryService)
	productController := controller.NewProductController(productService)
	warehouseController := controller.NewWarehouseController(warehouseService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	wishlistController := controller.NewWishlistController(wishlistService)
	addressController := controller.NewAddressController(addressService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, redis.Blacklist{})

	// Daily low stock scan
	stockScheduler := scheduler.New(warehouseService, &cfg.Loan)
	if err := stockScheduler.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", err)
	}
	defer stockScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		userAdminController,
		categoryController,
		productController,
		warehouseController,
		cartController,
		orderController,
		wishlistController,
		addressController,
		uploadController,
		authMiddleware,
		hub,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
