package router

import (
	"github.com/gin-gonic/gin"
	"github.com/olumide/foodloan-backend/config"
	"github.com/olumide/foodloan-backend/internal/app/controller"
	"github.com/olumide/foodloan-backend/internal/middleware"
	"github.com/olumide/foodloan-backend/internal/ws"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	authController      *controller.AuthController
	userAdminController *controller.UserAdminController
	categoryController  *controller.CategoryController
	productController   *controller.ProductController
	warehouseController *controller.WarehouseController
	cartController      *controller.CartController
	orderController     *controller.OrderController
	wishlistController  *controller.WishlistController
	addressController   *controller.AddressController
	uploadController    *controller.UploadController
	authMiddleware      *middleware.AuthMiddleware
	hub                 *ws.Hub
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userAdminController *controller.UserAdminController,
	categoryController *controller.CategoryController,
	productController *controller.ProductController,
	warehouseController *controller.WarehouseController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	wishlistController *controller.WishlistController,
	addressController *controller.AddressController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	hub *ws.Hub,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		userAdminController: userAdminController,
		categoryController:  categoryController,
		productController:   productController,
		warehouseController: warehouseController,
		cartController:      cartController,
		orderController:     orderController,
		wishlistController:  wishlistController,
		addressController:   addressController,
		uploadController:    uploadController,
		authMiddleware:      authMiddleware,
		hub:                 hub,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "FoodLoan API is running",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.InitiateLogin)
			auth.POST("/verify", r.authController.VerifyOTP)
			auth.POST("/password-login", r.authController.PasswordLogin)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.ListCategories)
			categories.GET("/:id", r.categoryController.GetCategory)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.GetMyOrders)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.POST("", r.orderController.Checkout)
		}

		wishlist := v1.Group("/wishlist")
		wishlist.Use(r.authMiddleware.Authenticate())
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.POST("", r.wishlistController.AddToWishlist)
			wishlist.DELETE("", r.wishlistController.ClearWishlist)
			wishlist.DELETE("/:id", r.wishlistController.RemoveFromWishlist)
		}

		addresses := v1.Group("/addresses")
		addresses.Use(r.authMiddleware.Authenticate())
		{
			addresses.GET("", r.addressController.GetMyAddresses)
			addresses.POST("", r.addressController.CreateAddress)
			addresses.PUT("/:id", r.addressController.UpdateAddress)
			addresses.DELETE("/:id", r.addressController.DeleteAddress)
		}

		wsGroup := v1.Group("/ws")
		wsGroup.Use(r.authMiddleware.Authenticate())
		{
			wsGroup.GET("/tracking", ws.ServeWS(r.hub))
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			users := admin.Group("/users")
			{
				users.GET("", r.userAdminController.ListUsers)
				users.GET("/:id", r.userAdminController.GetUser)
				users.POST("", r.userAdminController.CreateUser)
				users.POST("/import", r.userAdminController.ImportUsers)
				users.PUT("/:id", r.userAdminController.UpdateUser)
				users.DELETE("/:id", r.userAdminController.DeleteUser)
			}

			adminCategories := admin.Group("/categories")
			{
				adminCategories.POST("", r.categoryController.CreateCategory)
				adminCategories.PUT("/:id", r.categoryController.UpdateCategory)
				adminCategories.DELETE("/:id", r.categoryController.DeleteCategory)
			}

			adminProducts := admin.Group("/products")
			{
				adminProducts.POST("", r.productController.CreateProduct)
				adminProducts.PUT("/:id", r.productController.UpdateProduct)
				adminProducts.DELETE("/:id", r.productController.DeleteProduct)
				adminProducts.POST("/:id/variants", r.productController.CreateVariant)
			}

			adminVariants := admin.Group("/variants")
			{
				adminVariants.PUT("/:id", r.productController.UpdateVariant)
				adminVariants.DELETE("/:id", r.productController.DeleteVariant)
			}

			warehouses := admin.Group("/warehouses")
			{
				warehouses.GET("", r.warehouseController.ListWarehouses)
				warehouses.GET("/:id", r.warehouseController.GetWarehouse)
				warehouses.POST("", r.warehouseController.CreateWarehouse)
				warehouses.PUT("/:id", r.warehouseController.UpdateWarehouse)
				warehouses.DELETE("/:id", r.warehouseController.DeleteWarehouse)
				warehouses.GET("/:id/stock", r.warehouseController.GetStock)
				warehouses.PUT("/:id/stock", r.warehouseController.SetStock)
			}

			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", r.orderController.ListOrders)
				adminOrders.POST("/:id/tracking", r.orderController.AppendTracking)
			}

			upload := admin.Group("/upload")
			{
				upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
