package router

import (
	"github.com/gin-gonic/gin"
	"github.com/interno-studio/interno-backend/config"
	"github.com/interno-studio/interno-backend/internal/app/controller"
	"github.com/interno-studio/interno-backend/internal/middleware"
)

type Router struct {
	authController         *controller.AuthController
	productController      *controller.ProductController
	cartController         *controller.CartController
	checkoutController     *controller.CheckoutController
	notificationController *controller.NotificationController
	preferenceController   *controller.PreferenceController
	orderController        *controller.OrderController
	chatController         *controller.ChatController
	quizController         *controller.QuizController
	uploadController       *controller.UploadController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	checkoutController *controller.CheckoutController,
	notificationController *controller.NotificationController,
	preferenceController *controller.PreferenceController,
	orderController *controller.OrderController,
	chatController *controller.ChatController,
	quizController *controller.QuizController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		productController:      productController,
		cartController:         cartController,
		checkoutController:     checkoutController,
		notificationController: notificationController,
		preferenceController:   preferenceController,
		orderController:        orderController,
		chatController:         chatController,
		quizController:         quizController,
		uploadController:       uploadController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	router.Use(middleware.SessionMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "INTERNO API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PATCH("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.List)
			products.GET("/:sku", r.productController.Get)
		}

		customizer := v1.Group("/customizer")
		{
			customizer.GET("/options", r.productController.Options)
			customizer.POST("/configure", r.productController.Configure)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("/items", r.cartController.AddItem)
			cart.PATCH("/items/:sku", r.cartController.UpdateQuantity)
			cart.DELETE("/items/:sku", r.cartController.RemoveItem)
			cart.DELETE("", r.cartController.Clear)
		}

		checkout := v1.Group("/checkout")
		checkout.Use(r.authMiddleware.OptionalAuthenticate())
		{
			checkout.POST("", r.checkoutController.Open)
			checkout.GET("", r.checkoutController.Get)
			checkout.PUT("/shipping", r.checkoutController.SubmitShipping)
			checkout.POST("/payment", r.checkoutController.SubmitPayment)
			checkout.POST("/retry", r.checkoutController.RetryPayment)
			checkout.POST("/finish", r.checkoutController.Finish)
			checkout.DELETE("", r.checkoutController.Close)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", r.notificationController.List)
			notifications.GET("/stream", r.notificationController.Stream)
			notifications.DELETE("/:id", r.notificationController.Dismiss)
		}

		preferences := v1.Group("/preferences")
		{
			preferences.GET("", r.preferenceController.Get)
			preferences.PUT("/theme", r.preferenceController.SetTheme)
		}

		v1.POST("/newsletter/subscribe", r.preferenceController.Subscribe)

		orders := v1.Group("/orders")
		{
			orders.GET("/:reference", r.orderController.Get)
		}

		chat := v1.Group("/chat")
		{
			chat.POST("/ask", r.chatController.Ask)
			chat.POST("/concierge", r.chatController.Concierge)
		}

		quiz := v1.Group("/quiz")
		{
			quiz.POST("", r.quizController.Submit)
			quiz.GET("/result", r.quizController.Latest)
		}

		uploads := v1.Group("/uploads")
		uploads.Use(r.authMiddleware.Authenticate())
		{
			uploads.POST("/avatar", r.uploadController.PresignAvatar)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			admin.GET("/orders", r.orderController.List)
			admin.GET("/orders/export", r.orderController.Export)
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
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Session-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Session-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
