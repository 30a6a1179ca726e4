package routes

import (
	"net/http"
	"time"

	"carepro/handlers"
	"carepro/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterFlowRoutes registers flow lifecycle and navigation endpoints.
func RegisterFlowRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/flow/start", hb.StartFlowHandler)

	api := r.Group("/api/navigation")
	{
		api.Use(middleware.FlowAuthMiddleware())
		api.POST("/bootstrap", hb.BootstrapHandler)
		api.POST("/navigate", hb.NavigateHandler)
	}
}

// RegisterAccountRoutes registers authentication relay endpoints.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/account")
	{
		api.Use(middleware.FlowAuthMiddleware())
		api.POST("/login", hb.LoginHandler)
		api.POST("/register", hb.RegisterHandler)
		api.POST("/verify-otp", hb.VerifyOTPHandler)
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterProfileRoutes registers endpoints that require a stored session.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profile")
	{
		api.Use(middleware.FlowAuthMiddleware())
		api.Use(middleware.SessionAuthMiddleware(hb.SessionStore))
		api.GET("", hb.GetProfileHandler)
	}
}

// RegisterCategoryRoutes registers the public category listing.
func RegisterCategoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/categories/active", hb.ActiveCategoriesHandler)
}

// RegisterPaymentRoutes registers the Stripe redirect landing endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	payments := r.Group("/payments")
	{
		payments.GET("/success", hb.PaymentSuccessHandler)
		payments.GET("/cancel", hb.PaymentCancelHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm CarePro"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterFlowRoutes(r, hb)
	RegisterAccountRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterCategoryRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterHealthRoute(r)
}
