package handlers

import (
	"carepro/services/session"

	"github.com/gin-gonic/gin"
)

// HandlerBundle collects every endpoint handler plus the dependencies route
// registration needs.
type HandlerBundle struct {
	SessionStore session.Store

	// Flow and navigation endpoints.
	StartFlowHandler gin.HandlerFunc
	BootstrapHandler gin.HandlerFunc
	NavigateHandler  gin.HandlerFunc

	// Account endpoints.
	LoginHandler     gin.HandlerFunc
	RegisterHandler  gin.HandlerFunc
	VerifyOTPHandler gin.HandlerFunc
	LogoutHandler    gin.HandlerFunc

	// Profile endpoint.
	GetProfileHandler gin.HandlerFunc

	// Category endpoint.
	ActiveCategoriesHandler gin.HandlerFunc

	// Payment redirect endpoints.
	PaymentSuccessHandler gin.HandlerFunc
	PaymentCancelHandler  gin.HandlerFunc
}
