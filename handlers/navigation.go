package handlers

import (
	"net/http"

	"carepro/models"
	"carepro/services/navigation"
	"carepro/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NavigationHandler exposes the flow lifecycle and screen transitions.
type NavigationHandler struct {
	Registry *navigation.Registry
}

// NewNavigationHandler creates a NavigationHandler.
func NewNavigationHandler(registry *navigation.Registry) *NavigationHandler {
	return &NavigationHandler{Registry: registry}
}

// StartFlowHandler mints a new flow and hands the SPA its signed flow token.
// The flow starts on the landing screen until bootstrapped.
func (h *NavigationHandler) StartFlowHandler(c *gin.Context) {
	logger := getLogger(c)

	flowID, ctrl := h.Registry.NewFlow()
	token, err := utils.GenerateFlowToken(flowID, utils.FlowTokenTTL)
	if err != nil {
		logger.Error("Failed to sign flow token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to start flow", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"flowToken": token,
		"screen":    ctrl.Current(),
	})
}

// BootstrapHandler computes the initial screen for the flow from the URL the
// SPA loaded on and whatever session storage holds. Payment redirect URLs win
// over any stored session.
func (h *NavigationHandler) BootstrapHandler(c *gin.Context) {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	ctrl := h.Registry.Get(c.GetString("flowID"))
	screen := ctrl.Bootstrap(c.Request.Context(), req.URL)

	resp := gin.H{"screen": screen}
	if user := ctrl.CurrentUser(); user != nil {
		resp["user"] = user
	}
	c.JSON(http.StatusOK, resp)
}

// NavigateHandler applies an explicit screen transition, including the OTP
// hand-off capture and the provider screen guards.
func (h *NavigationHandler) NavigateHandler(c *gin.Context) {
	var req struct {
		Screen     string             `json:"screen" binding:"required"`
		OTPContext *models.OTPContext `json:"otpContext,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	screen, err := navigation.ParseScreen(req.Screen)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Unknown screen", err.Error())
		return
	}

	ctrl := h.Registry.Get(c.GetString("flowID"))
	next := ctrl.Navigate(screen, req.OTPContext)
	c.JSON(http.StatusOK, gin.H{"screen": next})
}
