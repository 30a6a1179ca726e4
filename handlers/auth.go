package handlers

import (
	"errors"
	"net/http"

	"carepro/models"
	"carepro/services/navigation"
	"carepro/services/upstream"
	"carepro/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountHandler relays authentication calls to the upstream CarePro API and
// feeds the results into the navigation controller.
type AccountHandler struct {
	Registry *navigation.Registry
	Upstream upstream.Client
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(registry *navigation.Registry, client upstream.Client) *AccountHandler {
	return &AccountHandler{Registry: registry, Upstream: client}
}

// LoginHandler authenticates against the upstream, persists the session and
// routes by role and provider status. An upstream rejection writes nothing
// and leaves the screen where it was.
func (h *AccountHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req upstream.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	ctrl := h.Registry.Get(c.GetString("flowID"))

	data, err := h.Upstream.Login(c.Request.Context(), req)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			utils.JSONError(c, http.StatusUnauthorized, apiErr.Message, "")
			return
		}
		logger.Error("Login relay failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Login failed. Please try again.", "")
		return
	}

	screen, err := ctrl.Login(c.Request.Context(), data.SessionRecord())
	if err != nil {
		logger.Error("Failed to persist session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Login failed. Please try again.", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"screen": screen,
		"user":   ctrl.CurrentUser(),
	})
}

// RegisterHandler relays a registration submission (multipart; provider
// registrations carry documents) and, on success, captures the OTP hand-off
// and moves the flow to the OTP screen.
func (h *AccountHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	role := models.NormalizeRole(c.Query("role"))
	if role == models.RoleAdmin {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration role", "")
		return
	}

	userID, err := h.Upstream.Register(c.Request.Context(), role, c.ContentType(), c.Request.Body)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			utils.JSONError(c, http.StatusBadRequest, apiErr.Message, "")
			return
		}
		logger.Error("Registration relay failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Registration failed. Please try again.", "")
		return
	}

	otpCtx := &models.OTPContext{UserID: userID, UserRole: role}
	ctrl := h.Registry.Get(c.GetString("flowID"))
	screen := ctrl.Navigate(navigation.ScreenVerifyOTP, otpCtx)

	c.JSON(http.StatusOK, gin.H{
		"screen":     screen,
		"otpContext": otpCtx,
	})
}

// VerifyOTPHandler verifies the passcode for the pending registration. The
// OTP context captured at registration names the user being verified; without
// one the flow is re-routed to registration.
func (h *AccountHandler) VerifyOTPHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		OTP string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	ctrl := h.Registry.Get(c.GetString("flowID"))
	otpCtx := ctrl.OTPContext()
	if otpCtx == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "No pending verification",
			"screen": ctrl.Navigate(navigation.ScreenRegister, nil),
		})
		return
	}

	if err := h.Upstream.VerifyOTP(c.Request.Context(), otpCtx.UserID, req.OTP); err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			utils.JSONError(c, http.StatusUnauthorized, apiErr.Message, "")
			return
		}
		logger.Error("OTP relay failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Verification failed. Please try again.", "")
		return
	}

	// Profile fields arrive later from a profile fetch; start with the bare
	// identity the hand-off carries.
	user := &models.User{
		ID:   otpCtx.UserID,
		Name: "User",
		Role: otpCtx.UserRole,
	}
	if otpCtx.UserRole == models.RoleProvider {
		user.ProviderStatus = models.StatusPending
	}
	screen := ctrl.VerifyOTPSuccess(user)

	c.JSON(http.StatusOK, gin.H{
		"screen": screen,
		"user":   user,
	})
}

// LogoutHandler tears the session down locally and schedules the upstream
// token invalidation. It always lands on the landing screen.
func (h *AccountHandler) LogoutHandler(c *gin.Context) {
	ctrl := h.Registry.Get(c.GetString("flowID"))
	screen := ctrl.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"screen": screen})
}
