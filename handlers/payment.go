package handlers

import (
	"net/http"

	"carepro/services/payment"
	"carepro/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentRedirectHandler serves the landing endpoints Stripe redirects back
// to. Screen routing already happened from the URL alone; these endpoints
// only supply the detail the success and cancel screens display.
type PaymentRedirectHandler struct {
	Payment payment.PaymentService
}

// NewPaymentRedirectHandler creates a PaymentRedirectHandler.
func NewPaymentRedirectHandler(svc payment.PaymentService) *PaymentRedirectHandler {
	return &PaymentRedirectHandler{Payment: svc}
}

// SuccessHandler confirms the checkout session named in the redirect URL.
func (h *PaymentRedirectHandler) SuccessHandler(c *gin.Context) {
	logger := getLogger(c)

	sessionID := c.Query("session_id")
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing session_id", "")
		return
	}

	confirmation, err := h.Payment.ConfirmCheckout(c.Request.Context(), sessionID)
	if err != nil {
		// The screen still shows success; only the receipt detail is missing.
		logger.Warn("Checkout confirmation failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "confirmed": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId":   confirmation.SessionID,
		"confirmed":   true,
		"paid":        confirmation.Paid,
		"amountTotal": confirmation.AmountTotal,
		"currency":    confirmation.Currency,
	})
}

// CancelHandler acknowledges a cancelled checkout for a service request.
func (h *PaymentRedirectHandler) CancelHandler(c *gin.Context) {
	requestID := c.Query("request_id")
	if requestID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing request_id", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"requestId": requestID, "cancelled": true})
}
