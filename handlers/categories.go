package handlers

import (
	"net/http"

	"carepro/services/upstream"
	"carepro/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CategoryHandler relays the active service categories the registration form
// offers.
type CategoryHandler struct {
	Upstream upstream.Client
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(client upstream.Client) *CategoryHandler {
	return &CategoryHandler{Upstream: client}
}

// ActiveCategoriesHandler lists categories open for provider registration.
func (h *CategoryHandler) ActiveCategoriesHandler(c *gin.Context) {
	logger := getLogger(c)

	categories, err := h.Upstream.ActiveCategories(c.Request.Context())
	if err != nil {
		logger.Error("Category relay failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to load categories", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
