package handlers

import (
	"net/http"

	"carepro/models"
	"carepro/services/navigation"
	"carepro/services/profile"
	"carepro/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler serves the enriched current-user view.
type ProfileHandler struct {
	Registry *navigation.Registry
	Profile  profile.ProfileService
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(registry *navigation.Registry, svc profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{Registry: registry, Profile: svc}
}

// GetProfileHandler returns the session's user with lazily-fetched profile
// fields overlaid. When the fetch fails the placeholder view is returned
// rather than an error; profile data is cosmetic for routing purposes.
func (h *ProfileHandler) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	recordVal, exists := c.Get("sessionRecord")
	record, ok := recordVal.(*models.SessionRecord)
	if !exists || !ok {
		utils.JSONError(c, http.StatusUnauthorized, "No active session", "")
		return
	}

	user := record.CurrentUser()
	fetched, err := h.Profile.Get(c.Request.Context(), record)
	if err != nil {
		logger.Warn("Profile fetch failed, serving placeholder", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"user": user})
		return
	}

	enriched := profile.Enrich(user, fetched)
	h.Registry.Get(c.GetString("flowID")).SetUser(enriched)
	c.JSON(http.StatusOK, gin.H{"user": enriched})
}
