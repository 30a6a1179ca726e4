package profileRepo

import "carepro/models"

// ProfileRepository defines methods for cached profile data access.
type ProfileRepository interface {
	// GetByUserID retrieves a cached profile, or nil when none exists.
	GetByUserID(userID string) (*models.Profile, error)
	// Upsert inserts or replaces the cached profile for a user.
	Upsert(profile *models.Profile) error
	// Delete removes a cached profile by user ID.
	Delete(userID string) error
}
