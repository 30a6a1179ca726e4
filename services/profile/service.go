// File: services/profile/service.go
package profile

import (
	"context"
	"time"

	profileRepo "carepro/database/repository/profile"
	"carepro/models"
	"carepro/services/upstream"

	"go.uber.org/zap"
)

// ProfileService supplies the lazily-fetched profile fields (name, avatar)
// that the login payload does not carry.
type ProfileService interface {
	// Get returns the profile for the session's user, fetching from the
	// upstream API on a cache miss or stale entry.
	Get(ctx context.Context, record *models.SessionRecord) (*models.Profile, error)
	// Invalidate drops the cached profile, forcing the next Get to refetch.
	Invalidate(userID string) error
}

// DefaultProfileService is the production implementation.
type DefaultProfileService struct {
	Repo     profileRepo.ProfileRepository
	Upstream upstream.Client
	MaxAge   time.Duration
	Logger   *zap.Logger
}

func (s *DefaultProfileService) Get(ctx context.Context, record *models.SessionRecord) (*models.Profile, error) {
	cached, err := s.Repo.GetByUserID(record.UserID)
	if err != nil {
		s.Logger.Warn("profile cache read failed", zap.Error(err))
	}
	if cached != nil && time.Since(cached.FetchedAt) < s.MaxAge {
		return cached, nil
	}

	fetched, err := s.Upstream.Profile(ctx, record.UserRole, record.AccessToken)
	if err != nil {
		// Stale cache beats no profile at all.
		if cached != nil {
			return cached, nil
		}
		return nil, err
	}
	if fetched.UserID == "" {
		fetched.UserID = record.UserID
	}

	if err := s.Repo.Upsert(fetched); err != nil {
		s.Logger.Warn("profile cache write failed", zap.Error(err))
	}
	return fetched, nil
}

func (s *DefaultProfileService) Invalidate(userID string) error {
	return s.Repo.Delete(userID)
}

// Enrich overlays fetched profile fields onto the placeholder user view.
func Enrich(user *models.User, profile *models.Profile) *models.User {
	enriched := *user
	if profile.Name != "" {
		enriched.Name = profile.Name
	}
	if profile.Avatar != "" {
		enriched.Avatar = profile.Avatar
	}
	if profile.Address != "" {
		enriched.Address = profile.Address
	}
	return &enriched
}
