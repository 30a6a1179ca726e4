package session

import (
	"context"

	"carepro/models"
)

// Store is the durable home of session records. It is the only component
// allowed to touch session storage; everything else goes through it.
type Store interface {
	// Load retrieves the record for a flow. It returns ErrNotFound when no
	// session exists and ErrCorrupt when a record is present but cannot be
	// decoded, so callers can wipe storage and fall back to logged-out.
	Load(ctx context.Context, flowID string) (*models.SessionRecord, error)
	// Save replaces the stored record in full. Both the record and the
	// access-token marker are written together; a session is only valid when
	// both are present.
	Save(ctx context.Context, flowID string, record *models.SessionRecord) error
	// Clear removes every key Save writes. Used on logout and on load failure.
	Clear(ctx context.Context, flowID string) error
}
