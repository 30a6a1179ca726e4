package session

import (
	"encoding/json"
	"fmt"

	"carepro/models"
)

// encodeRecord serializes a record for storage.
func encodeRecord(record *models.SessionRecord) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session record: %w", err)
	}
	return data, nil
}

// decodeRecord deserializes a stored record. Decode failures surface as
// ErrCorrupt so callers can distinguish them from a missing session.
func decodeRecord(data []byte) (*models.SessionRecord, error) {
	var record models.SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &record, nil
}
