package upstream

import "fmt"

// APIError is a rejection reported by the upstream backend. The message is
// safe to surface to the SPA.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream rejected request (status %d): %s", e.Status, e.Message)
}
