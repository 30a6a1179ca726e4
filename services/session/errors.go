package session

import "errors"

// ErrNotFound signals that no session exists for the flow.
var ErrNotFound = errors.New("session not found")

// ErrCorrupt signals that a session record exists but could not be decoded.
// Callers recover by clearing storage; the user is never shown this error.
var ErrCorrupt = errors.New("session record corrupt")
