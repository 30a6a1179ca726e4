// File: utils/constants.go
package utils

import "time"

// SessionKeyPrefix is the prefix used for Redis session record keys.
const SessionKeyPrefix = "session:"

// TokenKeyPrefix is the prefix used for Redis access-token marker keys.
const TokenKeyPrefix = "sessionToken:"

// FlowTokenTTL is the lifetime of the signed flow token handed to the SPA.
const FlowTokenTTL = 720 * time.Hour
