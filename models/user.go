// models/user.go
package models

import "strings"

// Role identifies which of the three actor types owns a session.
type Role string

const (
	RoleUser     Role = "user"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// NormalizeRole maps the upstream's role spelling onto the canonical set. The
// upstream reports roles case-insensitively and uses "serviceprovider" for
// providers.
func NormalizeRole(raw string) Role {
	switch strings.ToLower(raw) {
	case "serviceprovider", "provider":
		return RoleProvider
	case "admin":
		return RoleAdmin
	default:
		return RoleUser
	}
}

// ProviderStatus is the upstream's approval pipeline code for a provider.
type ProviderStatus int

const (
	StatusPending          ProviderStatus = 1
	StatusUnderReview      ProviderStatus = 2
	StatusApproved         ProviderStatus = 3
	StatusRejected         ProviderStatus = 4
	StatusRequiresMoreInfo ProviderStatus = 5
)

// Known reports whether the code is one of the documented pipeline stages.
// Unknown codes are kept as-is; routing treats them like a pending application.
func (s ProviderStatus) Known() bool {
	return s >= StatusPending && s <= StatusRequiresMoreInfo
}

// User is the in-memory view of whoever owns the current session. Name and
// Avatar start as email-derived placeholders and are replaced once a profile
// fetch lands.
type User struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Role           Role           `json:"role"`
	Phone          string         `json:"phone,omitempty"`
	Address        string         `json:"address,omitempty"`
	Avatar         string         `json:"avatar,omitempty"`
	Approved       bool           `json:"approved"`
	ProviderStatus ProviderStatus `json:"providerStatus,omitempty"`
}

// PlaceholderName derives a display name from an email address, used until
// the real profile is fetched.
func PlaceholderName(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

// PlaceholderAvatar builds a deterministic avatar URL from an email address.
func PlaceholderAvatar(email string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + PlaceholderName(email)
}
