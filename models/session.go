// models/session.go
package models

import "time"

// SessionRecord is the durable representation of an authenticated session.
// Approved is deliberately absent: it must always be recomputed from
// ProviderStatus so the two can never diverge.
type SessionRecord struct {
	AccessToken      string         `json:"accessToken"`
	RefreshToken     string         `json:"refreshToken"`
	UserID           string         `json:"userId"`
	UserEmail        string         `json:"userEmail"`
	UserPhone        string         `json:"userPhone"`
	UserRole         Role           `json:"userRole"`
	IsEmailConfirmed bool           `json:"isEmailConfirmed"`
	ProviderStatus   ProviderStatus `json:"providerStatus,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	LastUpdatedAt    time.Time      `json:"lastUpdatedAt"`
}

// Approved reports whether the session belongs to an approved provider.
func (r *SessionRecord) Approved() bool {
	return r.UserRole == RoleProvider && r.ProviderStatus == StatusApproved
}

// CurrentUser projects the record into the in-memory user view model, filling
// in placeholder profile fields.
func (r *SessionRecord) CurrentUser() *User {
	status := r.ProviderStatus
	if r.UserRole == RoleProvider && status == 0 {
		status = StatusPending
	}
	return &User{
		ID:             r.UserID,
		Name:           PlaceholderName(r.UserEmail),
		Email:          r.UserEmail,
		Phone:          r.UserPhone,
		Role:           r.UserRole,
		Avatar:         PlaceholderAvatar(r.UserEmail),
		Approved:       r.UserRole == RoleProvider && status == StatusApproved,
		ProviderStatus: status,
	}
}

// OTPContext is the transient hand-off between registration and OTP
// verification. It is never persisted and is consumed exactly once.
type OTPContext struct {
	UserID   string `json:"userId"`
	UserRole Role   `json:"userRole"`
}
