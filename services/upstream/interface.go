package upstream

import (
	"context"
	"io"

	"carepro/models"
)

// Client talks to the remote CarePro REST backend. The backend is the system
// of record; this gateway only relays calls and interprets the response
// envelopes.
type Client interface {
	// Login authenticates credentials and returns the token/identity payload.
	Login(ctx context.Context, req LoginRequest) (*LoginData, error)
	// VerifyOTP confirms a registration one-time passcode.
	VerifyOTP(ctx context.Context, userID, otp string) error
	// Logout invalidates an access token upstream, best effort.
	Logout(ctx context.Context, accessToken string) error
	// Register relays a registration submission (multipart, may carry
	// provider documents) and returns the new user's ID for the OTP hand-off.
	Register(ctx context.Context, role models.Role, contentType string, body io.Reader) (string, error)
	// Profile fetches the profile for the session's role.
	Profile(ctx context.Context, role models.Role, accessToken string) (*models.Profile, error)
	// ActiveCategories lists the service categories open for registration.
	ActiveCategories(ctx context.Context) ([]models.Category, error)
}

// LoginRequest carries the credentials the upstream login endpoint expects.
type LoginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
}

// LoginData is the data payload of a successful login envelope.
type LoginData struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ID               string `json:"id"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phoneNumber"`
	Role             string `json:"role"`
	IsEmailConfirmed bool   `json:"isEmailConfirmed"`
	ProviderStatus   int    `json:"providerStatus,omitempty"`
}

// SessionRecord maps the login payload into a durable session record,
// normalizing the role spelling and defaulting an absent provider status to
// pending. Approved is never materialized here; it is always derived.
func (d *LoginData) SessionRecord() *models.SessionRecord {
	role := models.NormalizeRole(d.Role)
	record := &models.SessionRecord{
		AccessToken:      d.AccessToken,
		RefreshToken:     d.RefreshToken,
		UserID:           d.ID,
		UserEmail:        d.Email,
		UserPhone:        d.PhoneNumber,
		UserRole:         role,
		IsEmailConfirmed: d.IsEmailConfirmed,
	}
	if role == models.RoleProvider {
		record.ProviderStatus = models.ProviderStatus(d.ProviderStatus)
		if record.ProviderStatus == 0 {
			record.ProviderStatus = models.StatusPending
		}
	}
	return record
}
