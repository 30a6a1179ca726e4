// File: services/navigation/controller.go
package navigation

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"carepro/models"
	"carepro/services/session"

	"go.uber.org/zap"
)

// Revoker hands an access token off for best-effort upstream invalidation.
// Enqueue failures never block a local logout.
type Revoker interface {
	EnqueueRevoke(ctx context.Context, accessToken string) error
}

// Controller is the navigation state machine for one SPA flow. It decides,
// from stored session data and upstream status codes, which screen is active
// and how transitions between screens happen. All transitions are serialized
// by an internal mutex so a late completion can never interleave with a newer
// event.
type Controller struct {
	mu      sync.Mutex
	flowID  string
	store   session.Store
	revoker Revoker
	logger  *zap.Logger

	current Screen
	user    *models.User
	otpCtx  *models.OTPContext
}

// NewController creates a controller idling on the landing screen.
func NewController(flowID string, store session.Store, revoker Revoker, logger *zap.Logger) *Controller {
	return &Controller{
		flowID:  flowID,
		store:   store,
		revoker: revoker,
		logger:  logger,
		current: ScreenLanding,
	}
}

// Bootstrap computes the initial screen for the flow, in strict order: payment
// redirect URLs short-circuit before any session inspection, then the stored
// session (if any) is routed through ScreenFor. Corrupt session data is wiped
// and silently lands on the landing screen. Bootstrap is idempotent: given
// unchanged storage and URL it always yields the same screen.
func (c *Controller) Bootstrap(ctx context.Context, rawURL string) Screen {
	c.mu.Lock()
	defer c.mu.Unlock()

	if screen, ok := paymentRedirectScreen(rawURL); ok {
		c.current = screen
		return c.current
	}

	record, err := c.store.Load(ctx, c.flowID)
	switch {
	case err == nil:
		c.user = record.CurrentUser()
		c.current = ScreenFor(c.user.Role, c.user.ProviderStatus)
	case errors.Is(err, session.ErrCorrupt):
		c.logger.Warn("corrupt session record, clearing storage",
			zap.String("flowID", c.flowID), zap.Error(err))
		if clearErr := c.store.Clear(ctx, c.flowID); clearErr != nil {
			c.logger.Error("failed to clear corrupt session", zap.Error(clearErr))
		}
		c.user = nil
		c.current = ScreenLanding
	case errors.Is(err, session.ErrNotFound):
		c.current = ScreenLanding
	default:
		c.logger.Error("session load failed", zap.String("flowID", c.flowID), zap.Error(err))
		c.current = ScreenLanding
	}
	return c.current
}

// paymentRedirectScreen inspects the URL the SPA loaded on. Stripe redirects
// back with session_id on the success callback and request_id on the cancel
// callback.
func paymentRedirectScreen(rawURL string) (Screen, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	query := u.Query()
	if query.Get("session_id") != "" && strings.Contains(u.Path, "success") {
		return ScreenPaymentSuccess, true
	}
	if query.Get("request_id") != "" && strings.Contains(u.Path, "cancel") {
		return ScreenPaymentCancel, true
	}
	return "", false
}

// Navigate transitions to the requested screen, applying entry guards.
// Requesting the OTP screen without a pending OTP context re-routes to
// registration instead of failing; role-gated provider screens redirect to
// login when the current user does not qualify.
func (c *Controller) Navigate(screen Screen, data *models.OTPContext) Screen {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch screen {
	case ScreenVerifyOTP:
		if data != nil {
			c.otpCtx = data
		}
		if c.otpCtx == nil {
			c.current = ScreenRegister
			return c.current
		}
		c.current = ScreenVerifyOTP

	case ScreenProviderDashboard:
		if c.user == nil || c.user.Role != models.RoleProvider || !c.user.Approved {
			c.current = ScreenLogin
			return c.current
		}
		c.current = ScreenProviderDashboard

	case ScreenProviderPending, ScreenProviderRejected, ScreenProviderRequiresInfo:
		if c.user == nil || c.user.Role != models.RoleProvider {
			c.current = ScreenLogin
			return c.current
		}
		c.current = screen

	case ScreenLanding, ScreenLogin, ScreenRegister, ScreenUserDashboard,
		ScreenAdminDashboard, ScreenAbout, ScreenContact, ScreenFAQ,
		ScreenPrivacy, ScreenTerms, ScreenPaymentSuccess, ScreenPaymentCancel,
		ScreenPendingApproval:
		c.current = screen

	default:
		c.current = ScreenLanding
	}
	return c.current
}

// Login persists the freshly authenticated session and routes by role and
// provider status, using the supplied record rather than a re-read from
// storage. A save failure leaves both the store and the screen untouched.
func (c *Controller) Login(ctx context.Context, record *models.SessionRecord) (Screen, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if err := c.store.Save(ctx, c.flowID, record); err != nil {
		return c.current, err
	}

	c.user = record.CurrentUser()
	c.otpCtx = nil
	c.current = ScreenFor(c.user.Role, c.user.ProviderStatus)
	return c.current, nil
}

// VerifyOTPSuccess installs the verified user and routes them onward:
// providers wait on the approval screen, everyone else goes straight to the
// user dashboard. The pending OTP context is consumed here.
func (c *Controller) VerifyOTPSuccess(user *models.User) Screen {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.user = user
	c.otpCtx = nil
	if user.Role == models.RoleProvider {
		c.current = ScreenPendingApproval
	} else {
		c.current = ScreenUserDashboard
	}
	return c.current
}

// Logout hands the access token to the revoker for best-effort upstream
// invalidation, then clears local state. The local transition to landing is
// authoritative and proceeds regardless of either failure.
func (c *Controller) Logout(ctx context.Context) Screen {
	c.mu.Lock()
	defer c.mu.Unlock()

	if record, err := c.store.Load(ctx, c.flowID); err == nil && record.AccessToken != "" {
		if err := c.revoker.EnqueueRevoke(ctx, record.AccessToken); err != nil {
			c.logger.Warn("failed to enqueue token revocation", zap.Error(err))
		}
	}
	if err := c.store.Clear(ctx, c.flowID); err != nil {
		c.logger.Error("failed to clear session on logout", zap.Error(err))
	}

	c.user = nil
	c.otpCtx = nil
	c.current = ScreenLanding
	return c.current
}

// Current returns the active screen.
func (c *Controller) Current() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// CurrentUser returns the in-memory user, or nil when logged out.
func (c *Controller) CurrentUser() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// OTPContext returns the pending OTP hand-off, or nil when none is captured.
func (c *Controller) OTPContext() *models.OTPContext {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.otpCtx
}

// SetUser replaces the in-memory user without navigating. Profile enrichment
// uses this once a lazy fetch lands.
func (c *Controller) SetUser(user *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = user
}
