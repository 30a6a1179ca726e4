package navigation

import "fmt"

// Screen is the enumerated tag selecting which top-level SPA view is active.
// It is the sole piece of navigation state and is never persisted; reloads
// always recompute it from the session record.
type Screen string

const (
	ScreenLanding              Screen = "landing"
	ScreenLogin                Screen = "login"
	ScreenRegister             Screen = "register"
	ScreenVerifyOTP            Screen = "verify-otp"
	ScreenUserDashboard        Screen = "user-dashboard"
	ScreenProviderDashboard    Screen = "provider-dashboard"
	ScreenProviderPending      Screen = "provider-pending"
	ScreenProviderRejected     Screen = "provider-rejected"
	ScreenProviderRequiresInfo Screen = "provider-requires-info"
	ScreenAdminDashboard       Screen = "admin-dashboard"
	ScreenAbout                Screen = "about"
	ScreenContact              Screen = "contact"
	ScreenFAQ                  Screen = "faq"
	ScreenPrivacy              Screen = "privacy"
	ScreenTerms                Screen = "terms"
	ScreenPaymentSuccess       Screen = "payment-success"
	ScreenPaymentCancel        Screen = "payment-cancel"
	ScreenPendingApproval      Screen = "pending-approval"
)

var allScreens = map[Screen]struct{}{
	ScreenLanding:              {},
	ScreenLogin:                {},
	ScreenRegister:             {},
	ScreenVerifyOTP:            {},
	ScreenUserDashboard:        {},
	ScreenProviderDashboard:    {},
	ScreenProviderPending:      {},
	ScreenProviderRejected:     {},
	ScreenProviderRequiresInfo: {},
	ScreenAdminDashboard:       {},
	ScreenAbout:                {},
	ScreenContact:              {},
	ScreenFAQ:                  {},
	ScreenPrivacy:              {},
	ScreenTerms:                {},
	ScreenPaymentSuccess:       {},
	ScreenPaymentCancel:        {},
	ScreenPendingApproval:      {},
}

// ParseScreen validates a raw screen tag coming off the wire.
func ParseScreen(raw string) (Screen, error) {
	s := Screen(raw)
	if _, ok := allScreens[s]; !ok {
		return "", fmt.Errorf("unknown screen %q", raw)
	}
	return s, nil
}
