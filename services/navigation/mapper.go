package navigation

import "carepro/models"

// ScreenFor maps a role and provider approval status to the screen a session
// lands on. It is pure and total: admins and users ignore the status entirely,
// and unknown provider status codes fall back to the pending screen rather
// than failing navigation. Bootstrap and login both route through this exact
// function so the two always agree.
func ScreenFor(role models.Role, status models.ProviderStatus) Screen {
	switch role {
	case models.RoleAdmin:
		return ScreenAdminDashboard
	case models.RoleProvider:
		switch status {
		case models.StatusApproved:
			return ScreenProviderDashboard
		case models.StatusRejected:
			return ScreenProviderRejected
		case models.StatusRequiresMoreInfo:
			return ScreenProviderRequiresInfo
		default:
			// Pending, under review, and anything the upstream invents later.
			return ScreenProviderPending
		}
	default:
		return ScreenUserDashboard
	}
}
