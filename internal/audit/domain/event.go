package domain

import "time"

// Actions recorded by the authentication flow.
const (
	ActionLoginSuccess        = "login_success"
	ActionLoginFailure        = "login_failure"
	ActionLoginDeniedInactive = "login_denied_inactive"
	ActionLogout              = "logout"
	ActionUserProvisioned     = "user_provisioned"
	ActionUserDeactivated     = "user_deactivated"
)

// Event represents one audit trail entry. UserID may be empty when the
// subject could not be resolved (e.g. a failed login for an unknown name).
type Event struct {
	ID        string
	UserID    string
	Action    string
	IP        string
	Metadata  string
	CreatedAt time.Time
}
