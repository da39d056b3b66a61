package models

// Role is the actor role carried in the session token. The chat engine
// only distinguishes candidates from support-like roles; the remaining
// roles exist elsewhere in the platform and get no chat privileges
// beyond a candidate's.
type Role string

const (
	RoleCandidate   Role = "candidato"
	RoleSupport     Role = "soporte"
	RoleAdmin       Role = "admin"
	RoleDeveloper   Role = "developer"
	RoleCoordinator Role = "coordinador"
	RoleFinancial   Role = "revisor_financiero"
	RoleManager     Role = "gerente"
)

// SupportLike reports whether the role has elevated chat permissions.
func (r Role) SupportLike() bool {
	switch r {
	case RoleSupport, RoleAdmin, RoleDeveloper:
		return true
	}
	return false
}

// Actor identifies the authenticated viewer of a chat session.
type Actor struct {
	UserID int64 `json:"user_id"`
	Role   Role  `json:"role"`
}

// Candidate is a directory search hit used by the composer's
// candidate-lookup step.
type Candidate struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
