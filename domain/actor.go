package domain

// Role is who the caller acts as. Identity and role resolution belong to the
// external auth provider; the engine only consumes them.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

// IsValid reports whether the role is known.
func (r Role) IsValid() bool {
	return r == RoleCandidate || r == RoleEmployer
}

// Actor is the caller identity supplied explicitly on every state-changing
// call. There is no ambient session state inside the engine.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
