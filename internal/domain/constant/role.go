package constant

// Role is the authorization role assigned to a user.
type Role string

const (
	// RoleUser is the default role for every newly resolved user.
	RoleUser Role = "USER"
	// RoleAdmin is reserved for operational access; never assigned automatically.
	RoleAdmin Role = "ADMIN"
)

func (r Role) String() string {
	return string(r)
}
