package user

import "time"

// Role distinguishes the two sides of the marketplace.
type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleFreelancer
}

// User is a marketplace account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated caller of a request, resolved once by the
// auth layer.
type Principal struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

func (p Principal) IsClient() bool     { return p.Role == RoleClient }
func (p Principal) IsFreelancer() bool { return p.Role == RoleFreelancer }

// Principal returns the principal for u.
func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Role: u.Role}
}
