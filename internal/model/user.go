package model

// Roles carried in the JWT "role" claim. Authentication itself is owned by
// an external identity service; this service only verifies tokens and
// enforces role checks.
const (
	RoleBidder = "BIDDER"
	RoleSeller = "SELLER"
	RoleAdmin  = "ADMIN"
)

// UserIdentity is the resolved identity of a connection or request, taken
// from verified token claims. Email doubles as the public display identity
// in room rosters.
type UserIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
