package domain

import "errors"

const (
	RoleCustomer   = "customer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrSelfDelete = errors.New("cannot delete yourself")
var ErrForbidden = errors.New("access forbidden")

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin || role == RoleSuperAdmin
}

// User models an account in the storefront. PasswordHash is a bcrypt hash
// and is never serialized.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Phone        string `json:"phone,omitempty"`
}
