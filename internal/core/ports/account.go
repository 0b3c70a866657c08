package ports

import (
	"context"

	"github.com/savemypet/storefront/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts the user and returns it with the assigned id.
	// Returns domain.ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// UpdateProfile overwrites name, email, and phone unconditionally.
	UpdateProfile(ctx context.Context, id int64, name, email, phone string) error
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// SignupInput carries a self-service registration. The created account is
// always a customer.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// CreateUserInput carries a superadmin-initiated account creation.
// Role is restricted to admin or customer.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// AccountService defines identity and user-administration use cases.
type AccountService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	// Login returns a signed session token and the user's public fields.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, email, phone string) error
	// GetUser enforces the self-access rule: non-superadmin callers may
	// only fetch their own record.
	GetUser(ctx context.Context, callerID int64, callerRole string, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, actorID int64, in CreateUserInput) (*domain.User, error)
	// DeleteUser rejects self-deletion with domain.ErrSelfDelete.
	DeleteUser(ctx context.Context, actorID, id int64) error
}
