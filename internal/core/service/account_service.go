package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/savemypet/storefront/internal/core/domain"
	"github.com/savemypet/storefront/internal/core/ports"
)

// AccountService implements signup, login, profile management, and
// superadmin user administration.
type AccountService struct {
	users     ports.UserRepository
	activity  ports.ActivityRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAccountService(users ports.UserRepository, activity ports.ActivityRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AccountService{
		users:     users,
		activity:  activity,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Signup registers a new customer account. The password is stored as a
// bcrypt hash, never in the clear.
func (s *AccountService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         domain.RoleCustomer,
		Phone:        in.Phone,
	})
	if err != nil {
		return nil, err
	}

	s.recordActivity(ctx, created.ID, fmt.Sprintf("New customer registered: %s", created.Email))
	s.log.Info().Int64("user_id", created.ID).Str("email", created.Email).Msg("customer registered")
	return created, nil
}

// Login verifies the credentials and returns a signed session token with
// the user's public fields. Unknown email and wrong password produce the
// same error so the response never reveals which field was wrong.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.recordActivity(ctx, user.ID, fmt.Sprintf("User logged in: %s (%s)", user.Email, user.Role))
	return token, user, nil
}

func (s *AccountService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID int64, name, email, phone string) error {
	if err := s.users.UpdateProfile(ctx, userID, name, email, phone); err != nil {
		return err
	}
	s.recordActivity(ctx, userID, "Profile updated")
	return nil
}

// GetUser enforces the self-access rule: only superadmins may fetch a
// record other than their own.
func (s *AccountService) GetUser(ctx context.Context, callerID int64, callerRole string, id int64) (*domain.User, error) {
	if id != callerID && callerRole != domain.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	return s.users.FindByID(ctx, id)
}

func (s *AccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// CreateUser provisions an admin or customer account on behalf of a
// superadmin. Superadmin accounts cannot be created through the API.
func (s *AccountService) CreateUser(ctx context.Context, actorID int64, in ports.CreateUserInput) (*domain.User, error) {
	if in.Role != domain.RoleAdmin && in.Role != domain.RoleCustomer {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
	})
	if err != nil {
		return nil, err
	}

	s.recordActivity(ctx, actorID, fmt.Sprintf("Created user: %s with role %s", created.Email, created.Role))
	return created, nil
}

// DeleteUser removes an account. A superadmin deleting their own id is
// rejected and the row stays.
func (s *AccountService) DeleteUser(ctx context.Context, actorID, id int64) error {
	if id == actorID {
		return domain.ErrSelfDelete
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.recordActivity(ctx, actorID, fmt.Sprintf("Deleted user ID: %d", id))
	return nil
}

func (s *AccountService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// recordActivity appends to the audit trail best-effort: a failed write is
// logged and never surfaced to the caller.
func (s *AccountService) recordActivity(ctx context.Context, userID int64, action string) {
	if err := s.activity.Record(ctx, &userID, action); err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("failed to record activity")
	}
}
