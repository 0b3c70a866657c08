package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/savemypet/storefront/internal/core/domain"
	"github.com/savemypet/storefront/internal/core/ports"
)

type stubActivityRepo struct {
	actions []string
	failing bool
}

func (r *stubActivityRepo) Record(_ context.Context, _ *int64, action string) error {
	if r.failing {
		return errors.New("activity store down")
	}
	r.actions = append(r.actions, action)
	return nil
}

func (r *stubActivityRepo) Latest(_ context.Context, _ int) ([]domain.ActivityEntry, error) {
	return nil, nil
}

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.nextID++
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id int64, name, email, phone string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Name, u.Email, u.Phone = name, email, phone
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func newAccountService(repo ports.UserRepository, activity ports.ActivityRepository) *AccountService {
	return NewAccountService(repo, activity, "secret", time.Hour, zerolog.Nop())
}

func TestAccountService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubActivityRepo{})

	user, err := svc.Signup(context.Background(), ports.SignupInput{
		Email:    "alice@example.com",
		Password: "pass123",
		Name:     "Alice",
		Phone:    "0800000000",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("expected customer role, got %s", user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAccountService_Signup_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubActivityRepo{})

	in := ports.SignupInput{Email: "bob@example.com", Password: "pass", Name: "Bob"}
	if _, err := svc.Signup(context.Background(), in); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountService_Signup_SurvivesActivityFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubActivityRepo{failing: true})

	if _, err := svc.Signup(context.Background(), ports.SignupInput{
		Email: "carol@example.com", Password: "pass", Name: "Carol",
	}); err != nil {
		t.Fatalf("signup should not fail on activity write: %v", err)
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubActivityRepo{})

	created, err := svc.Signup(context.Background(), ports.SignupInput{
		Email: "carol@example.com", Password: "s3cret", Name: "Carol",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.ID != created.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if uid, _ := claims["user_id"].(float64); int64(uid) != created.ID {
		t.Fatalf("expected user_id %d, got %v", created.ID, claims["user_id"])
	}
	if claims["role"] != domain.RoleCustomer {
		t.Fatalf("expected role %s, got %v", domain.RoleCustomer, claims["role"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected exp claim")
	}
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubActivityRepo{})

	_, _ = svc.Signup(context.Background(), ports.SignupInput{
		Email: "dave@example.com", Password: "goodpass", Name: "Dave",
	})
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubActivityRepo{})

	// Unknown email must produce the same error as a wrong password so the
	// response never reveals whether an account exists.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_GetUser_SelfAccess(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubActivityRepo{})

	alice, _ := svc.Signup(context.Background(), ports.SignupInput{Email: "a@example.com", Password: "p", Name: "A"})
	bob, _ := svc.Signup(context.Background(), ports.SignupInput{Email: "b@example.com", Password: "p", Name: "B"})

	if _, err := svc.GetUser(context.Background(), alice.ID, domain.RoleCustomer, alice.ID); err != nil {
		t.Fatalf("self access should succeed: %v", err)
	}
	if _, err := svc.GetUser(context.Background(), alice.ID, domain.RoleCustomer, bob.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetUser(context.Background(), alice.ID, domain.RoleSuperAdmin, bob.ID); err != nil {
		t.Fatalf("superadmin access should succeed: %v", err)
	}
}

func TestAccountService_CreateUser_RoleRestrictions(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubActivityRepo{})

	if _, err := svc.CreateUser(context.Background(), 1, ports.CreateUserInput{
		Email: "root@example.com", Password: "p", Name: "Root", Role: domain.RoleSuperAdmin,
	}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole for superadmin, got %v", err)
	}

	admin, err := svc.CreateUser(context.Background(), 1, ports.CreateUserInput{
		Email: "staff@example.com", Password: "p", Name: "Staff", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("admin creation failed: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", admin.Role)
	}
}

func TestAccountService_DeleteUser_Self(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubActivityRepo{})

	u, _ := svc.Signup(context.Background(), ports.SignupInput{Email: "me@example.com", Password: "p", Name: "Me"})

	if err := svc.DeleteUser(context.Background(), u.ID, u.ID); !errors.Is(err, domain.ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), u.ID); err != nil {
		t.Fatalf("user should still exist after rejected self-delete: %v", err)
	}
}
