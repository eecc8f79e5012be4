package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/wellnest/wellness-api/internal/core/domain"
	"github.com/wellnest/wellness-api/internal/core/ports"
)

type stubAuthRepo struct {
	users map[string]*domain.User // keyed by email
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "id-" + user.Email
	}
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newAuthSvc(repo *stubAuthRepo) *AuthService {
	return NewAuthService(repo, "secret", time.Hour, zerolog.Nop())
}

func register(t *testing.T, svc *AuthService, email, password string, role domain.UserRole) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Test User",
		Email:    email,
		Password: password,
		Role:     string(role),
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return user
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())
	avatar := "/avatars/alice.png"

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Alice",
		Email:    " Alice@Example.com ",
		Password: "pass123",
		Role:     "nutritionist",
		Avatar:   &avatar,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleNutritionist {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %q", user.Email)
	}
	if user.Avatar == nil || *user.Avatar != avatar {
		t.Fatalf("expected avatar to be kept, got %v", user.Avatar)
	}
	if user.IsAuthenticated {
		t.Fatalf("a freshly registered user is not authenticated")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())

	missing := map[string]ports.RegisterInput{
		"no name":        {Email: "a@b.c", Password: "pass", Role: "patient"},
		"blank name":     {Name: "   ", Email: "a@b.c", Password: "pass", Role: "patient"},
		"blank email":    {Name: "Bob", Email: " ", Password: "pass", Role: "patient"},
		"empty password": {Name: "Bob", Email: "a@b.c", Role: "patient"},
	}
	for name, in := range missing {
		_, err := svc.Register(context.Background(), in)
		if !errors.Is(err, domain.ErrInvalidUser) {
			t.Fatalf("%s: expected ErrInvalidUser, got %v", name, err)
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("%s: validation failure must not read as bad credentials", name)
		}
	}

	for _, role := range []string{"", "admin", "Patient", "client"} {
		_, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pass", Role: role})
		if !errors.Is(err, domain.ErrInvalidRole) {
			t.Fatalf("role %q: expected ErrInvalidRole, got %v", role, err)
		}
	}
}

func TestAuthService_Register_EveryRole(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())
	for _, role := range domain.Roles() {
		user := register(t, svc, string(role)+"@example.com", "pass", role)
		if user.Role != role {
			t.Fatalf("expected %s, got %s", role, user.Role)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())

	register(t, svc, "bob@example.com", "pass", domain.RolePatient)
	_, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Bob", Email: "BOB@example.com", Password: "pass2", Role: "patient"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())
	registered := register(t, svc, "carol@example.com", "s3cret", domain.RoleTherapist)

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.ID != registered.ID || !user.IsAuthenticated {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != string(domain.RoleTherapist) {
		t.Fatalf("expected role %s, got %v", domain.RoleTherapist, claims["role"])
	}
	if claims["sub"] != registered.ID {
		t.Fatalf("expected sub %s, got %v", registered.ID, claims["sub"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())
	register(t, svc, "dave@example.com", "goodpass", domain.RolePatient)

	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())
	registered := register(t, svc, "erin@example.com", "pass", domain.RoleYoga)

	user, err := svc.Me(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if !user.IsAuthenticated || user.Role != domain.RoleYoga {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Me(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
