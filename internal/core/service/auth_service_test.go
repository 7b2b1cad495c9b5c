package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gigboard/marketplace/internal/api/metrics"
	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/ports"
)

type stubUserRepo struct {
	byEmail   map[string]*domain.User
	nextID    int
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = "user-" + strconv.Itoa(r.nextID)
	r.byEmail[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newTestAuthService(repo ports.UserRepository) *AuthService {
	return NewAuthService(repo, "secret", time.Hour, bcrypt.MinCost, zerolog.Nop())
}

func registerInput(name, email, password, role string) ports.RegisterInput {
	return ports.RegisterInput{Name: name, Email: email, Password: password, Role: role}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)
	before := testutil.ToFloat64(metrics.UsersRegisteredTotal.WithLabelValues(domain.RoleEmployer))

	result, err := svc.Register(context.Background(), registerInput("Alice", "a@x.com", "pw1", domain.RoleEmployer))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected token, got empty")
	}
	if result.User.ID == "" || result.User.Name != "Alice" || result.User.Role != domain.RoleEmployer {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if result.User.PasswordHash == "pw1" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if got := testutil.ToFloat64(metrics.UsersRegisteredTotal.WithLabelValues(domain.RoleEmployer)); got != before+1 {
		t.Errorf("expected registration counter %v, got %v", before+1, got)
	}
}

func TestAuthService_Register_DefaultsToFreelancer(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	result, err := svc.Register(context.Background(), registerInput("Bob", "bob@x.com", "pw", ""))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.User.Role != domain.RoleFreelancer {
		t.Fatalf("expected role %q, got %q", domain.RoleFreelancer, result.User.Role)
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), registerInput("Carol", "  Carol@Example.COM ", "pw", "")); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, ok := repo.byEmail["carol@example.com"]; !ok {
		t.Fatalf("expected email stored lower-cased, got %v", repo.byEmail)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	cases := []struct {
		name  string
		input ports.RegisterInput
		want  error
	}{
		{"missing name", registerInput("", "a@x.com", "pw", ""), domain.ErrInvalidInput},
		{"missing email", registerInput("Alice", " ", "pw", ""), domain.ErrInvalidInput},
		{"missing password", registerInput("Alice", "a@x.com", "", ""), domain.ErrInvalidInput},
		{"unknown role", registerInput("Alice", "a@x.com", "pw", "admin"), domain.ErrInvalidRole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), registerInput("Alice", "a@x.com", "pw1", "")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	result, err := svc.Register(context.Background(), registerInput("Alice 2", "A@x.com", "pw2", ""))
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no result on duplicate, got %+v", result)
	}
}

func TestAuthService_Register_RepoError(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = errors.New("db unavailable")
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), registerInput("Alice", "a@x.com", "pw", "")); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	registered, err := svc.Register(context.Background(), registerInput("Carol", "carol@example.com", "s3cret", domain.RoleEmployer))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "Carol@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected token, got empty")
	}
	if result.User.ID != registered.User.ID {
		t.Fatalf("expected user %s, got %s", registered.User.ID, result.User.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != registered.User.ID {
		t.Fatalf("expected sub %s, got %v", registered.User.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleEmployer {
		t.Fatalf("expected role %s, got %v", domain.RoleEmployer, claims["role"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())
	before := testutil.ToFloat64(metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials"))

	_, _ = svc.Register(context.Background(), registerInput("Dave", "dave@example.com", "goodpass", ""))
	result, err := svc.Login(context.Background(), "dave@example.com", "badpass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no token on failed login, got %+v", result)
	}
	if got := testutil.ToFloat64(metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials")); got != before+1 {
		t.Errorf("expected invalid_credentials counter %v, got %v", before+1, got)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	result, err := svc.Login(context.Background(), "ghost@example.com", "pass")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no token for unknown user, got %+v", result)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ParseToken_RoundTrip(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	registered, err := svc.Register(context.Background(), registerInput("Erin", "erin@example.com", "pw", domain.RoleEmployer))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims, err := svc.ParseToken(registered.Token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != registered.User.ID || claims.Name != "Erin" || claims.Role != domain.RoleEmployer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	other := NewAuthService(newStubUserRepo(), "other-secret", time.Hour, bcrypt.MinCost, zerolog.Nop())
	foreign, err := other.Register(context.Background(), registerInput("Mallory", "m@example.com", "pw", ""))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	expiredToken, _ := expired.SignedString([]byte("secret"))

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "employer"})
	noSubjectToken, _ := noSubject.SignedString([]byte("secret"))

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign.Token,
		"expired":      expiredToken,
		"missing sub":  noSubjectToken,
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.ParseToken(token); !errors.Is(err, domain.ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	registered, _ := svc.Register(context.Background(), registerInput("Frank", "frank@example.com", "pw", ""))

	user, err := svc.CurrentUser(context.Background(), registered.User.ID)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user.Email != "frank@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.CurrentUser(context.Background(), ""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for empty id, got %v", err)
	}
}
