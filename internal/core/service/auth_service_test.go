package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hairbook/booking-api/internal/core/domain"
	"github.com/hairbook/booking-api/internal/core/ports"
)

func newAuthSvc(repo *stubUserRepo) (*AuthService, *TokenManager) {
	tokens := NewTokenManager("secret", time.Hour)
	return NewAuthService(repo, NewBcryptHasher(), tokens, discardLogger), tokens
}

func anaInput() ports.RegisterInput {
	return ports.RegisterInput{Name: "Ana", Email: "ana@x.com", Phone: "555", Password: "pw"}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(repo)

	user, err := svc.Register(context.Background(), anaInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil || user.ID == "" {
		t.Fatalf("expected created user with ID, got %+v", user)
	}
	if user.PasswordHash == "pw" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(repo)

	cases := []func(*ports.RegisterInput){
		func(in *ports.RegisterInput) { in.Name = "" },
		func(in *ports.RegisterInput) { in.Email = "" },
		func(in *ports.RegisterInput) { in.Phone = " " },
		func(in *ports.RegisterInput) { in.Password = "" },
	}
	for i, mutate := range cases {
		in := anaInput()
		mutate(&in)
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
	if len(repo.byEmail) != 0 {
		t.Fatalf("invalid registrations must not persist, got %d users", len(repo.byEmail))
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(repo)

	if _, err := svc.Register(context.Background(), anaInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	again := anaInput()
	again.Email = " ANA@x.com"
	if _, err := svc.Register(context.Background(), again); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_StoreUniqueIndexIsDuplicate(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = domain.ErrEmailTaken // lost the race against a concurrent insert
	svc, _ := newAuthSvc(repo)

	if _, err := svc.Register(context.Background(), anaInput()); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_StoreError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("mongo unavailable")
	svc, _ := newAuthSvc(repo)

	_, err := svc.Register(context.Background(), anaInput())
	if err == nil || errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newAuthSvc(repo)

	registered, err := svc.Register(context.Background(), anaInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "Ana@X.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Email != "ana@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.UserID != registered.ID || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(repo)

	if _, err := svc.Register(context.Background(), anaInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPwd := svc.Login(context.Background(), "ana@x.com", "bad")
	_, _, unknown := svc.Login(context.Background(), "ghost@x.com", "pw")

	if wrongPwd != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPwd)
	}
	if unknown != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc, _ := newAuthSvc(newStubUserRepo())

	if _, _, err := svc.Login(context.Background(), "", "pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ana@x.com", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("mongo unavailable")
	svc, _ := newAuthSvc(repo)

	_, _, err := svc.Login(context.Background(), "ana@x.com", "pw")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failures must not look like bad credentials, got %v", err)
	}
}
