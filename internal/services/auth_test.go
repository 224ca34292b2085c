package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

type fakeUserStore struct {
	users map[uuid.UUID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]models.User)}
}

func (f *fakeUserStore) Create(u *models.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) Get(id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := u
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) Save(u *models.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrUserNotFound
	}
	f.users[u.ID] = *u
	return nil
}

type fakeTokenStore struct {
	tokens map[string]models.Token
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]models.Token)}
}

func (f *fakeTokenStore) Create(t *models.Token) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	f.tokens[t.Token] = *t
	return nil
}

func (f *fakeTokenStore) Consume(token, tokenType string) (*models.Token, error) {
	t, ok := f.tokens[token]
	if !ok || t.Type != tokenType || t.IsUsed() || t.IsExpired() {
		return nil, repository.ErrTokenNotFound
	}
	now := time.Now()
	t.UsedAt = &now
	f.tokens[token] = t
	copied := t
	return &copied, nil
}

func (f *fakeTokenStore) DeleteByUserAndType(userID uuid.UUID, tokenType string) error {
	for key, t := range f.tokens {
		if t.UserID == userID && t.Type == tokenType && !t.IsUsed() {
			delete(f.tokens, key)
		}
	}
	return nil
}

func (f *fakeTokenStore) lastOfType(tokenType string) string {
	for _, t := range f.tokens {
		if t.Type == tokenType && !t.IsUsed() {
			return t.Token
		}
	}
	return ""
}

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	email := NewEmailService("", "", "http://localhost:3000", true)
	return NewAuthService(users, tokens, email, "test-secret"), users, tokens
}

func register(t *testing.T, s *AuthService) *models.User {
	t.Helper()
	user, err := s.Register(models.RegisterRequest{
		Email: "ana@example.com", Password: "secret1", Name: "Ana",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return user
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	s, _, tokens := newTestAuthService()
	user := register(t, s)

	if user.Enabled {
		t.Error("account must start unverified")
	}

	// Login before verification is rejected.
	_, err := s.Login(models.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	if !errors.Is(err, ErrAccountNotVerified) {
		t.Errorf("login before verify = %v, want ErrAccountNotVerified", err)
	}

	verifyToken := tokens.lastOfType(models.TokenTypeEmailVerify)
	if verifyToken == "" {
		t.Fatal("registration issued no verification token")
	}
	if err := s.Verify(verifyToken); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	resp, err := s.Login(models.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login after verify: %v", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Error("expected access and refresh tokens")
	}
	if resp.User.Password == "secret1" {
		t.Error("password stored unhashed")
	}
}

func TestVerifyTokenIsSingleUse(t *testing.T) {
	s, _, tokens := newTestAuthService()
	register(t, s)

	token := tokens.lastOfType(models.TokenTypeEmailVerify)
	if err := s.Verify(token); err != nil {
		t.Fatalf("first Verify: %v", err)
	}
	err := s.Verify(token)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("second Verify = %v, want ValidationError", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	s, _, _ := newTestAuthService()
	register(t, s)

	_, err := s.Register(models.RegisterRequest{Email: "ana@example.com", Password: "secret2"})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Errorf("duplicate register = %v, want ConflictError", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	s, _, _ := newTestAuthService()

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"missing email", models.RegisterRequest{Password: "secret1"}},
		{"missing password", models.RegisterRequest{Email: "a@b.c"}},
		{"short password", models.RegisterRequest{Email: "a@b.c", Password: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(tt.req)
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	s, _, tokens := newTestAuthService()
	register(t, s)
	if err := s.Verify(tokens.lastOfType(models.TokenTypeEmailVerify)); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	_, err := s.Login(models.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
	_, err = s.Login(models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	s, _, tokens := newTestAuthService()
	register(t, s)
	if err := s.Verify(tokens.lastOfType(models.TokenTypeEmailVerify)); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	resp, err := s.Login(models.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	refreshed, err := s.Refresh(resp.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.RefreshToken == resp.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The consumed token cannot be replayed.
	if _, err := s.Refresh(resp.RefreshToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("replay = %v, want ErrInvalidCredentials", err)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	s, _, tokens := newTestAuthService()
	register(t, s)
	if err := s.Verify(tokens.lastOfType(models.TokenTypeEmailVerify)); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if err := s.ForgotPassword("ana@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	resetToken := tokens.lastOfType(models.TokenTypePasswordReset)
	if resetToken == "" {
		t.Fatal("no reset token issued")
	}

	if err := s.ResetPassword(resetToken, "newsecret"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := s.Login(models.LoginRequest{Email: "ana@example.com", Password: "secret1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password still accepted")
	}
	if _, err := s.Login(models.LoginRequest{Email: "ana@example.com", Password: "newsecret"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	s, _, _ := newTestAuthService()
	err := s.ForgotPassword("nobody@example.com")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestChangePassword(t *testing.T) {
	s, _, tokens := newTestAuthService()
	user := register(t, s)
	if err := s.Verify(tokens.lastOfType(models.TokenTypeEmailVerify)); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	err := s.ChangePassword(user.ID, "wrong", "newsecret")
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("wrong current password = %v, want ValidationError", err)
	}

	if err := s.ChangePassword(user.ID, "secret1", "newsecret"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := s.Login(models.LoginRequest{Email: "ana@example.com", Password: "newsecret"}); err != nil {
		t.Errorf("login with changed password: %v", err)
	}
}
