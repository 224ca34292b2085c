package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	verifyTokenTTL  = 24 * time.Hour
	resetTokenTTL   = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	users     repository.UserRepository
	tokens    repository.TokenRepository
	email     *EmailService
	jwtSecret string
}

func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository, email *EmailService, jwtSecret string) *AuthService {
	return &AuthService{users: users, tokens: tokens, email: email, jwtSecret: jwtSecret}
}

// Register creates an unverified account and emails a verification
// link valid for 24 hours.
func (s *AuthService) Register(req models.RegisterRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, &ValidationError{Message: "email and password are required"}
	}
	if len(req.Password) < 6 {
		return nil, &ValidationError{Message: "password must be at least 6 characters"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
		Enabled:  false,
	}
	if err := s.users.Create(&user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, &ConflictError{Message: "email already registered"}
		}
		return nil, err
	}

	token, err := s.issueToken(user.ID, models.TokenTypeEmailVerify, verifyTokenTTL)
	if err != nil {
		return nil, err
	}
	if err := s.email.SendVerificationEmail(user.Email, token); err != nil {
		return nil, err
	}
	return &user, nil
}

// Verify consumes an emailed verification token and enables the
// account.
func (s *AuthService) Verify(token string) error {
	t, err := s.tokens.Consume(token, models.TokenTypeEmailVerify)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return &ValidationError{Message: "invalid or expired verification token"}
	}
	if err != nil {
		return err
	}

	user, err := s.users.Get(t.UserID)
	if err != nil {
		return err
	}
	user.Enabled = true
	return s.users.Save(user)
}

// Login checks credentials and returns an access JWT plus a fresh
// refresh token. Existing refresh tokens are revoked first.
func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, ErrAccountNotVerified
	}

	if err := s.tokens.DeleteByUserAndType(user.ID, models.TokenTypeRefresh); err != nil {
		return nil, err
	}
	refresh, err := s.issueToken(user.ID, models.TokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	jwt, err := middleware.GenerateToken(s.jwtSecret, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: jwt, RefreshToken: refresh, User: *user}, nil
}

// Refresh rotates a refresh token: the presented one is consumed and a
// new pair is returned.
func (s *AuthService) Refresh(refreshToken string) (*models.TokenRefreshResponse, error) {
	t, err := s.tokens.Consume(refreshToken, models.TokenTypeRefresh)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	user, err := s.users.Get(t.UserID)
	if err != nil {
		return nil, err
	}

	refresh, err := s.issueToken(user.ID, models.TokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	jwt, err := middleware.GenerateToken(s.jwtSecret, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &models.TokenRefreshResponse{Token: jwt, RefreshToken: refresh}, nil
}

// ForgotPassword emails a single-use reset link valid for one hour.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.users.GetByEmail(email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return &NotFoundError{Resource: "account"}
	}
	if err != nil {
		return err
	}

	if err := s.tokens.DeleteByUserAndType(user.ID, models.TokenTypePasswordReset); err != nil {
		return err
	}
	token, err := s.issueToken(user.ID, models.TokenTypePasswordReset, resetTokenTTL)
	if err != nil {
		return err
	}
	return s.email.SendPasswordResetEmail(user.Email, token)
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 6 {
		return &ValidationError{Message: "password must be at least 6 characters"}
	}

	t, err := s.tokens.Consume(token, models.TokenTypePasswordReset)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return &ValidationError{Message: "invalid or expired reset token"}
	}
	if err != nil {
		return err
	}

	user, err := s.users.Get(t.UserID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.users.Save(user)
}

func (s *AuthService) ChangePassword(userID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return &ValidationError{Message: "password must be at least 6 characters"}
	}

	user, err := s.users.Get(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return &ValidationError{Message: "current password is incorrect"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.users.Save(user)
}

func (s *AuthService) User(userID uuid.UUID) (*models.User, error) {
	user, err := s.users.Get(userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, &NotFoundError{Resource: "account"}
	}
	return user, err
}

func (s *AuthService) issueToken(userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	token := models.Token{
		UserID:    userID,
		Type:      tokenType,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.tokens.Create(&token); err != nil {
		return "", err
	}
	return token.Token, nil
}
