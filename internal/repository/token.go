package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow-api/internal/models"
	"gorm.io/gorm"
)

var ErrTokenNotFound = errors.New("token not found")

type TokenRepository interface {
	Create(token *models.Token) error
	// Consume atomically marks a live token as used and returns it.
	// Of two racing requests only one succeeds; the other sees
	// ErrTokenNotFound, as do expired and already-used tokens.
	Consume(token, tokenType string) (*models.Token, error)
	DeleteByUserAndType(userID uuid.UUID, tokenType string) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(token *models.Token) error {
	return r.db.Create(token).Error
}

func (r *tokenRepository) Consume(token, tokenType string) (*models.Token, error) {
	now := time.Now()
	res := r.db.Model(&models.Token{}).
		Where("token = ? AND type = ? AND used_at IS NULL AND expires_at > ?", token, tokenType, now).
		Update("used_at", now)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrTokenNotFound
	}

	var t models.Token
	if err := r.db.First(&t, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tokenRepository) DeleteByUserAndType(userID uuid.UUID, tokenType string) error {
	return r.db.Where("user_id = ? AND type = ? AND used_at IS NULL", userID, tokenType).
		Delete(&models.Token{}).Error
}
