package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow-api/internal/models"
	"gorm.io/gorm"
)

var ErrGoalNotFound = errors.New("goal not found")

type GoalRepository interface {
	Create(goal *models.Goal) error
	Get(id uuid.UUID) (*models.Goal, error)
	Save(goal *models.Goal) error
	Delete(id uuid.UUID) error
	FindByUser(userID uuid.UUID) ([]models.Goal, error)
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *models.Goal) error {
	return r.db.Create(goal).Error
}

func (r *goalRepository) Get(id uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.First(&goal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) Save(goal *models.Goal) error {
	return r.db.Save(goal).Error
}

// Delete removes the goal and its logs in one transaction.
func (r *goalRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", id).Delete(&models.GoalLog{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Goal{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrGoalNotFound
		}
		return nil
	})
}

func (r *goalRepository) FindByUser(userID uuid.UUID) ([]models.Goal, error) {
	var goals []models.Goal
	if err := r.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}
