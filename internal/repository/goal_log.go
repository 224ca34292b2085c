package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrLogNotFound = errors.New("goal log not found")
	// ErrLogConflict signals a lost write race on a (goal, date) row:
	// either another request inserted the row first, or the
	// compare-and-swap saw a stale step count.
	ErrLogConflict = errors.New("goal log write conflict")
)

type GoalLogRepository interface {
	Get(goalID uuid.UUID, date models.Date) (*models.GoalLog, error)
	Create(log *models.GoalLog) error
	// UpdateSteps writes toSteps only if the row still holds fromSteps.
	UpdateSteps(id uuid.UUID, fromSteps, toSteps int) error
}

type goalLogRepository struct {
	db *gorm.DB
}

func NewGoalLogRepository(db *gorm.DB) GoalLogRepository {
	return &goalLogRepository{db: db}
}

func (r *goalLogRepository) Get(goalID uuid.UUID, date models.Date) (*models.GoalLog, error) {
	var log models.GoalLog
	err := r.db.Where("goal_id = ? AND date = ?", goalID, date).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLogNotFound
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// Create inserts the first log row for a (goal, date) pair. The unique
// index makes concurrent first inserts first-writer-wins; losers get
// ErrLogConflict and are expected to re-read.
func (r *goalLogRepository) Create(log *models.GoalLog) error {
	err := r.db.Create(log).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrLogConflict
	}
	return err
}

func (r *goalLogRepository) UpdateSteps(id uuid.UUID, fromSteps, toSteps int) error {
	res := r.db.Model(&models.GoalLog{}).
		Where("id = ? AND completed_steps = ?", id, fromSteps).
		Update("completed_steps", toSteps)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLogConflict
	}
	return nil
}
