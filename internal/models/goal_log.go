package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GoalLog records progress for one goal on one calendar date. At most
// one row exists per (goal, date); it is created lazily the first time
// a step delta is applied.
type GoalLog struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GoalID         uuid.UUID `json:"goalId" gorm:"type:uuid;not null;uniqueIndex:idx_goal_logs_goal_date"`
	Date           Date      `json:"date" gorm:"not null;uniqueIndex:idx_goal_logs_goal_date"`
	CompletedSteps int       `json:"completedSteps" gorm:"not null;default:0"`
}

func (l *GoalLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
