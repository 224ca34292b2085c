package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalType string

const (
	GoalTypeDaily    GoalType = "DAILY"
	GoalTypePunctual GoalType = "PUNCTUAL"
)

func (t GoalType) Valid() bool {
	return t == GoalTypeDaily || t == GoalTypePunctual
}

type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

var weekdayOf = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

func (w Weekday) Valid() bool {
	switch w {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// WeekdayOf maps a calendar date's weekday onto the wire enum.
func WeekdayOf(d Date) Weekday { return weekdayOf[d.Weekday()] }

// DaysOfWeek is an unordered weekday set. Empty means every day.
// Persisted as a comma-joined text column.
type DaysOfWeek []Weekday

func (s DaysOfWeek) Contains(w Weekday) bool {
	for _, d := range s {
		if d == w {
			return true
		}
	}
	return false
}

// Dedupe drops repeated weekdays, keeping first-seen order.
func (s DaysOfWeek) Dedupe() DaysOfWeek {
	if len(s) < 2 {
		return s
	}
	seen := make(map[Weekday]bool, len(s))
	out := make(DaysOfWeek, 0, len(s))
	for _, d := range s {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

func (s DaysOfWeek) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "", nil
	}
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = string(d)
	}
	return strings.Join(parts, ","), nil
}

func (s *DaysOfWeek) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DaysOfWeek", value)
	}
	if raw == "" {
		*s = nil
		return nil
	}
	parts := strings.Split(raw, ",")
	days := make(DaysOfWeek, 0, len(parts))
	for _, p := range parts {
		days = append(days, Weekday(p))
	}
	*s = days
	return nil
}

func (DaysOfWeek) GormDataType() string { return "text" }

type Goal struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID  `json:"-" gorm:"type:uuid;index;not null"`
	Title      string     `json:"title" gorm:"not null"`
	Type       GoalType   `json:"type" gorm:"not null"`
	TotalSteps int        `json:"totalSteps" gorm:"not null"`
	TargetDate *Date      `json:"targetDate,omitempty"` // only set for PUNCTUAL goals
	Time       *TimeOfDay `json:"time,omitempty"`
	DaysOfWeek DaysOfWeek `json:"daysOfWeek"`
	CreatedAt  time.Time  `json:"createdAt"`
	Logs       []GoalLog  `json:"-" gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Recurrence is the type-discriminated view of a goal's schedule. The
// resolver only ever sees this projection, so a punctual goal cannot be
// matched against a weekday set and vice versa.
type Recurrence interface {
	isRecurrence()
}

// Daily recurs on a weekday set; an empty set means every day.
type Daily struct {
	Days DaysOfWeek
}

// Punctual occurs on exactly one calendar date.
type Punctual struct {
	Date Date
}

func (Daily) isRecurrence()    {}
func (Punctual) isRecurrence() {}

// Recurrence projects the stored row onto its schedule variant. Rows
// that violate the per-type invariant are rejected before persistence,
// so a nil result only shows up for foreign data.
func (g *Goal) Recurrence() Recurrence {
	switch g.Type {
	case GoalTypeDaily:
		return Daily{Days: g.DaysOfWeek}
	case GoalTypePunctual:
		if g.TargetDate == nil {
			return nil
		}
		return Punctual{Date: *g.TargetDate}
	default:
		return nil
	}
}

// Goal DTOs

type CreateGoalRequest struct {
	Title      string     `json:"title"`
	Type       GoalType   `json:"type"`
	TotalSteps int        `json:"totalSteps"`
	TargetDate *Date      `json:"targetDate"`
	Time       *TimeOfDay `json:"time"`
	DaysOfWeek DaysOfWeek `json:"daysOfWeek"`
}

type UpdateGoalRequest struct {
	Title      *string     `json:"title"`
	Type       *GoalType   `json:"type"`
	TotalSteps *int        `json:"totalSteps"`
	TargetDate *Date       `json:"targetDate"`
	Time       *TimeOfDay  `json:"time"`
	DaysOfWeek *DaysOfWeek `json:"daysOfWeek"`
}

type LogStepRequest struct {
	StepDelta int `json:"stepDelta"` // +1 to complete a step, -1 to revert one
}

// GoalView is a goal annotated with progress for a specific date.
type GoalView struct {
	Goal
	CompletedStepsToday int `json:"completedStepsToday"`
}
