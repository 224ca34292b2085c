package services

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// maxLogStepAttempts bounds the optimistic retry loop for concurrent
// step logging on the same (goal, date) row.
const maxLogStepAttempts = 3

type GoalService struct {
	goals repository.GoalRepository
	logs  repository.GoalLogRepository
}

func NewGoalService(goals repository.GoalRepository, logs repository.GoalLogRepository) *GoalService {
	return &GoalService{goals: goals, logs: logs}
}

func (s *GoalService) Create(userID uuid.UUID, req models.CreateGoalRequest) (*models.Goal, error) {
	goal := models.Goal{
		UserID:     userID,
		Title:      req.Title,
		Type:       req.Type,
		TotalSteps: req.TotalSteps,
		TargetDate: req.TargetDate,
		Time:       req.Time,
		DaysOfWeek: req.DaysOfWeek,
	}
	if err := validateGoal(&goal); err != nil {
		return nil, err
	}
	goal.DaysOfWeek = goal.DaysOfWeek.Dedupe()
	if err := s.goals.Create(&goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// Update merges the patch into the stored goal and re-validates the
// result, so a patch cannot leave a PUNCTUAL goal without a target
// date.
func (s *GoalService) Update(userID, goalID uuid.UUID, req models.UpdateGoalRequest) (*models.Goal, error) {
	goal, err := s.ownedGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Type != nil {
		goal.Type = *req.Type
	}
	if req.TotalSteps != nil {
		goal.TotalSteps = *req.TotalSteps
	}
	if req.TargetDate != nil {
		goal.TargetDate = req.TargetDate
	}
	if req.Time != nil {
		goal.Time = req.Time
	}
	if req.DaysOfWeek != nil {
		goal.DaysOfWeek = *req.DaysOfWeek
	}

	if err := validateGoal(goal); err != nil {
		return nil, err
	}
	goal.DaysOfWeek = goal.DaysOfWeek.Dedupe()
	if err := s.goals.Save(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Delete(userID, goalID uuid.UUID) error {
	if _, err := s.ownedGoal(userID, goalID); err != nil {
		return err
	}
	return s.goals.Delete(goalID)
}

// GoalsByDate returns the owner's goals active on date, ordered for
// display and annotated with that date's progress. It never creates a
// log row.
func (s *GoalService) GoalsByDate(userID uuid.UUID, date models.Date) ([]models.GoalView, error) {
	all, err := s.goals.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	active := make([]models.Goal, 0, len(all))
	for _, g := range all {
		if ActiveOn(&g, date) {
			active = append(active, g)
		}
	}
	sortForDisplay(active)

	views := make([]models.GoalView, 0, len(active))
	for _, g := range active {
		steps := 0
		log, err := s.logs.Get(g.ID, date)
		if err == nil {
			steps = log.CompletedSteps
		} else if !errors.Is(err, repository.ErrLogNotFound) {
			return nil, err
		}
		views = append(views, models.GoalView{Goal: g, CompletedStepsToday: steps})
	}
	return views, nil
}

// LogStep applies a signed delta to the goal's progress for date,
// clamped to [0, totalSteps]. The log row is materialized on first
// use; concurrent writers are serialized by a compare-and-swap with a
// bounded retry.
func (s *GoalService) LogStep(userID, goalID uuid.UUID, date models.Date, delta int) (*models.GoalView, error) {
	goal, err := s.ownedGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxLogStepAttempts; attempt++ {
		log, err := s.logs.Get(goalID, date)
		if errors.Is(err, repository.ErrLogNotFound) {
			newLog := models.GoalLog{
				GoalID:         goalID,
				Date:           date,
				CompletedSteps: clamp(delta, goal.TotalSteps),
			}
			err = s.logs.Create(&newLog)
			if errors.Is(err, repository.ErrLogConflict) {
				continue // another request materialized the row first
			}
			if err != nil {
				return nil, err
			}
			return &models.GoalView{Goal: *goal, CompletedStepsToday: newLog.CompletedSteps}, nil
		}
		if err != nil {
			return nil, err
		}

		newSteps := clamp(log.CompletedSteps+delta, goal.TotalSteps)
		if newSteps == log.CompletedSteps {
			return &models.GoalView{Goal: *goal, CompletedStepsToday: newSteps}, nil
		}

		err = s.logs.UpdateSteps(log.ID, log.CompletedSteps, newSteps)
		if errors.Is(err, repository.ErrLogConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &models.GoalView{Goal: *goal, CompletedStepsToday: newSteps}, nil
	}

	slog.Warn("step log write conflict not resolved",
		"goalId", goalID, "date", date.String(), "attempts", maxLogStepAttempts)
	return nil, &ConflictError{Message: "progress update conflicted with concurrent requests"}
}

// ownedGoal loads a goal and enforces ownership. Existence is checked
// first, but the authorization error carries no detail about the goal.
func (s *GoalService) ownedGoal(userID, goalID uuid.UUID) (*models.Goal, error) {
	goal, err := s.goals.Get(goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil, &NotFoundError{Resource: "goal"}
	}
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, &AuthorizationError{}
	}
	return goal, nil
}

func clamp(steps, totalSteps int) int {
	if steps < 0 {
		return 0
	}
	if steps > totalSteps {
		return totalSteps
	}
	return steps
}

func validateGoal(g *models.Goal) error {
	if g.Title == "" {
		return &ValidationError{Message: "title is required"}
	}
	if !g.Type.Valid() {
		return &ValidationError{Message: "type must be DAILY or PUNCTUAL"}
	}
	if g.TotalSteps < 1 {
		return &ValidationError{Message: "total steps must be at least 1"}
	}
	if g.Type == models.GoalTypePunctual && (g.TargetDate == nil || g.TargetDate.IsZero()) {
		return &ValidationError{Message: "target date required for punctual goals"}
	}
	for _, d := range g.DaysOfWeek {
		if !d.Valid() {
			return &ValidationError{Message: "invalid day of week: " + string(d)}
		}
	}
	if g.Time != nil {
		if _, err := models.ParseTimeOfDay(g.Time.String()); err != nil {
			return &ValidationError{Message: err.Error()}
		}
	}
	return nil
}
