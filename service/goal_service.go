package service

import (
	"fmt"
	"log/slog"

	"energytrack.app/clock"
	"energytrack.app/errors"
	"energytrack.app/models"
	"energytrack.app/repository"
)

// ruleRunner triggers a notification re-evaluation pass after goal changes
type ruleRunner interface {
	RunAllChecksForUser(userID uint) error
}

// GoalService manages monthly consumption targets. Exactly one active goal
// may exist per (user, month, year).
type GoalService struct {
	goalRepo *repository.GoalRepository
	userRepo *repository.UserRepository
	clock    clock.Clock
	rules    ruleRunner
}

// NewGoalService creates a new goal tracking service. rules may be nil when
// no rule engine is attached.
func NewGoalService(
	goalRepo *repository.GoalRepository,
	userRepo *repository.UserRepository,
	clk clock.Clock,
	rules ruleRunner,
) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		userRepo: userRepo,
		clock:    clk,
		rules:    rules,
	}
}

// Create sets a goal for a user. The target may be given as kWh or as a
// target cost; the missing figure is derived from the district fee. Month and
// year default to the current period.
func (s *GoalService) Create(req *models.GoalRequest) (*models.Goal, error) {
	if (req.GoalKWh == nil) == (req.EstimatedCost == nil) {
		return nil, errors.NewValidationError("exactly one of goal_kwh or estimated_cost must be provided")
	}

	user, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with ID %d not found", req.UserID))
	}
	if user.District.FeeKWh <= 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("district not found for user with ID %d", req.UserID))
	}

	month, year := s.clock.CurrentPeriod()
	if req.Month != nil {
		month = *req.Month
	}
	if req.Year != nil {
		year = *req.Year
	}

	existing, err := s.goalRepo.FindActiveByPeriod(req.UserID, month, year)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to check existing goal", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError(fmt.Sprintf(
			"an active goal already exists for user %d for %s %d", req.UserID, monthName(month), year))
	}

	goal := &models.Goal{
		UserID:   req.UserID,
		Month:    month,
		Year:     year,
		IsActive: true,
	}

	fee := user.District.FeeKWh
	if req.GoalKWh != nil {
		goal.GoalKWh = round2(*req.GoalKWh)
		goal.EstimatedCost = round2(goal.GoalKWh * fee)
	} else {
		goal.EstimatedCost = round2(*req.EstimatedCost)
		goal.GoalKWh = round2(goal.EstimatedCost / fee)
	}

	if err := s.goalRepo.Create(goal); err != nil {
		return nil, errors.NewDatabaseError("failed to create goal", err)
	}
	return goal, nil
}

// Get retrieves a single goal
func (s *GoalService) Get(id uint) (*models.Goal, error) {
	return s.findExisting(id)
}

// List retrieves all active goals
func (s *GoalService) List() ([]models.Goal, error) {
	goals, err := s.goalRepo.FindActive()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list goals", err)
	}
	return goals, nil
}

// ListByUser retrieves a user's active goals
func (s *GoalService) ListByUser(userID uint) ([]models.Goal, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	goals, err := s.goalRepo.FindActiveByUser(userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list goals", err)
	}
	return goals, nil
}

// GetByUserAndPeriod retrieves the goal for one (user, month, year) period
func (s *GoalService) GetByUserAndPeriod(userID uint, month, year int) (*models.Goal, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	goal, err := s.goalRepo.FindActiveByPeriod(userID, month, year)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up goal", err)
	}
	if goal == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf(
			"no goal for user %d in %s %d", userID, monthName(month), year))
	}
	return goal, nil
}

// Update changes a goal's target. A changed goal_kwh recomputes the estimated
// cost from the current district fee, then re-evaluates the owner's automatic
// notifications since thresholds may now differ.
func (s *GoalService) Update(id uint, req *models.GoalUpdateRequest) (*models.Goal, error) {
	goal, err := s.findExisting(id)
	if err != nil {
		return nil, err
	}

	if req.GoalKWh != nil {
		user, err := s.userRepo.FindByID(goal.UserID)
		if err != nil {
			return nil, errors.NewDatabaseError("failed to look up user", err)
		}
		if user == nil || user.District.FeeKWh <= 0 {
			return nil, errors.NewNotFoundError(fmt.Sprintf("district not found for user with ID %d", goal.UserID))
		}
		goal.GoalKWh = round2(*req.GoalKWh)
		goal.EstimatedCost = round2(goal.GoalKWh * user.District.FeeKWh)
	}

	if err := s.goalRepo.Save(goal); err != nil {
		return nil, errors.NewDatabaseError("failed to update goal", err)
	}

	if s.rules != nil {
		if err := s.rules.RunAllChecksForUser(goal.UserID); err != nil {
			slog.Warn("Notification re-evaluation after goal update failed", "user_id", goal.UserID, "error", err)
		}
	}

	return goal, nil
}

// Activate re-enables a soft-deleted goal. Fails with a conflict if another
// active goal already occupies the same period.
func (s *GoalService) Activate(id uint) (*models.Goal, error) {
	goal, err := s.findExisting(id)
	if err != nil {
		return nil, err
	}

	existing, err := s.goalRepo.FindActiveByPeriod(goal.UserID, goal.Month, goal.Year)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to check existing goal", err)
	}
	if existing != nil && existing.ID != goal.ID {
		return nil, errors.NewConflictError(fmt.Sprintf(
			"an active goal already exists for user %d for %s %d",
			goal.UserID, monthName(goal.Month), goal.Year))
	}

	goal.IsActive = true
	if err := s.goalRepo.Save(goal); err != nil {
		return nil, errors.NewDatabaseError("failed to update goal", err)
	}
	return goal, nil
}

// Deactivate soft-deletes a goal. No replacement is created.
func (s *GoalService) Deactivate(id uint) (*models.Goal, error) {
	goal, err := s.findExisting(id)
	if err != nil {
		return nil, err
	}
	goal.IsActive = false
	if err := s.goalRepo.Save(goal); err != nil {
		return nil, errors.NewDatabaseError("failed to update goal", err)
	}
	return goal, nil
}

// Remove permanently deletes a goal
func (s *GoalService) Remove(id uint) error {
	goal, err := s.findExisting(id)
	if err != nil {
		return err
	}
	if err := s.goalRepo.Delete(goal); err != nil {
		return errors.NewDatabaseError("failed to delete goal", err)
	}
	return nil
}

func (s *GoalService) findExisting(id uint) (*models.Goal, error) {
	goal, err := s.goalRepo.FindByID(id)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up goal", err)
	}
	if goal == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("goal with ID %d not found", id))
	}
	return goal, nil
}

func (s *GoalService) requireUser(userID uint) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return errors.NewDatabaseError("failed to look up user", err)
	}
	if user == nil {
		return errors.NewNotFoundError(fmt.Sprintf("user with ID %d not found", userID))
	}
	return nil
}
