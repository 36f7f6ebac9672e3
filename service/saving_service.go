package service

import (
	"fmt"

	"energytrack.app/clock"
	"energytrack.app/errors"
	"energytrack.app/models"
	"energytrack.app/repository"
)

// SavingService derives the goal-versus-actual balance for a period. Savings
// cannot exist without a goal; the sign is preserved so an exceeded goal
// yields negative figures.
type SavingService struct {
	savingRepo      *repository.SavingRepository
	goalRepo        *repository.GoalRepository
	consumptionRepo *repository.DailyConsumptionRepository
	userRepo        *repository.UserRepository
	clock           clock.Clock
}

// NewSavingService creates a new savings calculation service
func NewSavingService(
	savingRepo *repository.SavingRepository,
	goalRepo *repository.GoalRepository,
	consumptionRepo *repository.DailyConsumptionRepository,
	userRepo *repository.UserRepository,
	clk clock.Clock,
) *SavingService {
	return &SavingService{
		savingRepo:      savingRepo,
		goalRepo:        goalRepo,
		consumptionRepo: consumptionRepo,
		userRepo:        userRepo,
		clock:           clk,
	}
}

// Create computes and stores savings for the user's current period
func (s *SavingService) Create(req *models.SavingRequest) (*models.Saving, error) {
	user, err := s.findUserWithDistrict(req.UserID)
	if err != nil {
		return nil, err
	}

	month, year := s.clock.CurrentPeriod()

	existing, err := s.savingRepo.FindActiveByPeriod(req.UserID, month, year)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to check existing saving", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError(fmt.Sprintf(
			"a saving record already exists for user %d for %s %d", req.UserID, monthName(month), year))
	}

	saving := &models.Saving{
		UserID:   req.UserID,
		Month:    month,
		Year:     year,
		IsActive: true,
	}

	if err := s.calculate(saving, user.District.FeeKWh); err != nil {
		return nil, err
	}

	if err := s.savingRepo.Create(saving); err != nil {
		return nil, errors.NewDatabaseError("failed to create saving", err)
	}
	return saving, nil
}

// calculate fills savings_kwh and savings_sol for the record's period.
// Requires an active goal; this is a business-rule failure, not a missing
// reference, so it maps to Unprocessable rather than NotFound.
func (s *SavingService) calculate(saving *models.Saving, feeKWh float64) error {
	goal, err := s.goalRepo.FindActiveByPeriod(saving.UserID, saving.Month, saving.Year)
	if err != nil {
		return errors.NewDatabaseError("failed to look up goal", err)
	}
	if goal == nil {
		return errors.NewUnprocessableError(fmt.Sprintf(
			"no active goal for user %d in %s %d; a goal is required to calculate savings",
			saving.UserID, monthName(saving.Month), saving.Year))
	}

	first, last := clock.MonthRange(saving.Month, saving.Year, s.clock.Today().Location())
	dailies, err := s.consumptionRepo.FindActiveInRange(saving.UserID, first, last)
	if err != nil {
		return errors.NewDatabaseError("failed to load daily records", err)
	}

	var total float64
	for _, d := range dailies {
		total += d.EstimatedConsumption
	}

	saving.SavingsKWh = round2(goal.GoalKWh - total)
	saving.SavingsSol = round2(saving.SavingsKWh * feeKWh)
	return nil
}

// Recompute re-runs the calculation for an existing record's own period
func (s *SavingService) Recompute(id uint) (*models.Saving, error) {
	saving, err := s.findExisting(id)
	if err != nil {
		return nil, err
	}

	user, err := s.findUserWithDistrict(saving.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.calculate(saving, user.District.FeeKWh); err != nil {
		return nil, err
	}

	if err := s.savingRepo.Save(saving); err != nil {
		return nil, errors.NewDatabaseError("failed to update saving", err)
	}
	return saving, nil
}

// Get retrieves a single saving record
func (s *SavingService) Get(id uint) (*models.Saving, error) {
	return s.findExisting(id)
}

// List retrieves all active saving records
func (s *SavingService) List() ([]models.Saving, error) {
	savings, err := s.savingRepo.FindActive()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list savings", err)
	}
	return savings, nil
}

// ListByUser retrieves a user's active saving records
func (s *SavingService) ListByUser(userID uint) ([]models.Saving, error) {
	if _, err := s.findUserWithDistrict(userID); err != nil {
		return nil, err
	}
	savings, err := s.savingRepo.FindActiveByUser(userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list savings", err)
	}
	return savings, nil
}

// GetByUserAndPeriod retrieves the record for one (user, month, year) period
func (s *SavingService) GetByUserAndPeriod(userID uint, month, year int) (*models.Saving, error) {
	if _, err := s.findUserWithDistrict(userID); err != nil {
		return nil, err
	}
	saving, err := s.savingRepo.FindActiveByPeriod(userID, month, year)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up saving", err)
	}
	if saving == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf(
			"no saving for user %d in %s %d", userID, monthName(month), year))
	}
	return saving, nil
}

// Activate re-enables a soft-deleted saving record
func (s *SavingService) Activate(id uint) (*models.Saving, error) {
	return s.setActive(id, true)
}

// Deactivate soft-deletes a saving record
func (s *SavingService) Deactivate(id uint) (*models.Saving, error) {
	return s.setActive(id, false)
}

func (s *SavingService) setActive(id uint, active bool) (*models.Saving, error) {
	saving, err := s.findExisting(id)
	if err != nil {
		return nil, err
	}
	saving.IsActive = active
	if err := s.savingRepo.Save(saving); err != nil {
		return nil, errors.NewDatabaseError("failed to update saving", err)
	}
	return saving, nil
}

// Remove permanently deletes a saving record
func (s *SavingService) Remove(id uint) error {
	saving, err := s.findExisting(id)
	if err != nil {
		return err
	}
	if err := s.savingRepo.Delete(saving); err != nil {
		return errors.NewDatabaseError("failed to delete saving", err)
	}
	return nil
}

func (s *SavingService) findExisting(id uint) (*models.Saving, error) {
	saving, err := s.savingRepo.FindByID(id)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up saving", err)
	}
	if saving == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("saving with ID %d not found", id))
	}
	return saving, nil
}

func (s *SavingService) findUserWithDistrict(userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with ID %d not found", userID))
	}
	if user.District.FeeKWh <= 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("district not found for user with ID %d", userID))
	}
	return user, nil
}
