package service

import (
	"fmt"

	"energytrack.app/clock"
	"energytrack.app/config"
	"energytrack.app/errors"
	"energytrack.app/models"
	"energytrack.app/repository"
)

// MonthlyService aggregates the daily ledger into per-month totals. The mode
// is fixed per deployment: derived mode computes totals from the ledger and
// the district fee, reported mode stores caller-supplied totals. The two are
// mutually incompatible for the same record, so they never mix.
type MonthlyService struct {
	monthlyRepo     *repository.MonthlyConsumptionRepository
	consumptionRepo *repository.DailyConsumptionRepository
	userRepo        *repository.UserRepository
	clock           clock.Clock
	mode            string
}

// NewMonthlyService creates a new monthly aggregation service
func NewMonthlyService(
	monthlyRepo *repository.MonthlyConsumptionRepository,
	consumptionRepo *repository.DailyConsumptionRepository,
	userRepo *repository.UserRepository,
	clk clock.Clock,
	mode string,
) *MonthlyService {
	return &MonthlyService{
		monthlyRepo:     monthlyRepo,
		consumptionRepo: consumptionRepo,
		userRepo:        userRepo,
		clock:           clk,
		mode:            mode,
	}
}

// Create records the current period's monthly consumption for a user. The
// period always resolves to "now"; callers cannot target past months.
func (s *MonthlyService) Create(req *models.MonthlyConsumptionRequest) (*models.MonthlyConsumption, error) {
	user, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with ID %d not found", req.UserID))
	}
	if s.mode == config.MonthlyModeDerived && user.District.FeeKWh <= 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("district not found for user with ID %d", req.UserID))
	}

	month, year := s.clock.CurrentPeriod()

	existing, err := s.monthlyRepo.FindActiveByPeriod(req.UserID, month, year)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to check existing monthly record", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError(fmt.Sprintf(
			"a monthly consumption record already exists for user %d for %s %d",
			req.UserID, monthName(month), year))
	}

	record := &models.MonthlyConsumption{
		UserID:   req.UserID,
		Month:    month,
		Year:     year,
		IsActive: true,
	}

	if s.mode == config.MonthlyModeReported {
		if req.KWhTotal == nil || req.KWhCost == nil || req.AmountPaid == nil {
			return nil, errors.NewValidationError(
				"kwh_total, kwh_cost and amount_paid are required in reported mode")
		}
		record.KWhTotal = round2(*req.KWhTotal)
		record.KWhCost = round2(*req.KWhCost)
		record.AmountPaid = round2(*req.AmountPaid)
	} else {
		if err := s.aggregate(record, user.District.FeeKWh); err != nil {
			return nil, err
		}
	}

	if err := s.monthlyRepo.Create(record); err != nil {
		return nil, errors.NewDatabaseError("failed to create monthly record", err)
	}
	return record, nil
}

// aggregate sums the user's active daily records within the record's period
// and derives the cost figures from the district fee
func (s *MonthlyService) aggregate(record *models.MonthlyConsumption, feeKWh float64) error {
	first, last := clock.MonthRange(record.Month, record.Year, s.clock.Today().Location())

	dailies, err := s.consumptionRepo.FindActiveInRange(record.UserID, first, last)
	if err != nil {
		return errors.NewDatabaseError("failed to load daily records", err)
	}

	var total float64
	for _, d := range dailies {
		total += d.EstimatedConsumption
	}

	record.KWhTotal = round2(total)
	record.KWhCost = round2(feeKWh)
	record.AmountPaid = round2(record.KWhTotal * record.KWhCost)
	return nil
}

// Get retrieves a single monthly record
func (s *MonthlyService) Get(id uint) (*models.MonthlyConsumption, error) {
	return s.findExisting(id)
}

// List retrieves all active monthly records
func (s *MonthlyService) List() ([]models.MonthlyConsumption, error) {
	records, err := s.monthlyRepo.FindActive()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list monthly records", err)
	}
	return records, nil
}

// ListByUser retrieves a user's active monthly records
func (s *MonthlyService) ListByUser(userID uint) ([]models.MonthlyConsumption, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	records, err := s.monthlyRepo.FindActiveByUser(userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list monthly records", err)
	}
	return records, nil
}

// GetByUserAndPeriod retrieves the record for one (user, month, year) period
func (s *MonthlyService) GetByUserAndPeriod(userID uint, month, year int) (*models.MonthlyConsumption, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	record, err := s.monthlyRepo.FindActiveByPeriod(userID, month, year)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up monthly record", err)
	}
	if record == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf(
			"no monthly consumption for user %d in %s %d", userID, monthName(month), year))
	}
	return record, nil
}

// Update recalculates a record. In derived mode the stored totals are
// overwritten by re-running the aggregation for the record's own period;
// supplied values are ignored. In reported mode the supplied fields are
// patched.
func (s *MonthlyService) Update(id uint, req *models.MonthlyConsumptionUpdateRequest) (*models.MonthlyConsumption, error) {
	record, err := s.findExisting(id)
	if err != nil {
		return nil, err
	}

	if s.mode == config.MonthlyModeReported {
		if req.KWhTotal != nil {
			record.KWhTotal = round2(*req.KWhTotal)
		}
		if req.KWhCost != nil {
			record.KWhCost = round2(*req.KWhCost)
		}
		if req.AmountPaid != nil {
			record.AmountPaid = round2(*req.AmountPaid)
		}
	} else {
		user, err := s.userRepo.FindByID(record.UserID)
		if err != nil {
			return nil, errors.NewDatabaseError("failed to look up user", err)
		}
		if user == nil {
			return nil, errors.NewNotFoundError(fmt.Sprintf("user with ID %d not found", record.UserID))
		}
		if user.District.FeeKWh <= 0 {
			return nil, errors.NewNotFoundError(fmt.Sprintf("district not found for user with ID %d", record.UserID))
		}
		if err := s.aggregate(record, user.District.FeeKWh); err != nil {
			return nil, err
		}
	}

	if err := s.monthlyRepo.Save(record); err != nil {
		return nil, errors.NewDatabaseError("failed to update monthly record", err)
	}
	return record, nil
}

// Activate re-enables a soft-deleted record
func (s *MonthlyService) Activate(id uint) (*models.MonthlyConsumption, error) {
	return s.setActive(id, true)
}

// Deactivate soft-deletes a record
func (s *MonthlyService) Deactivate(id uint) (*models.MonthlyConsumption, error) {
	return s.setActive(id, false)
}

func (s *MonthlyService) setActive(id uint, active bool) (*models.MonthlyConsumption, error) {
	record, err := s.findExisting(id)
	if err != nil {
		return nil, err
	}
	record.IsActive = active
	if err := s.monthlyRepo.Save(record); err != nil {
		return nil, errors.NewDatabaseError("failed to update monthly record", err)
	}
	return record, nil
}

// Remove permanently deletes a record
func (s *MonthlyService) Remove(id uint) error {
	record, err := s.findExisting(id)
	if err != nil {
		return err
	}
	if err := s.monthlyRepo.Delete(record); err != nil {
		return errors.NewDatabaseError("failed to delete monthly record", err)
	}
	return nil
}

func (s *MonthlyService) findExisting(id uint) (*models.MonthlyConsumption, error) {
	record, err := s.monthlyRepo.FindByID(id)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up monthly record", err)
	}
	if record == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("monthly consumption with ID %d not found", id))
	}
	return record, nil
}

func (s *MonthlyService) requireUser(userID uint) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return errors.NewDatabaseError("failed to look up user", err)
	}
	if user == nil {
		return errors.NewNotFoundError(fmt.Sprintf("user with ID %d not found", userID))
	}
	return nil
}
