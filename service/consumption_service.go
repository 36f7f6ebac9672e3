package service

import (
	"fmt"
	"time"

	"energytrack.app/clock"
	"energytrack.app/errors"
	"energytrack.app/models"
	"energytrack.app/repository"
)

// ConsumptionService handles the daily consumption ledger. One record exists
// per (user, device, day); the date is always resolved server-side so callers
// cannot backfill arbitrary days.
type ConsumptionService struct {
	consumptionRepo *repository.DailyConsumptionRepository
	userRepo        *repository.UserRepository
	deviceRepo      *repository.DeviceRepository
	profileRepo     *repository.ProfileRepository
	clock           clock.Clock
}

// NewConsumptionService creates a new consumption ledger service
func NewConsumptionService(
	consumptionRepo *repository.DailyConsumptionRepository,
	userRepo *repository.UserRepository,
	deviceRepo *repository.DeviceRepository,
	profileRepo *repository.ProfileRepository,
	clk clock.Clock,
) *ConsumptionService {
	return &ConsumptionService{
		consumptionRepo: consumptionRepo,
		userRepo:        userRepo,
		deviceRepo:      deviceRepo,
		profileRepo:     profileRepo,
		clock:           clk,
	}
}

// Record creates today's consumption entry for a user and device. The first
// record of a user's day also increments the profile streak counter.
func (s *ConsumptionService) Record(req *models.DailyConsumptionRequest) (*models.DailyConsumption, error) {
	user, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with ID %d not found", req.UserID))
	}

	device, err := s.deviceRepo.FindByID(req.DeviceID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up device", err)
	}
	if device == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("device with ID %d not found", req.DeviceID))
	}

	today := s.clock.Today()

	existing, err := s.consumptionRepo.FindActiveByUserDeviceDate(req.UserID, req.DeviceID, today)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to check existing consumption", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError(fmt.Sprintf(
			"a consumption record already exists for user %d, device %d and date %s",
			req.UserID, req.DeviceID, today.Format("2006-01-02")))
	}

	if err := s.bumpStreakOnFirstRecord(req.UserID, today); err != nil {
		return nil, err
	}

	record := &models.DailyConsumption{
		UserID:               req.UserID,
		DeviceID:             req.DeviceID,
		Date:                 today,
		HoursUse:             req.HoursUse,
		EstimatedConsumption: round2(req.HoursUse * device.ConsumptionKWhH),
		IsActive:             true,
	}

	if err := s.consumptionRepo.Create(record); err != nil {
		return nil, errors.NewDatabaseError("failed to create consumption record", err)
	}

	return record, nil
}

func (s *ConsumptionService) bumpStreakOnFirstRecord(userID uint, day time.Time) error {
	count, err := s.consumptionRepo.CountByUserAndDate(userID, day)
	if err != nil {
		return errors.NewDatabaseError("failed to count today's records", err)
	}
	if count > 0 {
		return nil
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return errors.NewDatabaseError("failed to look up profile", err)
	}
	if profile == nil {
		// Users created before profiles existed have none; start one now.
		if err := s.profileRepo.Create(&models.UserProfile{UserID: userID, Streak: 1}); err != nil {
			return errors.NewDatabaseError("failed to create profile", err)
		}
		return nil
	}

	if err := s.profileRepo.IncrementStreak(userID); err != nil {
		return errors.NewDatabaseError("failed to increment streak", err)
	}
	return nil
}

// Get retrieves a single consumption record
func (s *ConsumptionService) Get(id uint) (*models.DailyConsumption, error) {
	record, err := s.findExisting(id)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// List retrieves all active consumption records
func (s *ConsumptionService) List() ([]models.DailyConsumption, error) {
	records, err := s.consumptionRepo.FindActive()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list consumption records", err)
	}
	return records, nil
}

// ListByUser retrieves a user's active records
func (s *ConsumptionService) ListByUser(userID uint) ([]models.DailyConsumption, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	records, err := s.consumptionRepo.FindActiveByUser(userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list consumption records", err)
	}
	return records, nil
}

// ListByDevice retrieves a device's active records
func (s *ConsumptionService) ListByDevice(deviceID uint) ([]models.DailyConsumption, error) {
	device, err := s.deviceRepo.FindByID(deviceID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up device", err)
	}
	if device == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("device with ID %d not found", deviceID))
	}
	records, err := s.consumptionRepo.FindActiveByDevice(deviceID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list consumption records", err)
	}
	return records, nil
}

// ListByUserAndDevice retrieves active records for one user-device pair
func (s *ConsumptionService) ListByUserAndDevice(userID, deviceID uint) ([]models.DailyConsumption, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	device, err := s.deviceRepo.FindByID(deviceID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up device", err)
	}
	if device == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("device with ID %d not found", deviceID))
	}
	records, err := s.consumptionRepo.FindActiveByUserAndDevice(userID, deviceID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list consumption records", err)
	}
	return records, nil
}

// ListByUserAndDate retrieves a user's active records for one day,
// date given as YYYY-MM-DD
func (s *ConsumptionService) ListByUserAndDate(userID uint, date string) ([]models.DailyConsumption, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation("2006-01-02", date, s.clock.Today().Location())
	if err != nil {
		return nil, errors.NewValidationError("date must be in YYYY-MM-DD format")
	}
	records, err := s.consumptionRepo.FindActiveByUserAndDate(userID, day)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list consumption records", err)
	}
	return records, nil
}

// Update changes the hours of an existing record and recomputes the derived
// consumption from the record's device. User, device and date are immutable.
func (s *ConsumptionService) Update(id uint, req *models.DailyConsumptionUpdateRequest) (*models.DailyConsumption, error) {
	record, err := s.findExisting(id)
	if err != nil {
		return nil, err
	}

	record.HoursUse = req.HoursUse
	record.EstimatedConsumption = round2(req.HoursUse * record.Device.ConsumptionKWhH)

	if err := s.consumptionRepo.Save(record); err != nil {
		return nil, errors.NewDatabaseError("failed to update consumption record", err)
	}
	return record, nil
}

// Activate re-enables a soft-deleted record
func (s *ConsumptionService) Activate(id uint) (*models.DailyConsumption, error) {
	return s.setActive(id, true)
}

// Deactivate soft-deletes a record
func (s *ConsumptionService) Deactivate(id uint) (*models.DailyConsumption, error) {
	return s.setActive(id, false)
}

func (s *ConsumptionService) setActive(id uint, active bool) (*models.DailyConsumption, error) {
	record, err := s.findExisting(id)
	if err != nil {
		return nil, err
	}
	record.IsActive = active
	if err := s.consumptionRepo.Save(record); err != nil {
		return nil, errors.NewDatabaseError("failed to update consumption record", err)
	}
	return record, nil
}

// Remove permanently deletes a record
func (s *ConsumptionService) Remove(id uint) error {
	record, err := s.findExisting(id)
	if err != nil {
		return err
	}
	if err := s.consumptionRepo.Delete(record); err != nil {
		return errors.NewDatabaseError("failed to delete consumption record", err)
	}
	return nil
}

func (s *ConsumptionService) findExisting(id uint) (*models.DailyConsumption, error) {
	record, err := s.consumptionRepo.FindByID(id)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up consumption record", err)
	}
	if record == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("daily consumption with ID %d not found", id))
	}
	return record, nil
}

func (s *ConsumptionService) requireUser(userID uint) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return errors.NewDatabaseError("failed to look up user", err)
	}
	if user == nil {
		return errors.NewNotFoundError(fmt.Sprintf("user with ID %d not found", userID))
	}
	return nil
}
