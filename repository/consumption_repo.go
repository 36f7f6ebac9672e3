package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"energytrack.app/models"
)

// DailyConsumptionRepository handles data access operations for the daily ledger
type DailyConsumptionRepository struct {
	db *gorm.DB
}

// NewDailyConsumptionRepository creates a new repository for daily consumption data
func NewDailyConsumptionRepository(db *gorm.DB) *DailyConsumptionRepository {
	return &DailyConsumptionRepository{db: db}
}

// FindByID retrieves a record with its device, or nil when absent
func (r *DailyConsumptionRepository) FindByID(id uint) (*models.DailyConsumption, error) {
	var record models.DailyConsumption
	result := r.db.Preload("Device").First(&record, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &record, nil
}

// FindActive retrieves all active records, newest first
func (r *DailyConsumptionRepository) FindActive() ([]models.DailyConsumption, error) {
	var records []models.DailyConsumption
	result := r.db.Where("is_active = ?", true).Order("date desc").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

// FindActiveByUserDeviceDate looks up the unique active row for one
// (user, device, day) combination, or nil when absent
func (r *DailyConsumptionRepository) FindActiveByUserDeviceDate(userID, deviceID uint, date time.Time) (*models.DailyConsumption, error) {
	var record models.DailyConsumption
	result := r.db.Where("user_id = ? AND device_id = ? AND date = ? AND is_active = ?",
		userID, deviceID, date, true).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &record, nil
}

// CountByUserAndDate counts all records (active or not) for a user's day
func (r *DailyConsumptionRepository) CountByUserAndDate(userID uint, date time.Time) (int64, error) {
	var count int64
	result := r.db.Model(&models.DailyConsumption{}).
		Where("user_id = ? AND date = ?", userID, date).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// FindActiveByUser retrieves a user's active records, newest first
func (r *DailyConsumptionRepository) FindActiveByUser(userID uint) ([]models.DailyConsumption, error) {
	var records []models.DailyConsumption
	result := r.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("date desc").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

// FindActiveByDevice retrieves a device's active records, newest first
func (r *DailyConsumptionRepository) FindActiveByDevice(deviceID uint) ([]models.DailyConsumption, error) {
	var records []models.DailyConsumption
	result := r.db.Where("device_id = ? AND is_active = ?", deviceID, true).
		Order("date desc").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

// FindActiveByUserAndDevice retrieves active records for one user-device pair
func (r *DailyConsumptionRepository) FindActiveByUserAndDevice(userID, deviceID uint) ([]models.DailyConsumption, error) {
	var records []models.DailyConsumption
	result := r.db.Where("user_id = ? AND device_id = ? AND is_active = ?", userID, deviceID, true).
		Order("date desc").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

// FindActiveByUserAndDate retrieves a user's active records for one day
func (r *DailyConsumptionRepository) FindActiveByUserAndDate(userID uint, date time.Time) ([]models.DailyConsumption, error) {
	var records []models.DailyConsumption
	result := r.db.Where("user_id = ? AND date = ? AND is_active = ?", userID, date, true).
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

// FindActiveInRange retrieves a user's active records dated within
// [from, to] inclusive, both at day granularity
func (r *DailyConsumptionRepository) FindActiveInRange(userID uint, from, to time.Time) ([]models.DailyConsumption, error) {
	var records []models.DailyConsumption
	result := r.db.Where("user_id = ? AND date >= ? AND date <= ? AND is_active = ?",
		userID, from, to, true).Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

// Create persists a new record
func (r *DailyConsumptionRepository) Create(record *models.DailyConsumption) error {
	return r.db.Create(record).Error
}

// Save persists changes to an existing record
func (r *DailyConsumptionRepository) Save(record *models.DailyConsumption) error {
	return r.db.Save(record).Error
}

// Delete removes a record permanently
func (r *DailyConsumptionRepository) Delete(record *models.DailyConsumption) error {
	return r.db.Delete(record).Error
}
