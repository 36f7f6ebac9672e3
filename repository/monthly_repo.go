package repository

import (
	"errors"

	"gorm.io/gorm"
	"energytrack.app/models"
)

// MonthlyConsumptionRepository handles data access operations for monthly aggregates
type MonthlyConsumptionRepository struct {
	db *gorm.DB
}

// NewMonthlyConsumptionRepository creates a new repository for monthly consumption data
func NewMonthlyConsumptionRepository(db *gorm.DB) *MonthlyConsumptionRepository {
	return &MonthlyConsumptionRepository{db: db}
}

// FindByID retrieves a record, or nil when absent
func (r *MonthlyConsumptionRepository) FindByID(id uint) (*models.MonthlyConsumption, error) {
	var record models.MonthlyConsumption
	result := r.db.First(&record, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &record, nil
}

// FindActive retrieves all active records, newest period first
func (r *MonthlyConsumptionRepository) FindActive() ([]models.MonthlyConsumption, error) {
	var records []models.MonthlyConsumption
	result := r.db.Where("is_active = ?", true).
		Order("year desc, month desc").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

// FindActiveByUser retrieves a user's active records, newest period first
func (r *MonthlyConsumptionRepository) FindActiveByUser(userID uint) ([]models.MonthlyConsumption, error) {
	var records []models.MonthlyConsumption
	result := r.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("year desc, month desc").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

// FindActiveByPeriod looks up the unique active record for one
// (user, month, year) period, or nil when absent
func (r *MonthlyConsumptionRepository) FindActiveByPeriod(userID uint, month, year int) (*models.MonthlyConsumption, error) {
	var record models.MonthlyConsumption
	result := r.db.Where("user_id = ? AND month = ? AND year = ? AND is_active = ?",
		userID, month, year, true).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &record, nil
}

// Create persists a new record
func (r *MonthlyConsumptionRepository) Create(record *models.MonthlyConsumption) error {
	return r.db.Create(record).Error
}

// Save persists changes to an existing record
func (r *MonthlyConsumptionRepository) Save(record *models.MonthlyConsumption) error {
	return r.db.Save(record).Error
}

// Delete removes a record permanently
func (r *MonthlyConsumptionRepository) Delete(record *models.MonthlyConsumption) error {
	return r.db.Delete(record).Error
}
