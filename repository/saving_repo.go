package repository

import (
	"errors"

	"gorm.io/gorm"
	"energytrack.app/models"
)

// SavingRepository handles data access operations for savings records
type SavingRepository struct {
	db *gorm.DB
}

// NewSavingRepository creates a new repository for saving data
func NewSavingRepository(db *gorm.DB) *SavingRepository {
	return &SavingRepository{db: db}
}

// FindByID retrieves a saving record, or nil when absent
func (r *SavingRepository) FindByID(id uint) (*models.Saving, error) {
	var saving models.Saving
	result := r.db.First(&saving, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &saving, nil
}

// FindActive retrieves all active saving records, newest period first
func (r *SavingRepository) FindActive() ([]models.Saving, error) {
	var savings []models.Saving
	result := r.db.Where("is_active = ?", true).
		Order("year desc, month desc").Find(&savings)
	if result.Error != nil {
		return nil, result.Error
	}
	return savings, nil
}

// FindActiveByUser retrieves a user's active saving records
func (r *SavingRepository) FindActiveByUser(userID uint) ([]models.Saving, error) {
	var savings []models.Saving
	result := r.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("year desc, month desc").Find(&savings)
	if result.Error != nil {
		return nil, result.Error
	}
	return savings, nil
}

// FindActiveByPeriod looks up the unique active saving record for one
// (user, month, year) period, or nil when absent
func (r *SavingRepository) FindActiveByPeriod(userID uint, month, year int) (*models.Saving, error) {
	var saving models.Saving
	result := r.db.Where("user_id = ? AND month = ? AND year = ? AND is_active = ?",
		userID, month, year, true).First(&saving)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &saving, nil
}

// Create persists a new saving record
func (r *SavingRepository) Create(saving *models.Saving) error {
	return r.db.Create(saving).Error
}

// Save persists changes to an existing saving record
func (r *SavingRepository) Save(saving *models.Saving) error {
	return r.db.Save(saving).Error
}

// Delete removes a saving record permanently
func (r *SavingRepository) Delete(saving *models.Saving) error {
	return r.db.Delete(saving).Error
}
