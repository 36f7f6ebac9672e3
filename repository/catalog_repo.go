package repository

import (
	"errors"

	"gorm.io/gorm"
	"energytrack.app/models"
)

// DistrictRepository handles data access operations for districts
type DistrictRepository struct {
	db *gorm.DB
}

// NewDistrictRepository creates a new repository for district data
func NewDistrictRepository(db *gorm.DB) *DistrictRepository {
	return &DistrictRepository{db: db}
}

// FindByID retrieves a district, or nil when absent
func (r *DistrictRepository) FindByID(id uint) (*models.District, error) {
	var district models.District
	result := r.db.First(&district, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &district, nil
}

// FindAll retrieves all districts
func (r *DistrictRepository) FindAll() ([]models.District, error) {
	var districts []models.District
	result := r.db.Order("name").Find(&districts)
	if result.Error != nil {
		return nil, result.Error
	}
	return districts, nil
}

// Create persists a new district
func (r *DistrictRepository) Create(district *models.District) error {
	return r.db.Create(district).Error
}

// DeviceRepository handles data access operations for devices
type DeviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository creates a new repository for device data
func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// FindByID retrieves a device, or nil when absent
func (r *DeviceRepository) FindByID(id uint) (*models.Device, error) {
	var device models.Device
	result := r.db.First(&device, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &device, nil
}

// FindAll retrieves all devices
func (r *DeviceRepository) FindAll() ([]models.Device, error) {
	var devices []models.Device
	result := r.db.Order("name").Find(&devices)
	if result.Error != nil {
		return nil, result.Error
	}
	return devices, nil
}

// Create persists a new device
func (r *DeviceRepository) Create(device *models.Device) error {
	return r.db.Create(device).Error
}
