package service

import (
	"fmt"

	"energytrack.app/errors"
	"energytrack.app/models"
	"energytrack.app/repository"
)

// CatalogService manages the district and device reference tables
type CatalogService struct {
	districtRepo *repository.DistrictRepository
	deviceRepo   *repository.DeviceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	districtRepo *repository.DistrictRepository,
	deviceRepo *repository.DeviceRepository,
) *CatalogService {
	return &CatalogService{
		districtRepo: districtRepo,
		deviceRepo:   deviceRepo,
	}
}

// CreateDistrict adds a new district with its per-kWh fee
func (s *CatalogService) CreateDistrict(req *models.DistrictRequest) (*models.District, error) {
	district := &models.District{
		Name:   req.Name,
		FeeKWh: req.FeeKWh,
	}
	if err := s.districtRepo.Create(district); err != nil {
		return nil, errors.NewDatabaseError("failed to create district", err)
	}
	return district, nil
}

// GetDistrict retrieves a single district
func (s *CatalogService) GetDistrict(id uint) (*models.District, error) {
	district, err := s.districtRepo.FindByID(id)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up district", err)
	}
	if district == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("district with ID %d not found", id))
	}
	return district, nil
}

// ListDistricts retrieves all districts
func (s *CatalogService) ListDistricts() ([]models.District, error) {
	districts, err := s.districtRepo.FindAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list districts", err)
	}
	return districts, nil
}

// CreateDevice adds a new device with its consumption rate
func (s *CatalogService) CreateDevice(req *models.DeviceRequest) (*models.Device, error) {
	device := &models.Device{
		Name:            req.Name,
		ConsumptionKWhH: req.ConsumptionKWhH,
	}
	if err := s.deviceRepo.Create(device); err != nil {
		return nil, errors.NewDatabaseError("failed to create device", err)
	}
	return device, nil
}

// GetDevice retrieves a single device
func (s *CatalogService) GetDevice(id uint) (*models.Device, error) {
	device, err := s.deviceRepo.FindByID(id)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up device", err)
	}
	if device == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("device with ID %d not found", id))
	}
	return device, nil
}

// ListDevices retrieves all devices
func (s *CatalogService) ListDevices() ([]models.Device, error) {
	devices, err := s.deviceRepo.FindAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list devices", err)
	}
	return devices, nil
}
