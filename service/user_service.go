package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"energytrack.app/errors"
	"energytrack.app/models"
	"energytrack.app/repository"
)

// UserService handles account registration and lookup
type UserService struct {
	userRepo     *repository.UserRepository
	profileRepo  *repository.ProfileRepository
	districtRepo *repository.DistrictRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo *repository.UserRepository,
	profileRepo *repository.ProfileRepository,
	districtRepo *repository.DistrictRepository,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		districtRepo: districtRepo,
	}
}

// Create registers a new account. The email must be unused and the district
// must exist; a zeroed streak profile is created alongside the user.
func (s *UserService) Create(req *models.UserRequest) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up user", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError(fmt.Sprintf("an account already exists for %s", req.Email))
	}

	district, err := s.districtRepo.FindByID(req.DistrictID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up district", err)
	}
	if district == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("district with ID %d not found", req.DistrictID))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewValidationError("failed to hash password")
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		DistrictID:   req.DistrictID,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, errors.NewDatabaseError("failed to create user", err)
	}

	profile := &models.UserProfile{UserID: user.ID}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, errors.NewDatabaseError("failed to create user profile", err)
	}

	return user, nil
}

// Get retrieves a user with their district loaded
func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with ID %d not found", id))
	}
	return user, nil
}

// List retrieves all active users
func (s *UserService) List() ([]models.User, error) {
	users, err := s.userRepo.FindActive()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list users", err)
	}
	return users, nil
}

// GetProfile retrieves a user's streak profile
func (s *UserService) GetProfile(userID uint) (*models.UserProfile, error) {
	if _, err := s.Get(userID); err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up profile", err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("profile not found for user with ID %d", userID))
	}
	return profile, nil
}
