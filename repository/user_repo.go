// Package repository implements data access layer for the application
package repository

import (
	"errors"

	"gorm.io/gorm"
	"energytrack.app/models"
)

// UserRepository handles data access operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository for user data
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID retrieves a user with its district, or nil when absent
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.Preload("District").First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// FindByEmail retrieves a user by email, or nil when absent
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// FindActive retrieves all active users
func (r *UserRepository) FindActive() ([]models.User, error) {
	var users []models.User
	result := r.db.Where("is_active = ?", true).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// Create persists a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(id uint, passwordHash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// ProfileRepository handles data access operations for user profiles
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new repository for profile data
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByUserID retrieves a user's profile, or nil when absent
func (r *ProfileRepository) FindByUserID(userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	result := r.db.Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &profile, nil
}

// Create persists a new profile
func (r *ProfileRepository) Create(profile *models.UserProfile) error {
	return r.db.Create(profile).Error
}

// IncrementStreak adds one to the user's streak counter
func (r *ProfileRepository) IncrementStreak(userID uint) error {
	return r.db.Model(&models.UserProfile{}).Where("user_id = ?", userID).
		Update("streak", gorm.Expr("streak + 1")).Error
}
