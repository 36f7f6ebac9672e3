package repository

import (
	"errors"

	"gorm.io/gorm"
	"energytrack.app/models"
)

// GoalRepository handles data access operations for monthly goals
type GoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new repository for goal data
func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// FindByID retrieves a goal, or nil when absent
func (r *GoalRepository) FindByID(id uint) (*models.Goal, error) {
	var goal models.Goal
	result := r.db.First(&goal, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &goal, nil
}

// FindActive retrieves all active goals, newest period first
func (r *GoalRepository) FindActive() ([]models.Goal, error) {
	var goals []models.Goal
	result := r.db.Where("is_active = ?", true).
		Order("year desc, month asc").Find(&goals)
	if result.Error != nil {
		return nil, result.Error
	}
	return goals, nil
}

// FindActiveByUser retrieves a user's active goals
func (r *GoalRepository) FindActiveByUser(userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	result := r.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("year desc, month asc").Find(&goals)
	if result.Error != nil {
		return nil, result.Error
	}
	return goals, nil
}

// FindActiveByPeriod looks up the unique active goal for one
// (user, month, year) period, or nil when absent
func (r *GoalRepository) FindActiveByPeriod(userID uint, month, year int) (*models.Goal, error) {
	var goal models.Goal
	result := r.db.Where("user_id = ? AND month = ? AND year = ? AND is_active = ?",
		userID, month, year, true).First(&goal)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &goal, nil
}

// Create persists a new goal
func (r *GoalRepository) Create(goal *models.Goal) error {
	return r.db.Create(goal).Error
}

// Save persists changes to an existing goal
func (r *GoalRepository) Save(goal *models.Goal) error {
	return r.db.Save(goal).Error
}

// Delete removes a goal permanently
func (r *GoalRepository) Delete(goal *models.Goal) error {
	return r.db.Delete(goal).Error
}
