package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"energytrack.app/models"
)

// NotificationRepository handles data access operations for notifications
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new repository for notification data
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// FindByID retrieves a notification, or nil when absent
func (r *NotificationRepository) FindByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	result := r.db.First(&notification, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &notification, nil
}

// FindAll retrieves all notifications, newest first
func (r *NotificationRepository) FindAll() ([]models.Notification, error) {
	var notifications []models.Notification
	result := r.db.Order("created_at desc").Find(&notifications)
	if result.Error != nil {
		return nil, result.Error
	}
	return notifications, nil
}

// FindByUser retrieves a user's notifications, newest first
func (r *NotificationRepository) FindByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	result := r.db.Where("user_id = ?", userID).
		Order("created_at desc").Find(&notifications)
	if result.Error != nil {
		return nil, result.Error
	}
	return notifications, nil
}

// FindActiveByNameSince looks up an active notification with the exact
// rule-generated name created at or after the given instant. Used for
// same-day deduplication.
func (r *NotificationRepository) FindActiveByNameSince(userID uint, name string, since time.Time) (*models.Notification, error) {
	var notification models.Notification
	result := r.db.Where("user_id = ? AND name = ? AND created_at >= ? AND is_active = ?",
		userID, name, since, true).First(&notification)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &notification, nil
}

// Create persists a new notification
func (r *NotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// Save persists changes to an existing notification
func (r *NotificationRepository) Save(notification *models.Notification) error {
	return r.db.Save(notification).Error
}

// Delete removes a notification permanently
func (r *NotificationRepository) Delete(notification *models.Notification) error {
	return r.db.Delete(notification).Error
}
