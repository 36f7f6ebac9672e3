package service

import (
	"fmt"

	"energytrack.app/clock"
	"energytrack.app/errors"
	"energytrack.app/models"
	"energytrack.app/repository"
)

// NotificationService manages the notification store. Automatic inserts are
// deduplicated per (user, name) within the local calendar day.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	userRepo         *repository.UserRepository
	clock            clock.Clock
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
	clk clock.Clock,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		clock:            clk,
	}
}

// Create inserts a manual notification
func (s *NotificationService) Create(req *models.NotificationRequest) (*models.Notification, error) {
	if err := s.requireUser(req.UserID); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, errors.NewDatabaseError("failed to create notification", err)
	}
	return notification, nil
}

// CreateAutomatic inserts a rule-generated notification unless an active one
// with the same name was already created for the user today. Returns whether
// a row was inserted.
func (s *NotificationService) CreateAutomatic(userID uint, name, description string) (bool, error) {
	dayStart := s.clock.Today()

	duplicate, err := s.notificationRepo.FindActiveByNameSince(userID, name, dayStart)
	if err != nil {
		return false, errors.NewDatabaseError("failed to check duplicate notification", err)
	}
	if duplicate != nil {
		return false, nil
	}

	notification := &models.Notification{
		UserID:      userID,
		Name:        name,
		Description: description,
		IsActive:    true,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return false, errors.NewDatabaseError("failed to create notification", err)
	}
	return true, nil
}

// Get retrieves a single notification
func (s *NotificationService) Get(id uint) (*models.Notification, error) {
	return s.findExisting(id)
}

// List retrieves all notifications, newest first
func (s *NotificationService) List() ([]models.Notification, error) {
	notifications, err := s.notificationRepo.FindAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list notifications", err)
	}
	return notifications, nil
}

// ListByUser retrieves a user's notifications, newest first
func (s *NotificationService) ListByUser(userID uint) ([]models.Notification, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	notifications, err := s.notificationRepo.FindByUser(userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list notifications", err)
	}
	return notifications, nil
}

// MarkRead flags a notification as read
func (s *NotificationService) MarkRead(id uint) (*models.Notification, error) {
	return s.setRead(id, true)
}

// MarkUnread flags a notification as unread
func (s *NotificationService) MarkUnread(id uint) (*models.Notification, error) {
	return s.setRead(id, false)
}

func (s *NotificationService) setRead(id uint, read bool) (*models.Notification, error) {
	notification, err := s.findExisting(id)
	if err != nil {
		return nil, err
	}
	notification.WasRead = read
	if err := s.notificationRepo.Save(notification); err != nil {
		return nil, errors.NewDatabaseError("failed to update notification", err)
	}
	return notification, nil
}

// Activate re-enables a soft-deleted notification
func (s *NotificationService) Activate(id uint) (*models.Notification, error) {
	return s.setActive(id, true)
}

// Deactivate soft-deletes a notification
func (s *NotificationService) Deactivate(id uint) (*models.Notification, error) {
	return s.setActive(id, false)
}

func (s *NotificationService) setActive(id uint, active bool) (*models.Notification, error) {
	notification, err := s.findExisting(id)
	if err != nil {
		return nil, err
	}
	notification.IsActive = active
	if err := s.notificationRepo.Save(notification); err != nil {
		return nil, errors.NewDatabaseError("failed to update notification", err)
	}
	return notification, nil
}

// Remove permanently deletes a notification
func (s *NotificationService) Remove(id uint) error {
	notification, err := s.findExisting(id)
	if err != nil {
		return err
	}
	if err := s.notificationRepo.Delete(notification); err != nil {
		return errors.NewDatabaseError("failed to delete notification", err)
	}
	return nil
}

func (s *NotificationService) findExisting(id uint) (*models.Notification, error) {
	notification, err := s.notificationRepo.FindByID(id)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to look up notification", err)
	}
	if notification == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("notification with ID %d not found", id))
	}
	return notification, nil
}

func (s *NotificationService) requireUser(userID uint) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return errors.NewDatabaseError("failed to look up user", err)
	}
	if user == nil {
		return errors.NewNotFoundError(fmt.Sprintf("user with ID %d not found", userID))
	}
	return nil
}
