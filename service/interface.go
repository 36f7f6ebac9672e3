package service

import (
	"energytrack.app/models"
)

// ConsumptionServiceInterface defines operations on the daily ledger
type ConsumptionServiceInterface interface {
	Record(req *models.DailyConsumptionRequest) (*models.DailyConsumption, error)
	Get(id uint) (*models.DailyConsumption, error)
	List() ([]models.DailyConsumption, error)
	ListByUser(userID uint) ([]models.DailyConsumption, error)
	ListByDevice(deviceID uint) ([]models.DailyConsumption, error)
	ListByUserAndDevice(userID, deviceID uint) ([]models.DailyConsumption, error)
	ListByUserAndDate(userID uint, date string) ([]models.DailyConsumption, error)
	Update(id uint, req *models.DailyConsumptionUpdateRequest) (*models.DailyConsumption, error)
	Activate(id uint) (*models.DailyConsumption, error)
	Deactivate(id uint) (*models.DailyConsumption, error)
	Remove(id uint) error
}

// MonthlyServiceInterface defines operations on monthly aggregates
type MonthlyServiceInterface interface {
	Create(req *models.MonthlyConsumptionRequest) (*models.MonthlyConsumption, error)
	Get(id uint) (*models.MonthlyConsumption, error)
	List() ([]models.MonthlyConsumption, error)
	ListByUser(userID uint) ([]models.MonthlyConsumption, error)
	GetByUserAndPeriod(userID uint, month, year int) (*models.MonthlyConsumption, error)
	Update(id uint, req *models.MonthlyConsumptionUpdateRequest) (*models.MonthlyConsumption, error)
	Activate(id uint) (*models.MonthlyConsumption, error)
	Deactivate(id uint) (*models.MonthlyConsumption, error)
	Remove(id uint) error
}

// GoalServiceInterface defines operations on monthly goals
type GoalServiceInterface interface {
	Create(req *models.GoalRequest) (*models.Goal, error)
	Get(id uint) (*models.Goal, error)
	List() ([]models.Goal, error)
	ListByUser(userID uint) ([]models.Goal, error)
	GetByUserAndPeriod(userID uint, month, year int) (*models.Goal, error)
	Update(id uint, req *models.GoalUpdateRequest) (*models.Goal, error)
	Activate(id uint) (*models.Goal, error)
	Deactivate(id uint) (*models.Goal, error)
	Remove(id uint) error
}

// SavingServiceInterface defines operations on savings records
type SavingServiceInterface interface {
	Create(req *models.SavingRequest) (*models.Saving, error)
	Get(id uint) (*models.Saving, error)
	List() ([]models.Saving, error)
	ListByUser(userID uint) ([]models.Saving, error)
	GetByUserAndPeriod(userID uint, month, year int) (*models.Saving, error)
	Recompute(id uint) (*models.Saving, error)
	Activate(id uint) (*models.Saving, error)
	Deactivate(id uint) (*models.Saving, error)
	Remove(id uint) error
}

// NotificationServiceInterface defines operations on the notification store
type NotificationServiceInterface interface {
	Create(req *models.NotificationRequest) (*models.Notification, error)
	CreateAutomatic(userID uint, name, description string) (bool, error)
	Get(id uint) (*models.Notification, error)
	List() ([]models.Notification, error)
	ListByUser(userID uint) ([]models.Notification, error)
	MarkRead(id uint) (*models.Notification, error)
	MarkUnread(id uint) (*models.Notification, error)
	Activate(id uint) (*models.Notification, error)
	Deactivate(id uint) (*models.Notification, error)
	Remove(id uint) error
}

// RuleEngineInterface defines the automatic notification checks
type RuleEngineInterface interface {
	RunLoginChecks(userID uint) error
	RunAllChecksForUser(userID uint) error
	RunDailyChecksForAllUsers() error
	RunWeeklyChecksForAllUsers() error
	RunMonthStartChecksForAllUsers() error
	RunMonthEndChecksForAllUsers() error
	RunAllChecksForAllUsers() error
}

// PasswordResetServiceInterface defines the reset-code flow
type PasswordResetServiceInterface interface {
	RequestReset(email string) error
	VerifyCode(email, code string) (string, error)
	ResetPassword(email, token, newPassword string) error
}

// UserServiceInterface defines catalog operations for users
type UserServiceInterface interface {
	Create(req *models.UserRequest) (*models.User, error)
	Get(id uint) (*models.User, error)
	List() ([]models.User, error)
}
