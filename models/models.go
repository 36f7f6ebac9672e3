// Package models defines data structures used throughout the application
package models

import (
	"time"
)

// District represents an administrative area that sets the per-kWh fee
type District struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	FeeKWh    float64   `json:"fee_kwh" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Device represents an appliance with a fixed consumption rate
type Device struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	ConsumptionKWhH float64   `json:"consumption_kwh_h" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// User represents a registered household account
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	DistrictID   uint      `json:"district_id" gorm:"index;not null"`
	District     District  `json:"-" gorm:"foreignKey:DistrictID"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserProfile carries gamification state attached to a user
type UserProfile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Streak    int       `json:"streak" gorm:"default:0"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DailyConsumption represents one device's usage for one user on one day.
// EstimatedConsumption is always derived from hours and the device rate.
type DailyConsumption struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	UserID               uint      `json:"user_id" gorm:"index;not null"`
	DeviceID             uint      `json:"device_id" gorm:"index;not null"`
	Device               Device    `json:"-" gorm:"foreignKey:DeviceID"`
	Date                 time.Time `json:"date" gorm:"index;not null"`
	HoursUse             float64   `json:"hours_use" gorm:"not null"`
	EstimatedConsumption float64   `json:"estimated_consumption" gorm:"not null"`
	IsActive             bool      `json:"is_active" gorm:"default:true"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// MonthlyConsumption represents aggregated consumption for one calendar month
type MonthlyConsumption struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	Month      int       `json:"month" gorm:"not null"`
	Year       int       `json:"year" gorm:"not null"`
	KWhTotal   float64   `json:"kwh_total"`
	KWhCost    float64   `json:"kwh_cost"`
	AmountPaid float64   `json:"amount_paid"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Goal represents a monthly consumption target
type Goal struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	Month         int       `json:"month" gorm:"not null"`
	Year          int       `json:"year" gorm:"not null"`
	GoalKWh       float64   `json:"goal_kwh" gorm:"not null"`
	EstimatedCost float64   `json:"estimated_cost"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Saving represents the goal-versus-actual balance for a closed period.
// A negative SavingsKWh means the goal was exceeded.
type Saving struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	Month      int       `json:"month" gorm:"not null"`
	Year       int       `json:"year" gorm:"not null"`
	SavingsKWh float64   `json:"savings_kwh"`
	SavingsSol float64   `json:"savings_sol"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Notification represents a message delivered to a user
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	WasRead     bool      `json:"was_read" gorm:"default:false"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

// DistrictRequest represents data required to create a district
type DistrictRequest struct {
	Name   string  `json:"name" binding:"required"`
	FeeKWh float64 `json:"fee_kwh" binding:"required,gt=0"`
}

// DeviceRequest represents data required to create a device
type DeviceRequest struct {
	Name            string  `json:"name" binding:"required"`
	ConsumptionKWhH float64 `json:"consumption_kwh_h" binding:"required,gt=0"`
}

// UserRequest represents data required to register a user
type UserRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
	DistrictID uint   `json:"district_id" binding:"required"`
}

// DailyConsumptionRequest represents data required to record a day's usage.
// The date is always resolved server-side to today in the configured timezone.
type DailyConsumptionRequest struct {
	UserID   uint    `json:"user_id" binding:"required"`
	DeviceID uint    `json:"device_id" binding:"required"`
	HoursUse float64 `json:"hours_use" binding:"required,gt=0,lte=24"`
}

// DailyConsumptionUpdateRequest updates the hours of an existing record
type DailyConsumptionUpdateRequest struct {
	HoursUse float64 `json:"hours_use" binding:"required,gt=0,lte=24"`
}

// MonthlyConsumptionRequest creates a monthly record for the current period.
// The three totals are only honored in reported mode; derived mode computes
// them from the daily ledger.
type MonthlyConsumptionRequest struct {
	UserID     uint     `json:"user_id" binding:"required"`
	KWhTotal   *float64 `json:"kwh_total" binding:"omitempty,gte=0"`
	KWhCost    *float64 `json:"kwh_cost" binding:"omitempty,gte=0"`
	AmountPaid *float64 `json:"amount_paid" binding:"omitempty,gte=0"`
}

// MonthlyConsumptionUpdateRequest patches reported totals (reported mode only)
type MonthlyConsumptionUpdateRequest struct {
	KWhTotal   *float64 `json:"kwh_total" binding:"omitempty,gte=0"`
	KWhCost    *float64 `json:"kwh_cost" binding:"omitempty,gte=0"`
	AmountPaid *float64 `json:"amount_paid" binding:"omitempty,gte=0"`
}

// GoalRequest represents data required to set a goal. Exactly one of
// goal_kwh or estimated_cost must be provided; the other is derived from
// the user's district fee. Month and year default to the current period.
type GoalRequest struct {
	UserID        uint     `json:"user_id" binding:"required"`
	GoalKWh       *float64 `json:"goal_kwh" binding:"omitempty,gt=0"`
	EstimatedCost *float64 `json:"estimated_cost" binding:"omitempty,gt=0"`
	Month         *int     `json:"month" binding:"omitempty,min=1,max=12"`
	Year          *int     `json:"year" binding:"omitempty,min=2000"`
}

// GoalUpdateRequest patches an existing goal
type GoalUpdateRequest struct {
	GoalKWh *float64 `json:"goal_kwh" binding:"omitempty,gt=0"`
}

// SavingRequest computes savings for the user's current period
type SavingRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// NotificationRequest creates a manual notification
type NotificationRequest struct {
	UserID      uint   `json:"user_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// ForgotPasswordRequest starts the password-reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyResetCodeRequest checks an emailed reset code
type VerifyResetCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// ResetPasswordRequest completes the reset using a verified token
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a simple confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}
