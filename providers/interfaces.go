package providers

import "time"

// EmailProvider defines the interface for email providers
type EmailProvider interface {
	SendEmail(to, subject, body string, isHTML bool) error
}

// ResetCodeStore defines the interface for the short-lived reset-code storage
type ResetCodeStore interface {
	SaveResetCode(email, code string, ttl time.Duration) error
	GetResetCode(email string) (string, error)
	DeleteResetCode(email string) error
	SaveResetToken(email, token string, ttl time.Duration) error
	GetResetToken(email string) (string, error)
	DeleteResetToken(email string) error
}
