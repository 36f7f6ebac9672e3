package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"energytrack.app/errors"
	"energytrack.app/providers"
	"energytrack.app/repository"
)

const (
	resetCodeTTL  = 10 * time.Minute
	resetTokenTTL = 30 * time.Minute
)

// PasswordResetService runs the three-step reset flow: a 6-digit code is
// mailed and held in Redis, verifying it yields a short-lived opaque token,
// and the token authorizes exactly one password change.
type PasswordResetService struct {
	userRepo *repository.UserRepository
	store    providers.ResetCodeStore
	email    *EmailService
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(
	userRepo *repository.UserRepository,
	store providers.ResetCodeStore,
	email *EmailService,
) *PasswordResetService {
	return &PasswordResetService{
		userRepo: userRepo,
		store:    store,
		email:    email,
	}
}

// RequestReset generates a reset code and mails it. An unknown email returns
// NotFound; callers presenting the error to end users may choose to mask it.
func (s *PasswordResetService) RequestReset(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return errors.NewDatabaseError("failed to look up user", err)
	}
	if user == nil {
		return errors.NewNotFoundError(fmt.Sprintf("no account registered for %s", email))
	}

	code := fmt.Sprintf("%06d", rand.Intn(900000)+100000)
	if err := s.store.SaveResetCode(email, code, resetCodeTTL); err != nil {
		return err
	}

	if err := s.email.SendResetCodeEmail(email, code); err != nil {
		return err
	}

	return nil
}

// VerifyCode checks the mailed code and, on success, returns a one-time token
// for the final reset call. The code is consumed whether or not the token is
// ever used.
func (s *PasswordResetService) VerifyCode(email, code string) (string, error) {
	stored, err := s.store.GetResetCode(email)
	if err != nil {
		return "", err
	}
	if stored == "" || stored != code {
		return "", errors.NewValidationError("invalid or expired reset code")
	}

	token := uuid.New().String()
	if err := s.store.SaveResetToken(email, token, resetTokenTTL); err != nil {
		return "", err
	}
	if err := s.store.DeleteResetCode(email); err != nil {
		return "", err
	}

	return token, nil
}

// ResetPassword sets a new password for the account the token was issued to
func (s *PasswordResetService) ResetPassword(email, token, newPassword string) error {
	stored, err := s.store.GetResetToken(email)
	if err != nil {
		return err
	}
	if stored == "" || stored != token {
		return errors.NewValidationError("invalid or expired reset token")
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return errors.NewDatabaseError("failed to look up user", err)
	}
	if user == nil {
		return errors.NewNotFoundError(fmt.Sprintf("no account registered for %s", email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.NewValidationError("failed to hash password")
	}

	if err := s.userRepo.UpdatePassword(user.ID, string(hash)); err != nil {
		return errors.NewDatabaseError("failed to update password", err)
	}

	if err := s.store.DeleteResetToken(email); err != nil {
		return err
	}

	return nil
}
