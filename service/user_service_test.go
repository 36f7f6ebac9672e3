package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"energytrack.app/errors"
	"energytrack.app/models"
)

func newUserService(f *fixtures) *UserService {
	return NewUserService(f.userRepo, f.profileRepo, f.districtRepo)
}

func TestUserCreate(t *testing.T) {
	f := setupFixtures(t)
	svc := newUserService(f)

	user, err := svc.Create(&models.UserRequest{
		Email:      "jose@example.com",
		Name:       "Jose",
		Password:   "secret-password",
		DistrictID: f.district.ID,
	})
	require.NoError(t, err)

	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret-password")))

	profile, err := f.profileRepo.FindByUserID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 0, profile.Streak)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	f := setupFixtures(t)
	svc := newUserService(f)

	_, err := svc.Create(&models.UserRequest{
		Email:      f.user.Email,
		Name:       "Impostor",
		Password:   "secret-password",
		DistrictID: f.district.ID,
	})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestUserCreateUnknownDistrict(t *testing.T) {
	f := setupFixtures(t)
	svc := newUserService(f)

	_, err := svc.Create(&models.UserRequest{
		Email:      "jose@example.com",
		Name:       "Jose",
		Password:   "secret-password",
		DistrictID: 999,
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUserGetLoadsDistrict(t *testing.T) {
	f := setupFixtures(t)
	svc := newUserService(f)

	user, err := svc.Get(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.5, user.District.FeeKWh)
}

func TestNotificationMarkReadAndUnread(t *testing.T) {
	f := setupFixtures(t)
	svc := NewNotificationService(f.notificationRepo, f.userRepo, fixedClock())

	notification, err := svc.Create(&models.NotificationRequest{
		UserID:      f.user.ID,
		Name:        "Welcome",
		Description: "Thanks for joining!",
	})
	require.NoError(t, err)
	assert.False(t, notification.WasRead)

	read, err := svc.MarkRead(notification.ID)
	require.NoError(t, err)
	assert.True(t, read.WasRead)

	unread, err := svc.MarkUnread(notification.ID)
	require.NoError(t, err)
	assert.False(t, unread.WasRead)
}

func TestNotificationCreateAutomaticDedup(t *testing.T) {
	f := setupFixtures(t)
	svc := NewNotificationService(f.notificationRepo, f.userRepo, fixedClock())

	created, err := svc.CreateAutomatic(f.user.ID, "Near Goal Limit", "first")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.CreateAutomatic(f.user.ID, "Near Goal Limit", "second")
	require.NoError(t, err)
	assert.False(t, created)

	// a different name is not suppressed
	created, err = svc.CreateAutomatic(f.user.ID, "Goal Exceeded", "other rule")
	require.NoError(t, err)
	assert.True(t, created)

	notifications, err := svc.ListByUser(f.user.ID)
	require.NoError(t, err)
	assert.Len(t, notifications, 2)
}

func TestNotificationDedupIgnoresInactive(t *testing.T) {
	f := setupFixtures(t)
	svc := NewNotificationService(f.notificationRepo, f.userRepo, fixedClock())

	created, err := svc.CreateAutomatic(f.user.ID, "Near Goal Limit", "first")
	require.NoError(t, err)
	require.True(t, created)

	notifications, err := svc.ListByUser(f.user.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	_, err = svc.Deactivate(notifications[0].ID)
	require.NoError(t, err)

	created, err = svc.CreateAutomatic(f.user.ID, "Near Goal Limit", "again")
	require.NoError(t, err)
	assert.True(t, created)
}
