package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energytrack.app/errors"
	"energytrack.app/models"
)

func newConsumptionService(f *fixtures) *ConsumptionService {
	return NewConsumptionService(f.consumptionRepo, f.userRepo, f.deviceRepo, f.profileRepo, fixedClock())
}

func TestConsumptionRecord(t *testing.T) {
	f := setupFixtures(t)
	svc := newConsumptionService(f)

	record, err := svc.Record(&models.DailyConsumptionRequest{
		UserID:   f.user.ID,
		DeviceID: f.device.ID,
		HoursUse: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, 8.0, record.EstimatedConsumption)
	assert.Equal(t, fixedClock().Today(), record.Date)
	assert.True(t, record.IsActive)
}

func TestConsumptionRecordRoundsDerivedValue(t *testing.T) {
	f := setupFixtures(t)
	device := &models.Device{Name: "TV", ConsumptionKWhH: 0.333}
	require.NoError(t, f.deviceRepo.Create(device))
	svc := newConsumptionService(f)

	record, err := svc.Record(&models.DailyConsumptionRequest{
		UserID:   f.user.ID,
		DeviceID: device.ID,
		HoursUse: 2,
	})
	require.NoError(t, err)

	// 2 * 0.333 = 0.666, rounded half away from zero
	assert.Equal(t, 0.67, record.EstimatedConsumption)
}

func TestConsumptionRecordDuplicateSameDay(t *testing.T) {
	f := setupFixtures(t)
	svc := newConsumptionService(f)

	req := &models.DailyConsumptionRequest{UserID: f.user.ID, DeviceID: f.device.ID, HoursUse: 4}
	_, err := svc.Record(req)
	require.NoError(t, err)

	_, err = svc.Record(req)
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestConsumptionRecordUnknownUser(t *testing.T) {
	f := setupFixtures(t)
	svc := newConsumptionService(f)

	_, err := svc.Record(&models.DailyConsumptionRequest{UserID: 999, DeviceID: f.device.ID, HoursUse: 4})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestConsumptionRecordUnknownDevice(t *testing.T) {
	f := setupFixtures(t)
	svc := newConsumptionService(f)

	_, err := svc.Record(&models.DailyConsumptionRequest{UserID: f.user.ID, DeviceID: 999, HoursUse: 4})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestConsumptionStreakIncrementsOncePerDay(t *testing.T) {
	f := setupFixtures(t)
	svc := newConsumptionService(f)
	device2 := &models.Device{Name: "Washer", ConsumptionKWhH: 2.0}
	require.NoError(t, f.deviceRepo.Create(device2))

	_, err := svc.Record(&models.DailyConsumptionRequest{UserID: f.user.ID, DeviceID: f.device.ID, HoursUse: 1})
	require.NoError(t, err)

	profile, err := f.profileRepo.FindByUserID(f.user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 1, profile.Streak)

	// second record the same day must not bump the streak again
	_, err = svc.Record(&models.DailyConsumptionRequest{UserID: f.user.ID, DeviceID: device2.ID, HoursUse: 1})
	require.NoError(t, err)

	profile, err = f.profileRepo.FindByUserID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Streak)
}

func TestConsumptionUpdateRecomputesFromDevice(t *testing.T) {
	f := setupFixtures(t)
	svc := newConsumptionService(f)

	record, err := svc.Record(&models.DailyConsumptionRequest{UserID: f.user.ID, DeviceID: f.device.ID, HoursUse: 2})
	require.NoError(t, err)

	updated, err := svc.Update(record.ID, &models.DailyConsumptionUpdateRequest{HoursUse: 5})
	require.NoError(t, err)

	assert.Equal(t, 5.0, updated.HoursUse)
	assert.Equal(t, 5.0, updated.EstimatedConsumption)
	assert.Equal(t, record.UserID, updated.UserID)
	assert.Equal(t, record.Date, updated.Date)
}

func TestConsumptionDeactivateHidesFromListings(t *testing.T) {
	f := setupFixtures(t)
	svc := newConsumptionService(f)

	record, err := svc.Record(&models.DailyConsumptionRequest{UserID: f.user.ID, DeviceID: f.device.ID, HoursUse: 3})
	require.NoError(t, err)

	_, err = svc.Deactivate(record.ID)
	require.NoError(t, err)

	records, err := svc.ListByUser(f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = svc.Activate(record.ID)
	require.NoError(t, err)

	records, err = svc.ListByUser(f.user.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestConsumptionListByUserAndDate(t *testing.T) {
	f := setupFixtures(t)
	svc := newConsumptionService(f)

	_, err := svc.Record(&models.DailyConsumptionRequest{UserID: f.user.ID, DeviceID: f.device.ID, HoursUse: 3})
	require.NoError(t, err)

	records, err := svc.ListByUserAndDate(f.user.ID, "2026-06-15")
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = svc.ListByUserAndDate(f.user.ID, "2026-06-14")
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = svc.ListByUserAndDate(f.user.ID, "15/06/2026")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestConsumptionRemove(t *testing.T) {
	f := setupFixtures(t)
	svc := newConsumptionService(f)

	record, err := svc.Record(&models.DailyConsumptionRequest{UserID: f.user.ID, DeviceID: f.device.ID, HoursUse: 3})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(record.ID))

	_, err = svc.Get(record.ID)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
