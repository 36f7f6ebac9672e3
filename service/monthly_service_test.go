package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energytrack.app/config"
	"energytrack.app/errors"
	"energytrack.app/models"
)

func newMonthlyService(f *fixtures, mode string) *MonthlyService {
	return NewMonthlyService(f.monthlyRepo, f.consumptionRepo, f.userRepo, fixedClock(), mode)
}

func TestMonthlyCreateDerived(t *testing.T) {
	f := setupFixtures(t)
	svc := newMonthlyService(f, config.MonthlyModeDerived)

	f.addDaily(t, f.user.ID, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 3.5)
	f.addDaily(t, f.user.ID, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC), 4.5)

	record, err := svc.Create(&models.MonthlyConsumptionRequest{UserID: f.user.ID})
	require.NoError(t, err)

	assert.Equal(t, 6, record.Month)
	assert.Equal(t, 2026, record.Year)
	assert.Equal(t, 8.0, record.KWhTotal)
	assert.Equal(t, 0.5, record.KWhCost)
	assert.Equal(t, 4.0, record.AmountPaid)
}

func TestMonthlyDerivedWindowBoundaries(t *testing.T) {
	f := setupFixtures(t)
	svc := newMonthlyService(f, config.MonthlyModeDerived)

	// first and last day belong to the period, next month's first day does not
	f.addDaily(t, f.user.ID, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 1.0)
	f.addDaily(t, f.user.ID, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), 2.0)
	f.addDaily(t, f.user.ID, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), 50.0)
	f.addDaily(t, f.user.ID, time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC), 50.0)

	record, err := svc.Create(&models.MonthlyConsumptionRequest{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, 3.0, record.KWhTotal)
}

func TestMonthlyDerivedSkipsInactiveRecords(t *testing.T) {
	f := setupFixtures(t)
	svc := newMonthlyService(f, config.MonthlyModeDerived)

	f.addDaily(t, f.user.ID, time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC), 2.0)
	hidden := f.addDaily(t, f.user.ID, time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC), 7.0)
	hidden.IsActive = false
	require.NoError(t, f.consumptionRepo.Save(hidden))

	record, err := svc.Create(&models.MonthlyConsumptionRequest{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, 2.0, record.KWhTotal)
}

func TestMonthlyDerivedIgnoresSuppliedTotals(t *testing.T) {
	f := setupFixtures(t)
	svc := newMonthlyService(f, config.MonthlyModeDerived)

	f.addDaily(t, f.user.ID, time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC), 2.0)

	total := 99.0
	record, err := svc.Create(&models.MonthlyConsumptionRequest{UserID: f.user.ID, KWhTotal: &total})
	require.NoError(t, err)
	assert.Equal(t, 2.0, record.KWhTotal)
}

func TestMonthlyCreateReported(t *testing.T) {
	f := setupFixtures(t)
	svc := newMonthlyService(f, config.MonthlyModeReported)

	total, cost, paid := 120.5, 0.5, 60.25
	record, err := svc.Create(&models.MonthlyConsumptionRequest{
		UserID: f.user.ID, KWhTotal: &total, KWhCost: &cost, AmountPaid: &paid,
	})
	require.NoError(t, err)

	assert.Equal(t, 120.5, record.KWhTotal)
	assert.Equal(t, 0.5, record.KWhCost)
	assert.Equal(t, 60.25, record.AmountPaid)
}

func TestMonthlyCreateReportedRequiresAllTotals(t *testing.T) {
	f := setupFixtures(t)
	svc := newMonthlyService(f, config.MonthlyModeReported)

	total := 120.5
	_, err := svc.Create(&models.MonthlyConsumptionRequest{UserID: f.user.ID, KWhTotal: &total})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestMonthlyCreateDuplicatePeriod(t *testing.T) {
	f := setupFixtures(t)
	svc := newMonthlyService(f, config.MonthlyModeDerived)

	_, err := svc.Create(&models.MonthlyConsumptionRequest{UserID: f.user.ID})
	require.NoError(t, err)

	_, err = svc.Create(&models.MonthlyConsumptionRequest{UserID: f.user.ID})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestMonthlyUpdateDerivedReaggregates(t *testing.T) {
	f := setupFixtures(t)
	svc := newMonthlyService(f, config.MonthlyModeDerived)

	f.addDaily(t, f.user.ID, time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC), 2.0)
	record, err := svc.Create(&models.MonthlyConsumptionRequest{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, 2.0, record.KWhTotal)

	f.addDaily(t, f.user.ID, time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC), 3.0)

	updated, err := svc.Update(record.ID, &models.MonthlyConsumptionUpdateRequest{})
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.KWhTotal)
	assert.Equal(t, 2.5, updated.AmountPaid)
}

func TestMonthlyUpdateIsIdempotent(t *testing.T) {
	f := setupFixtures(t)
	svc := newMonthlyService(f, config.MonthlyModeDerived)

	f.addDaily(t, f.user.ID, time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC), 2.0)
	record, err := svc.Create(&models.MonthlyConsumptionRequest{UserID: f.user.ID})
	require.NoError(t, err)

	first, err := svc.Update(record.ID, &models.MonthlyConsumptionUpdateRequest{})
	require.NoError(t, err)
	second, err := svc.Update(record.ID, &models.MonthlyConsumptionUpdateRequest{})
	require.NoError(t, err)

	assert.Equal(t, first.KWhTotal, second.KWhTotal)
	assert.Equal(t, first.AmountPaid, second.AmountPaid)
}

func TestMonthlyGetByUserAndPeriod(t *testing.T) {
	f := setupFixtures(t)
	svc := newMonthlyService(f, config.MonthlyModeDerived)

	_, err := svc.Create(&models.MonthlyConsumptionRequest{UserID: f.user.ID})
	require.NoError(t, err)

	record, err := svc.GetByUserAndPeriod(f.user.ID, 6, 2026)
	require.NoError(t, err)
	assert.Equal(t, 6, record.Month)

	_, err = svc.GetByUserAndPeriod(f.user.ID, 5, 2026)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
