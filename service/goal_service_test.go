package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energytrack.app/errors"
	"energytrack.app/models"
)

func newGoalService(f *fixtures) *GoalService {
	return NewGoalService(f.goalRepo, f.userRepo, fixedClock(), nil)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestGoalCreateFromKWh(t *testing.T) {
	f := setupFixtures(t)
	svc := newGoalService(f)

	goal, err := svc.Create(&models.GoalRequest{UserID: f.user.ID, GoalKWh: floatPtr(200)})
	require.NoError(t, err)

	assert.Equal(t, 200.0, goal.GoalKWh)
	assert.Equal(t, 100.0, goal.EstimatedCost)
	assert.Equal(t, 6, goal.Month)
	assert.Equal(t, 2026, goal.Year)
}

func TestGoalCreateFromCost(t *testing.T) {
	f := setupFixtures(t)
	svc := newGoalService(f)

	goal, err := svc.Create(&models.GoalRequest{UserID: f.user.ID, EstimatedCost: floatPtr(75)})
	require.NoError(t, err)

	assert.Equal(t, 75.0, goal.EstimatedCost)
	assert.Equal(t, 150.0, goal.GoalKWh)
}

func TestGoalCreateRequiresExactlyOneTarget(t *testing.T) {
	f := setupFixtures(t)
	svc := newGoalService(f)

	_, err := svc.Create(&models.GoalRequest{UserID: f.user.ID})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = svc.Create(&models.GoalRequest{
		UserID: f.user.ID, GoalKWh: floatPtr(200), EstimatedCost: floatPtr(100),
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestGoalCreateExplicitPeriod(t *testing.T) {
	f := setupFixtures(t)
	svc := newGoalService(f)

	goal, err := svc.Create(&models.GoalRequest{
		UserID: f.user.ID, GoalKWh: floatPtr(180), Month: intPtr(7), Year: intPtr(2026),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, goal.Month)
	assert.Equal(t, 2026, goal.Year)
}

func TestGoalCreateDuplicatePeriod(t *testing.T) {
	f := setupFixtures(t)
	svc := newGoalService(f)

	_, err := svc.Create(&models.GoalRequest{UserID: f.user.ID, GoalKWh: floatPtr(200)})
	require.NoError(t, err)

	_, err = svc.Create(&models.GoalRequest{UserID: f.user.ID, GoalKWh: floatPtr(150)})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestGoalUpdateRecomputesCost(t *testing.T) {
	f := setupFixtures(t)
	svc := newGoalService(f)

	goal, err := svc.Create(&models.GoalRequest{UserID: f.user.ID, GoalKWh: floatPtr(200)})
	require.NoError(t, err)

	updated, err := svc.Update(goal.ID, &models.GoalUpdateRequest{GoalKWh: floatPtr(300)})
	require.NoError(t, err)
	assert.Equal(t, 300.0, updated.GoalKWh)
	assert.Equal(t, 150.0, updated.EstimatedCost)
}

type recordingRuleRunner struct {
	calls []uint
}

func (r *recordingRuleRunner) RunAllChecksForUser(userID uint) error {
	r.calls = append(r.calls, userID)
	return nil
}

func TestGoalUpdateTriggersRuleReevaluation(t *testing.T) {
	f := setupFixtures(t)
	runner := &recordingRuleRunner{}
	svc := NewGoalService(f.goalRepo, f.userRepo, fixedClock(), runner)

	goal, err := svc.Create(&models.GoalRequest{UserID: f.user.ID, GoalKWh: floatPtr(200)})
	require.NoError(t, err)

	_, err = svc.Update(goal.ID, &models.GoalUpdateRequest{GoalKWh: floatPtr(100)})
	require.NoError(t, err)

	assert.Equal(t, []uint{f.user.ID}, runner.calls)
}

func TestGoalActivateConflictsWithExistingPeriodGoal(t *testing.T) {
	f := setupFixtures(t)
	svc := newGoalService(f)

	first, err := svc.Create(&models.GoalRequest{UserID: f.user.ID, GoalKWh: floatPtr(200)})
	require.NoError(t, err)

	_, err = svc.Deactivate(first.ID)
	require.NoError(t, err)

	second, err := svc.Create(&models.GoalRequest{UserID: f.user.ID, GoalKWh: floatPtr(150)})
	require.NoError(t, err)

	_, err = svc.Activate(first.ID)
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))

	// deactivating the replacement frees the slot again
	_, err = svc.Deactivate(second.ID)
	require.NoError(t, err)

	reactivated, err := svc.Activate(first.ID)
	require.NoError(t, err)
	assert.True(t, reactivated.IsActive)
}

func TestGoalCreateUnknownUser(t *testing.T) {
	f := setupFixtures(t)
	svc := newGoalService(f)

	_, err := svc.Create(&models.GoalRequest{UserID: 999, GoalKWh: floatPtr(200)})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
