package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"energytrack.app/clock"
	"energytrack.app/models"
	"energytrack.app/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.District{},
		&models.Device{},
		&models.User{},
		&models.UserProfile{},
		&models.DailyConsumption{},
		&models.MonthlyConsumption{},
		&models.Goal{},
		&models.Saving{},
		&models.Notification{},
	)
	require.NoError(t, err)

	return db
}

// fixtures bundles the repositories plus one seeded district, device and user
type fixtures struct {
	db *gorm.DB

	userRepo         *repository.UserRepository
	profileRepo      *repository.ProfileRepository
	districtRepo     *repository.DistrictRepository
	deviceRepo       *repository.DeviceRepository
	consumptionRepo  *repository.DailyConsumptionRepository
	monthlyRepo      *repository.MonthlyConsumptionRepository
	goalRepo         *repository.GoalRepository
	savingRepo       *repository.SavingRepository
	notificationRepo *repository.NotificationRepository

	district *models.District
	device   *models.Device
	user     *models.User
}

// setupFixtures seeds a district with fee 0.5 S/ per kWh, a 1.0 kWh/h device
// and one active user living in that district
func setupFixtures(t *testing.T) *fixtures {
	t.Helper()

	db := setupTestDB(t)
	f := &fixtures{
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		profileRepo:      repository.NewProfileRepository(db),
		districtRepo:     repository.NewDistrictRepository(db),
		deviceRepo:       repository.NewDeviceRepository(db),
		consumptionRepo:  repository.NewDailyConsumptionRepository(db),
		monthlyRepo:      repository.NewMonthlyConsumptionRepository(db),
		goalRepo:         repository.NewGoalRepository(db),
		savingRepo:       repository.NewSavingRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}

	f.district = &models.District{Name: "San Isidro", FeeKWh: 0.5}
	require.NoError(t, f.districtRepo.Create(f.district))

	f.device = &models.Device{Name: "Refrigerator", ConsumptionKWhH: 1.0}
	require.NoError(t, f.deviceRepo.Create(f.device))

	f.user = &models.User{
		Email:        "maria@example.com",
		Name:         "Maria",
		PasswordHash: "x",
		DistrictID:   f.district.ID,
		IsActive:     true,
	}
	require.NoError(t, f.userRepo.Create(f.user))

	return f
}

func (f *fixtures) addUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		Name:         "User " + email,
		PasswordHash: "x",
		DistrictID:   f.district.ID,
		IsActive:     true,
	}
	require.NoError(t, f.userRepo.Create(user))
	return user
}

// addDaily inserts an active daily record directly, bypassing the service
func (f *fixtures) addDaily(t *testing.T, userID uint, date time.Time, kwh float64) *models.DailyConsumption {
	t.Helper()
	record := &models.DailyConsumption{
		UserID:               userID,
		DeviceID:             f.device.ID,
		Date:                 clock.DayOf(date),
		HoursUse:             kwh / f.device.ConsumptionKWhH,
		EstimatedConsumption: kwh,
		IsActive:             true,
	}
	require.NoError(t, f.consumptionRepo.Create(record))
	return record
}

func (f *fixtures) addGoal(t *testing.T, userID uint, month, year int, goalKWh float64) *models.Goal {
	t.Helper()
	goal := &models.Goal{
		UserID:        userID,
		Month:         month,
		Year:          year,
		GoalKWh:       goalKWh,
		EstimatedCost: goalKWh * f.district.FeeKWh,
		IsActive:      true,
	}
	require.NoError(t, f.goalRepo.Create(goal))
	return goal
}

// fixedClock pins the clock to mid-month in UTC: 2026-06-15 12:00
func fixedClock() *clock.FixedClock {
	return &clock.FixedClock{Time: time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)}
}
