package app

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"energytrack.app/api"
	"energytrack.app/clock"
	"energytrack.app/config"
	"energytrack.app/database"
	"energytrack.app/providers"
	"energytrack.app/repository"
	"energytrack.app/scheduler"
	"energytrack.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config    *config.Config
	db        *gorm.DB
	server    *api.Server
	scheduler *scheduler.Scheduler
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing database...")

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	appClock, err := clock.NewLocalClock(app.config.Timezone)
	if err != nil {
		return fmt.Errorf("create application clock: %w", err)
	}

	resetStore, err := providers.NewRedisResetStore(&app.config.Redis)
	if err != nil {
		return fmt.Errorf("create reset code store: %w", err)
	}
	emailProvider := providers.NewSMTPEmailProvider(&app.config.Email)

	userRepo := repository.NewUserRepository(app.db)
	profileRepo := repository.NewProfileRepository(app.db)
	districtRepo := repository.NewDistrictRepository(app.db)
	deviceRepo := repository.NewDeviceRepository(app.db)
	consumptionRepo := repository.NewDailyConsumptionRepository(app.db)
	monthlyRepo := repository.NewMonthlyConsumptionRepository(app.db)
	goalRepo := repository.NewGoalRepository(app.db)
	savingRepo := repository.NewSavingRepository(app.db)
	notificationRepo := repository.NewNotificationRepository(app.db)

	notificationService := service.NewNotificationService(notificationRepo, userRepo, appClock)
	ruleEngine := service.NewRuleEngine(
		consumptionRepo, goalRepo, savingRepo, userRepo, notificationService, appClock)

	server := api.NewServer(api.ServerOptions{
		DB:                  app.db,
		Config:              app.config,
		UserService:         service.NewUserService(userRepo, profileRepo, districtRepo),
		CatalogService:      service.NewCatalogService(districtRepo, deviceRepo),
		ConsumptionService:  service.NewConsumptionService(consumptionRepo, userRepo, deviceRepo, profileRepo, appClock),
		MonthlyService:      service.NewMonthlyService(monthlyRepo, consumptionRepo, userRepo, appClock, app.config.MonthlyMode),
		GoalService:         service.NewGoalService(goalRepo, userRepo, appClock, ruleEngine),
		SavingService:       service.NewSavingService(savingRepo, goalRepo, consumptionRepo, userRepo, appClock),
		NotificationService: notificationService,
		RuleEngine:          ruleEngine,
		PasswordReset:       service.NewPasswordResetService(userRepo, resetStore, service.NewEmailService(emailProvider)),
	})

	location, err := time.LoadLocation(app.config.Timezone)
	if err != nil {
		return fmt.Errorf("load scheduler timezone: %w", err)
	}

	app.server = server
	app.scheduler = scheduler.NewScheduler(ruleEngine, location)

	slog.Info("Services initialized successfully")
	return nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	slog.Info("Starting scheduler...")
	app.scheduler.Start()

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
