package api

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"energytrack.app/config"
	apperr "energytrack.app/errors"
	"energytrack.app/models"
	"energytrack.app/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router              *gin.Engine
	db                  *gorm.DB
	config              *config.Config
	userService         *service.UserService
	catalogService      *service.CatalogService
	consumptionService  service.ConsumptionServiceInterface
	monthlyService      service.MonthlyServiceInterface
	goalService         service.GoalServiceInterface
	savingService       service.SavingServiceInterface
	notificationService service.NotificationServiceInterface
	ruleEngine          service.RuleEngineInterface
	passwordReset       service.PasswordResetServiceInterface
}

// ServerOptions bundles the dependencies for NewServer
type ServerOptions struct {
	DB                  *gorm.DB
	Config              *config.Config
	UserService         *service.UserService
	CatalogService      *service.CatalogService
	ConsumptionService  service.ConsumptionServiceInterface
	MonthlyService      service.MonthlyServiceInterface
	GoalService         service.GoalServiceInterface
	SavingService       service.SavingServiceInterface
	NotificationService service.NotificationServiceInterface
	RuleEngine          service.RuleEngineInterface
	PasswordReset       service.PasswordResetServiceInterface
}

// goalTargetValidation rejects goal payloads carrying both or neither target
func goalTargetValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(models.GoalRequest)
	if (req.GoalKWh == nil) == (req.EstimatedCost == nil) {
		sl.ReportError(req.GoalKWh, "GoalKWh", "goal_kwh", "goal_target", "")
	}
}

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(goalTargetValidation, models.GoalRequest{})
	}
}

// NewServer creates and configures a new HTTP server
func NewServer(opts ServerOptions) *Server {
	router := gin.Default()
	registerValidations()

	server := &Server{
		router:              router,
		db:                  opts.DB,
		config:              opts.Config,
		userService:         opts.UserService,
		catalogService:      opts.CatalogService,
		consumptionService:  opts.ConsumptionService,
		monthlyService:      opts.MonthlyService,
		goalService:         opts.GoalService,
		savingService:       opts.SavingService,
		notificationService: opts.NotificationService,
		ruleEngine:          opts.RuleEngine,
		passwordReset:       opts.PasswordReset,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		api.GET("/health", s.health)

		api.POST("/districts", s.createDistrict)
		api.GET("/districts", s.listDistricts)
		api.GET("/districts/:id", s.getDistrict)

		api.POST("/devices", s.createDevice)
		api.GET("/devices", s.listDevices)
		api.GET("/devices/:id", s.getDevice)

		api.POST("/users", s.createUser)
		api.GET("/users", s.listUsers)
		api.GET("/users/:id", s.getUser)
		api.GET("/users/:id/profile", s.getUserProfile)

		daily := api.Group("/daily-consumptions")
		{
			daily.POST("", s.createDailyConsumption)
			daily.GET("", s.listDailyConsumptions)
			daily.GET("/:id", s.getDailyConsumption)
			daily.PUT("/:id", s.updateDailyConsumption)
			daily.PATCH("/:id/activate", s.activateDailyConsumption)
			daily.PATCH("/:id/deactivate", s.deactivateDailyConsumption)
			daily.DELETE("/:id", s.deleteDailyConsumption)
			daily.GET("/user/:userId", s.listDailyConsumptionsByUser)
			daily.GET("/device/:deviceId", s.listDailyConsumptionsByDevice)
			daily.GET("/user/:userId/device/:deviceId", s.listDailyConsumptionsByUserAndDevice)
			daily.GET("/user/:userId/date/:date", s.listDailyConsumptionsByUserAndDate)
		}

		monthly := api.Group("/monthly-consumptions")
		{
			monthly.POST("", s.createMonthlyConsumption)
			monthly.GET("", s.listMonthlyConsumptions)
			monthly.GET("/:id", s.getMonthlyConsumption)
			monthly.PUT("/:id", s.updateMonthlyConsumption)
			monthly.PATCH("/:id/activate", s.activateMonthlyConsumption)
			monthly.PATCH("/:id/deactivate", s.deactivateMonthlyConsumption)
			monthly.DELETE("/:id", s.deleteMonthlyConsumption)
			monthly.GET("/user/:userId", s.listMonthlyConsumptionsByUser)
			monthly.GET("/user/:userId/period", s.getMonthlyConsumptionByPeriod)
		}

		goals := api.Group("/goals")
		{
			goals.POST("", s.createGoal)
			goals.GET("", s.listGoals)
			goals.GET("/:id", s.getGoal)
			goals.PUT("/:id", s.updateGoal)
			goals.PATCH("/:id/activate", s.activateGoal)
			goals.PATCH("/:id/deactivate", s.deactivateGoal)
			goals.DELETE("/:id", s.deleteGoal)
			goals.GET("/user/:userId", s.listGoalsByUser)
			goals.GET("/user/:userId/period", s.getGoalByPeriod)
		}

		savings := api.Group("/savings")
		{
			savings.POST("", s.createSaving)
			savings.GET("", s.listSavings)
			savings.GET("/:id", s.getSaving)
			savings.PUT("/:id", s.recomputeSaving)
			savings.PATCH("/:id/activate", s.activateSaving)
			savings.PATCH("/:id/deactivate", s.deactivateSaving)
			savings.DELETE("/:id", s.deleteSaving)
			savings.GET("/user/:userId", s.listSavingsByUser)
			savings.GET("/user/:userId/period", s.getSavingByPeriod)
		}

		notifications := api.Group("/notifications")
		{
			notifications.POST("", s.createNotification)
			notifications.GET("", s.listNotifications)
			notifications.GET("/:id", s.getNotification)
			notifications.PATCH("/:id/read", s.markNotificationRead)
			notifications.PATCH("/:id/unread", s.markNotificationUnread)
			notifications.PATCH("/:id/activate", s.activateNotification)
			notifications.PATCH("/:id/deactivate", s.deactivateNotification)
			notifications.DELETE("/:id", s.deleteNotification)
			notifications.GET("/user/:userId", s.listNotificationsByUser)

			checks := notifications.Group("/checks")
			{
				checks.POST("/login/:userId", s.runLoginChecks)
				checks.POST("/user/:userId", s.runAllChecksForUser)
				checks.POST("/daily", s.runDailyChecks)
				checks.POST("/weekly", s.runWeeklyChecks)
				checks.POST("/month-start", s.runMonthStartChecks)
				checks.POST("/month-end", s.runMonthEndChecks)
				checks.POST("/all", s.runAllChecks)
			}
		}

		auth := api.Group("/auth")
		{
			auth.POST("/forgot-password", s.forgotPassword)
			auth.POST("/verify-reset-code", s.verifyResetCode)
			auth.POST("/reset-password", s.resetPassword)
		}
	}
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// idParam parses a positive integer path parameter
func (s *Server) idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		s.handleError(c, apperr.NewValidationError(fmt.Sprintf("%s must be a positive integer", name)))
		return 0, false
	}
	return uint(id), true
}

// periodQuery parses the month and year query parameters
func (s *Server) periodQuery(c *gin.Context) (int, int, bool) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		s.handleError(c, apperr.NewValidationError("month query parameter must be between 1 and 12"))
		return 0, 0, false
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 {
		s.handleError(c, apperr.NewValidationError("year query parameter must be a valid year"))
		return 0, 0, false
	}
	return month, year, true
}

// handleError maps application errors onto HTTP status codes
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *apperr.AppError
	var statusCode int
	var message string

	if goerrors.As(err, &appErr) {
		switch appErr.Type {
		case apperr.ErrorTypeValidation:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case apperr.ErrorTypeNotFound:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case apperr.ErrorTypeConflict:
			statusCode = http.StatusConflict
			message = appErr.Message
		case apperr.ErrorTypeUnprocessable:
			statusCode = http.StatusUnprocessableEntity
			message = appErr.Message
		case apperr.ErrorTypeDatabase:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		case apperr.ErrorTypeEmail:
			statusCode = http.StatusServiceUnavailable
			message = "Unable to send email"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
