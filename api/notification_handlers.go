package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "energytrack.app/errors"
	"energytrack.app/models"
)

func (s *Server) createNotification(c *gin.Context) {
	var req models.NotificationRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	notification, err := s.notificationService.Create(&req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, notification)
}

func (s *Server) listNotifications(c *gin.Context) {
	notifications, err := s.notificationService.List()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (s *Server) getNotification(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	notification, err := s.notificationService.Get(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (s *Server) markNotificationRead(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	notification, err := s.notificationService.MarkRead(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (s *Server) markNotificationUnread(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	notification, err := s.notificationService.MarkUnread(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (s *Server) activateNotification(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	notification, err := s.notificationService.Activate(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (s *Server) deactivateNotification(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	notification, err := s.notificationService.Deactivate(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (s *Server) deleteNotification(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	if err := s.notificationService.Remove(id); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Notification deleted"})
}

func (s *Server) listNotificationsByUser(c *gin.Context) {
	userID, ok := s.idParam(c, "userId")
	if !ok {
		return
	}
	notifications, err := s.notificationService.ListByUser(userID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (s *Server) runLoginChecks(c *gin.Context) {
	userID, ok := s.idParam(c, "userId")
	if !ok {
		return
	}
	if err := s.ruleEngine.RunLoginChecks(userID); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Login checks completed"})
}

func (s *Server) runAllChecksForUser(c *gin.Context) {
	userID, ok := s.idParam(c, "userId")
	if !ok {
		return
	}
	if err := s.ruleEngine.RunAllChecksForUser(userID); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Checks completed"})
}

func (s *Server) runDailyChecks(c *gin.Context) {
	if err := s.ruleEngine.RunDailyChecksForAllUsers(); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Daily checks completed"})
}

func (s *Server) runWeeklyChecks(c *gin.Context) {
	if err := s.ruleEngine.RunWeeklyChecksForAllUsers(); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Weekly checks completed"})
}

func (s *Server) runMonthStartChecks(c *gin.Context) {
	if err := s.ruleEngine.RunMonthStartChecksForAllUsers(); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Month-start checks completed"})
}

func (s *Server) runMonthEndChecks(c *gin.Context) {
	if err := s.ruleEngine.RunMonthEndChecksForAllUsers(); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Month-end checks completed"})
}

func (s *Server) runAllChecks(c *gin.Context) {
	if err := s.ruleEngine.RunAllChecksForAllUsers(); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "All checks completed"})
}
