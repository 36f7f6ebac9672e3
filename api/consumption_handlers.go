package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "energytrack.app/errors"
	"energytrack.app/models"
)

func (s *Server) createDailyConsumption(c *gin.Context) {
	var req models.DailyConsumptionRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	record, err := s.consumptionService.Record(&req)
	if err != nil {
		slog.Error("Daily consumption error", "error", err, "user_id", req.UserID, "device_id", req.DeviceID)
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (s *Server) listDailyConsumptions(c *gin.Context) {
	records, err := s.consumptionService.List()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) getDailyConsumption(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	record, err := s.consumptionService.Get(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) updateDailyConsumption(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}

	var req models.DailyConsumptionUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	record, err := s.consumptionService.Update(id, &req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) activateDailyConsumption(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	record, err := s.consumptionService.Activate(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) deactivateDailyConsumption(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	record, err := s.consumptionService.Deactivate(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) deleteDailyConsumption(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	if err := s.consumptionService.Remove(id); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Daily consumption deleted"})
}

func (s *Server) listDailyConsumptionsByUser(c *gin.Context) {
	userID, ok := s.idParam(c, "userId")
	if !ok {
		return
	}
	records, err := s.consumptionService.ListByUser(userID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) listDailyConsumptionsByDevice(c *gin.Context) {
	deviceID, ok := s.idParam(c, "deviceId")
	if !ok {
		return
	}
	records, err := s.consumptionService.ListByDevice(deviceID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) listDailyConsumptionsByUserAndDevice(c *gin.Context) {
	userID, ok := s.idParam(c, "userId")
	if !ok {
		return
	}
	deviceID, ok := s.idParam(c, "deviceId")
	if !ok {
		return
	}
	records, err := s.consumptionService.ListByUserAndDevice(userID, deviceID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) listDailyConsumptionsByUserAndDate(c *gin.Context) {
	userID, ok := s.idParam(c, "userId")
	if !ok {
		return
	}
	records, err := s.consumptionService.ListByUserAndDate(userID, c.Param("date"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) createMonthlyConsumption(c *gin.Context) {
	var req models.MonthlyConsumptionRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	record, err := s.monthlyService.Create(&req)
	if err != nil {
		slog.Error("Monthly consumption error", "error", err, "user_id", req.UserID)
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (s *Server) listMonthlyConsumptions(c *gin.Context) {
	records, err := s.monthlyService.List()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) getMonthlyConsumption(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	record, err := s.monthlyService.Get(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) updateMonthlyConsumption(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}

	var req models.MonthlyConsumptionUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	record, err := s.monthlyService.Update(id, &req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) activateMonthlyConsumption(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	record, err := s.monthlyService.Activate(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) deactivateMonthlyConsumption(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	record, err := s.monthlyService.Deactivate(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) deleteMonthlyConsumption(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	if err := s.monthlyService.Remove(id); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Monthly consumption deleted"})
}

func (s *Server) listMonthlyConsumptionsByUser(c *gin.Context) {
	userID, ok := s.idParam(c, "userId")
	if !ok {
		return
	}
	records, err := s.monthlyService.ListByUser(userID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) getMonthlyConsumptionByPeriod(c *gin.Context) {
	userID, ok := s.idParam(c, "userId")
	if !ok {
		return
	}
	month, year, ok := s.periodQuery(c)
	if !ok {
		return
	}
	record, err := s.monthlyService.GetByUserAndPeriod(userID, month, year)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
