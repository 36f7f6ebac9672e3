package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "energytrack.app/errors"
	"energytrack.app/models"
)

func (s *Server) createGoal(c *gin.Context) {
	var req models.GoalRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	goal, err := s.goalService.Create(&req)
	if err != nil {
		slog.Error("Goal creation error", "error", err, "user_id", req.UserID)
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (s *Server) listGoals(c *gin.Context) {
	goals, err := s.goalService.List()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (s *Server) getGoal(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	goal, err := s.goalService.Get(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (s *Server) updateGoal(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}

	var req models.GoalUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	goal, err := s.goalService.Update(id, &req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (s *Server) activateGoal(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	goal, err := s.goalService.Activate(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (s *Server) deactivateGoal(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	goal, err := s.goalService.Deactivate(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (s *Server) deleteGoal(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	if err := s.goalService.Remove(id); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Goal deleted"})
}

func (s *Server) listGoalsByUser(c *gin.Context) {
	userID, ok := s.idParam(c, "userId")
	if !ok {
		return
	}
	goals, err := s.goalService.ListByUser(userID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (s *Server) getGoalByPeriod(c *gin.Context) {
	userID, ok := s.idParam(c, "userId")
	if !ok {
		return
	}
	month, year, ok := s.periodQuery(c)
	if !ok {
		return
	}
	goal, err := s.goalService.GetByUserAndPeriod(userID, month, year)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (s *Server) createSaving(c *gin.Context) {
	var req models.SavingRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	saving, err := s.savingService.Create(&req)
	if err != nil {
		slog.Error("Saving creation error", "error", err, "user_id", req.UserID)
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saving)
}

func (s *Server) listSavings(c *gin.Context) {
	savings, err := s.savingService.List()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, savings)
}

func (s *Server) getSaving(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	saving, err := s.savingService.Get(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, saving)
}

func (s *Server) recomputeSaving(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	saving, err := s.savingService.Recompute(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, saving)
}

func (s *Server) activateSaving(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	saving, err := s.savingService.Activate(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, saving)
}

func (s *Server) deactivateSaving(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	saving, err := s.savingService.Deactivate(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, saving)
}

func (s *Server) deleteSaving(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	if err := s.savingService.Remove(id); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Saving deleted"})
}

func (s *Server) listSavingsByUser(c *gin.Context) {
	userID, ok := s.idParam(c, "userId")
	if !ok {
		return
	}
	savings, err := s.savingService.ListByUser(userID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, savings)
}

func (s *Server) getSavingByPeriod(c *gin.Context) {
	userID, ok := s.idParam(c, "userId")
	if !ok {
		return
	}
	month, year, ok := s.periodQuery(c)
	if !ok {
		return
	}
	saving, err := s.savingService.GetByUserAndPeriod(userID, month, year)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, saving)
}
