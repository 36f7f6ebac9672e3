package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "energytrack.app/errors"
	"energytrack.app/models"
)

func (s *Server) createDistrict(c *gin.Context) {
	var req models.DistrictRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	district, err := s.catalogService.CreateDistrict(&req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, district)
}

func (s *Server) listDistricts(c *gin.Context) {
	districts, err := s.catalogService.ListDistricts()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, districts)
}

func (s *Server) getDistrict(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	district, err := s.catalogService.GetDistrict(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, district)
}

func (s *Server) createDevice(c *gin.Context) {
	var req models.DeviceRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	device, err := s.catalogService.CreateDevice(&req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, device)
}

func (s *Server) listDevices(c *gin.Context) {
	devices, err := s.catalogService.ListDevices()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

func (s *Server) getDevice(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	device, err := s.catalogService.GetDevice(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

func (s *Server) createUser(c *gin.Context) {
	var req models.UserRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	user, err := s.userService.Create(&req)
	if err != nil {
		slog.Error("User creation error", "error", err, "email", req.Email)
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.userService.List()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) getUser(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	user, err := s.userService.Get(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) getUserProfile(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	profile, err := s.userService.GetProfile(id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
