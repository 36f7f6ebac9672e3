package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "energytrack.app/errors"
	"energytrack.app/models"
)

func (s *Server) forgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	// an unknown address gets the same response as a known one
	if err := s.passwordReset.RequestReset(req.Email); err != nil && !apperr.IsNotFoundError(err) {
		slog.Error("Password reset request error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "If the account exists, a reset code has been sent"})
}

func (s *Server) verifyResetCode(c *gin.Context) {
	var req models.VerifyResetCodeRequest
	if err := c.ShouldBind(&req); err != nil {
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	token, err := s.passwordReset.VerifyCode(req.Email, req.Code)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) resetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		s.handleError(c, apperr.NewValidationError("invalid request format"))
		return
	}

	if err := s.passwordReset.ResetPassword(req.Email, req.Token, req.NewPassword); err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Password updated successfully"})
}
