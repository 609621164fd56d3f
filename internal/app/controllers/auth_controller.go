// Package controllers handles HTTP request handling for the mock backend
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/hostelportal/internal/app/models/dto"
	"github.com/yigit/hostelportal/internal/app/services"
	"github.com/yigit/hostelportal/internal/middleware"
)

// AuthController handles student registration and login
type AuthController struct {
	service services.AccommodationService
	logger  zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(service services.AccommodationService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		service: service,
		logger:  logger,
	}
}

// Register handles POST /student/register
func (c *AuthController) Register(ctx *gin.Context) {
	c.logger.Debug().Msg("Register endpoint called")

	var req dto.RegisterRequest
	if !middleware.BindJSON(ctx, &req) {
		c.logger.Warn().Msg("Invalid registration request payload")
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("studentId", req.StudentID).Msg("Failed to register student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// Login handles POST /student/login
func (c *AuthController) Login(ctx *gin.Context) {
	c.logger.Debug().Msg("Login endpoint called")

	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("studentId", req.StudentID).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
