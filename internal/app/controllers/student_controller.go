package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/hostelportal/internal/app/models/dto"
	"github.com/yigit/hostelportal/internal/app/services"
	"github.com/yigit/hostelportal/internal/middleware"
	"github.com/yigit/hostelportal/internal/pkg/apperrors"
)

// StudentController serves the authenticated student endpoints
type StudentController struct {
	service services.AccommodationService
	logger  zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(service services.AccommodationService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		service: service,
		logger:  logger,
	}
}

// GetProfile handles GET /student/profile?id=
func (c *StudentController) GetProfile(ctx *gin.Context) {
	studentID := strings.TrimSpace(ctx.Query("id"))
	if studentID == "" {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("id query parameter is required"))
		return
	}
	if !strings.EqualFold(studentID, ctx.GetString(middleware.ContextStudentID)) {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	student, err := c.service.GetProfile(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProfileResponse{Success: true, Student: dto.NewStudentPayload(student)})
}

// UpdatePaymentStatus handles PUT /student/payment-status/:id
func (c *StudentController) UpdatePaymentStatus(ctx *gin.Context) {
	var req dto.PaymentStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.service.SetPaymentStatus(ctx.Request.Context(), ctx.Param("id"), *req.PaidStatus); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Payment status updated"})
}

// UpdateEligibilityStatus handles PUT /student/eligibility-status/:id
func (c *StudentController) UpdateEligibilityStatus(ctx *gin.Context) {
	var req dto.EligibilityStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.service.SetEligible(ctx.Request.Context(), ctx.Param("id"), *req.EligibleStatus); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Eligibility status updated"})
}

// GetEligibility handles GET /student/:id/eligibility
func (c *StudentController) GetEligibility(ctx *gin.Context) {
	eligibility, err := c.service.GetEligibility(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, eligibility)
}

// GetStatus handles GET /student/:id/status
func (c *StudentController) GetStatus(ctx *gin.Context) {
	status, err := c.service.GetStatus(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, status)
}

// SubmitChoices handles POST /student/:id/submit-choices
func (c *StudentController) SubmitChoices(ctx *gin.Context) {
	var req dto.SubmitChoicesRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.service.SubmitChoices(ctx.Request.Context(), ctx.Param("id"), &req); err != nil {
		c.logger.Warn().Err(err).Str("id", ctx.Param("id")).Msg("Choice submission rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Hostel choices submitted successfully"})
}

// GetRoomInfo handles GET /student/:id/room-info
func (c *StudentController) GetRoomInfo(ctx *gin.Context) {
	info, err := c.service.GetRoomInfo(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.RoomInfoResponse{Success: true, Data: info})
}
