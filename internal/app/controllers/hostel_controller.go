package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelportal/internal/app/models/dto"
	"github.com/yigit/hostelportal/internal/app/services"
	"github.com/yigit/hostelportal/internal/middleware"
)

// HostelController serves the hostel catalogue
type HostelController struct {
	service services.AccommodationService
}

// NewHostelController creates a new HostelController
func NewHostelController(service services.AccommodationService) *HostelController {
	return &HostelController{service: service}
}

// ListHostels handles GET /hostels?gender=&campus=
func (c *HostelController) ListHostels(ctx *gin.Context) {
	hostels, err := c.service.ListHostels(ctx.Request.Context(), ctx.Query("gender"), ctx.Query("campus"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.HostelListResponse{Success: true, Hostels: hostels})
}

// ListRooms handles GET /hostels/:id/rooms
func (c *HostelController) ListRooms(ctx *gin.Context) {
	rooms, err := c.service.ListRooms(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.RoomListResponse{Success: true, Rooms: rooms})
}

// GetStats handles GET /hostels/:id/stats
func (c *HostelController) GetStats(ctx *gin.Context) {
	stats, err := c.service.GetHostelStats(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.HostelStatsResponse{Success: true, Stats: stats})
}
