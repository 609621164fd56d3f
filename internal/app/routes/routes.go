package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelportal/internal/app/controllers"
	"github.com/yigit/hostelportal/internal/middleware"
)

// SetupRouter configures all application routes under /api
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	hostelController *controllers.HostelController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	// --- Public auth routes ---
	public := api.Group("/student")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	student := authenticated.Group("/student")
	{
		student.GET("/profile", studentController.GetProfile)

		own := student.Group("")
		own.Use(authMiddleware.SameStudent())
		{
			own.PUT("/payment-status/:id", studentController.UpdatePaymentStatus)
			own.PUT("/eligibility-status/:id", studentController.UpdateEligibilityStatus)
			own.GET("/:id/eligibility", studentController.GetEligibility)
			own.GET("/:id/status", studentController.GetStatus)
			own.POST("/:id/submit-choices", studentController.SubmitChoices)
			own.GET("/:id/room-info", studentController.GetRoomInfo)
		}
	}

	hostels := authenticated.Group("/hostels")
	{
		hostels.GET("", hostelController.ListHostels)
		hostels.GET("/:id/rooms", hostelController.ListRooms)
		hostels.GET("/:id/stats", hostelController.GetStats)
	}
}
