package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hopebridge/eventhub/internal/app/controllers"
	"github.com/hopebridge/eventhub/internal/app/models"
	"github.com/hopebridge/eventhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	eventController *controllers.EventController,
	certificateController *controllers.CertificateController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	events := v1.Group("/events")
	{
		events.GET("", eventController.GetUpcomingEvents)
		events.GET("/past", eventController.GetPastEvents)
		events.GET("/:id", eventController.GetEvent)
	}

	certificates := v1.Group("/certificates")
	{
		certificates.GET("/verify/:certNo", certificateController.VerifyCertificate)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/events/:id/join", eventController.JoinEvent)
		authenticated.POST("/events/:id/reminder", eventController.SetReminder)
		authenticated.POST("/events/:id/gallery", eventController.AddGalleryImage)
		authenticated.GET("/events/:id/certificate", certificateController.DownloadMyCertificate)
		authenticated.GET("/user/events", eventController.GetUserEvents)

		// Admin routes
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.GET("/events", eventController.GetAllEvents)
			admin.POST("/events", eventController.CreateEvent)
			admin.PUT("/events/:id", eventController.UpdateEvent)
			admin.DELETE("/events/:id", eventController.DeleteEvent)
			admin.PUT("/events/:id/status", eventController.UpdateEventStatus)
			admin.GET("/events/:id/registrations", eventController.GetEventRegistrations)
			admin.POST("/events/:id/gallery", eventController.AddGalleryImageAdmin)
			admin.DELETE("/events/:id/gallery", eventController.RemoveGalleryImageAdmin)
			admin.POST("/certificates", certificateController.IssueAdHocCertificate)
		}
	}
}
