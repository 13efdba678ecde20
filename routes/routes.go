package routes

import (
	"time"

	"fotura/handlers"
	"fotura/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the client-facing scheduling endpoints.
func RegisterBookingRoutes(r *gin.Engine, sh *handlers.SchedulingHandler) {
	api := r.Group("/api/bookings")
	{
		api.POST("/slots", sh.GetAvailableSlotsHandler)
		api.POST("/draft", sh.CreateDraftBookingHandler)
		api.POST("/:id/finalize", sh.FinalizeBookingHandler)
		api.GET("/:id", sh.GetBookingHandler)
	}
}

// RegisterAdminRoutes registers the admin tooling: swaps, blocks, lifecycle
// transitions, route optimization and technician/catalogue management.
func RegisterAdminRoutes(r *gin.Engine, sh *handlers.SchedulingHandler, th *handlers.TechnicianHandler) {
	api := r.Group("/api/admin")
	api.Use(middleware.AdminAuthMiddleware())
	{
		api.GET("/bookings/:id/swap-candidates", sh.EligibleForSwapHandler)
		api.POST("/bookings/:id/reassign", sh.ReassignBookingHandler)
		api.POST("/bookings/:id/status", sh.AdvanceStatusHandler)
		api.GET("/route-optimizations", sh.RouteOptimizationsHandler)

		api.GET("/technicians", th.ListTechniciansHandler)
		api.POST("/technicians", th.CreateTechnicianHandler)
		api.GET("/technicians/:id", th.GetTechnicianHandler)
		api.DELETE("/technicians/:id", th.DeactivateTechnicianHandler)
		api.POST("/technicians/:id/time-off", sh.BlockTimeOffHandler)
		api.GET("/technicians/:id/schedule", sh.DayScheduleHandler)

		api.POST("/services", th.CreateServiceHandler)
	}
}

// RegisterCatalogueRoutes registers the public service catalogue.
func RegisterCatalogueRoutes(r *gin.Engine, th *handlers.TechnicianHandler) {
	r.GET("/api/services", th.ListServicesHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// CORSConfig is the shared CORS policy for browser clients.
func CORSConfig() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Actor"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}
