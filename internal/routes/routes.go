package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-agenda-server/internal/config"
	"clinic-agenda-server/internal/handlers"
	"clinic-agenda-server/internal/middleware"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	clinicHandler := handlers.NewClinicHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)
	billingHandler := handlers.NewBillingHandler(db, cfg)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// Signature-verified, not session-authenticated
		public.POST("/webhooks/stripe", billingHandler.StripeWebhook)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// Clinic creation is the one clinic route usable before a binding exists
		private.POST("/clinics", clinicHandler.CreateClinic)

		// Checkout needs a user but not a clinic
		private.POST("/billing/checkout-session", billingHandler.CreateCheckoutSession)

		// Everything below is scoped to the session clinic
		clinicScoped := private.Group("")
		clinicScoped.Use(middleware.RequireClinic(db))
		{
			clinicScoped.GET("/clinic", clinicHandler.GetClinic)

			doctorRoutes := clinicScoped.Group("/doctors")
			{
				doctorRoutes.POST("", doctorHandler.UpsertDoctor)
				doctorRoutes.GET("", doctorHandler.GetDoctors)
				doctorRoutes.GET("/:id", doctorHandler.GetDoctorByID)
				doctorRoutes.DELETE("/:id", doctorHandler.DeleteDoctor)
			}

			patientRoutes := clinicScoped.Group("/patients")
			{
				patientRoutes.POST("", patientHandler.UpsertPatient)
				patientRoutes.GET("", patientHandler.GetPatients)
				patientRoutes.GET("/:id", patientHandler.GetPatientByID)
				patientRoutes.DELETE("/:id", patientHandler.DeletePatient)
			}

			appointmentRoutes := clinicScoped.Group("/appointments")
			{
				appointmentRoutes.GET("/available-times", appointmentHandler.GetAvailableTimes)
				appointmentRoutes.POST("", appointmentHandler.UpsertAppointment)
				appointmentRoutes.GET("", appointmentHandler.GetAppointments)
				appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
			}

			clinicScoped.GET("/dashboard", dashboardHandler.GetDashboard)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
