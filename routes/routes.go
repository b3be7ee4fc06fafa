package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"askbm-backend/config"
	"askbm-backend/controllers"
	"askbm-backend/utils"
)

func SetupRouter(ct *controllers.Controller, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(config.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     ct.Cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	auth := r.Group("/auth")
	{
		auth.POST("/register", ct.Register)
		auth.POST("/login", ct.Login)
		auth.POST("/guest", ct.Guest)
		auth.POST("/otp", ct.Otp)
		auth.POST("/forgot-password", ct.ForgotPassword)
		auth.POST("/reset-password", ct.ResetPassword)

		auth.Use(utils.AuthMiddleware(ct.Cfg.JWTSecret))
		auth.GET("/me", ct.Me)
		auth.POST("/logout", ct.Logout)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(ct.Cfg.JWTSecret))
	{
		// Business profile
		profile := api.Group("/profile")
		{
			profile.GET("", ct.GetProfile)
			profile.PUT("", ct.UpdateProfile)
			profile.PUT("/notifications", ct.UpdateNotificationSettings)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", ct.CreateService)
			services.GET("", ct.GetServices)
			services.PUT("/:id", ct.UpdateService)
			services.DELETE("/:id", ct.DeleteService)
		}

		// Staff routes
		staff := api.Group("/staff")
		{
			staff.POST("", ct.CreateStaff)
			staff.GET("", ct.GetStaff)
			staff.PUT("/:id", ct.UpdateStaff)
			staff.DELETE("/:id", ct.DeleteStaff)
			staff.PUT("/:id/attendance", ct.SetAttendance)
		}

		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", ct.CreateCustomer)
			customers.GET("", ct.GetCustomers)
			customers.GET("/lookup", ct.LookupCustomerByPhone)
			customers.GET("/:id", ct.GetCustomer)
			customers.PUT("/:id", ct.UpdateCustomer)
		}

		// Inventory routes
		inventory := api.Group("/inventory")
		{
			inventory.POST("", ct.CreateInventoryItem)
			inventory.GET("", ct.GetInventory)
			inventory.PUT("/:id", ct.UpdateInventoryItem)
			inventory.POST("/:id/adjust", ct.AdjustStock)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", ct.BookAppointment)
			appointments.GET("", ct.GetAppointments)
			appointments.PUT("/:id", ct.RescheduleAppointment)
			appointments.PUT("/:id/status", ct.UpdateAppointmentStatus)
		}

		// Billing routes
		invoices := api.Group("/invoices")
		{
			invoices.GET("", ct.GetInvoices)
			invoices.GET("/unbilled", ct.UnbilledAppointments)
			invoices.POST("", ct.GenerateInvoice)
			invoices.POST("/quick-bill", ct.QuickBill)
			invoices.GET("/:id/print", ct.PrintInvoice)
		}

		// Dashboard
		api.GET("/dashboard", ct.GetDashboard)

		// AI assist
		assist := api.Group("/assist")
		{
			assist.POST("/analyze-face", ct.AnalyzeFace)
			assist.GET("/consultations", ct.GetConsultations)
			assist.POST("/marketing-message", ct.MarketingMessage)
			assist.POST("/business-insight", ct.BusinessInsight)
		}

		// Device settings
		settings := api.Group("/settings")
		{
			settings.GET("/language", ct.GetLanguage)
			settings.PUT("/language", ct.SetLanguage)
		}

		// Super-admin, fail closed
		admin := api.Group("/admin")
		{
			admin.GET("/businesses", ct.ListBusinesses)
			admin.PUT("/businesses/:id/approval", ct.SetBusinessApproval)
			admin.GET("/customers", ct.ListAllCustomers)
		}
	}

	return r
}
