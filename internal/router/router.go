package router

import (
	"net/http"
	"time"

	"github.com/chords-academy/chords-crm-backend/internal/config"
	"github.com/chords-academy/chords-crm-backend/internal/handler"
	"github.com/chords-academy/chords-crm-backend/internal/middleware"
	"github.com/chords-academy/chords-crm-backend/internal/response"
	"github.com/chords-academy/chords-crm-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Student      *handler.StudentHandler
	Attendance   *handler.AttendanceHandler
	Payment      *handler.PaymentHandler
	Catalog      *handler.CatalogHandler
	Dashboard    *handler.DashboardHandler
	Notification *handler.NotificationHandler
	Biometric    *handler.BiometricHandler
	Setting      *handler.SettingHandler
	System       *handler.SystemHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/admin/login", handlers.Auth.Login)
		auth.POST("/admin/logout", middleware.RequireAdminJWT(authService), handlers.Auth.Logout)
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Admin Group (JWT + Single Session) ─────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireAdminJWT(authService),
		middleware.CheckAdminSession(authService),
	)
	{
		// Student ledger
		adminAPI.GET("/students", handlers.Student.List)
		adminAPI.POST("/students", handlers.Student.Register)
		adminAPI.GET("/students/due", handlers.Dashboard.DueAlerts)
		adminAPI.GET("/students/:student_id", handlers.Student.Get)
		adminAPI.PUT("/students/:student_id", handlers.Student.Update)
		adminAPI.DELETE("/students/:student_id", handlers.Student.Delete)
		adminAPI.GET("/students/:student_id/attendance", handlers.Attendance.ListByStudent)
		adminAPI.GET("/students/:student_id/payments", handlers.Payment.ListByStudent)
		adminAPI.GET("/students/:student_id/notifications", handlers.Notification.History)

		// Attendance
		adminAPI.POST("/attendance", handlers.Attendance.Mark)
		adminAPI.GET("/attendance/today", handlers.Attendance.ListToday)

		// Payments
		adminAPI.POST("/payments", handlers.Payment.Process)
		adminAPI.GET("/payments/:payment_id", handlers.Payment.Get)

		// Catalog (short-lived client cache; entries change rarely)
		catalogGroup := adminAPI.Group("", middleware.CacheControl(60))
		{
			catalogGroup.GET("/packages", handlers.Catalog.ListPackages)
			catalogGroup.GET("/instruments", handlers.Catalog.ListInstruments)
		}
		adminAPI.POST("/packages", handlers.Catalog.CreatePackage)
		adminAPI.DELETE("/packages/:name", handlers.Catalog.DeactivatePackage)
		adminAPI.POST("/instruments", handlers.Catalog.CreateInstrument)
		adminAPI.DELETE("/instruments/:name", handlers.Catalog.DeactivateInstrument)

		// Dashboard
		adminAPI.GET("/dashboard", handlers.Dashboard.Stats)

		// Notifications
		adminAPI.POST("/notifications/fee-reminder/:student_id", handlers.Notification.SendFeeReminder)
		adminAPI.POST("/notifications/payment-receipt/:payment_id", handlers.Notification.ResendPaymentReceipt)

		// Biometric scanner
		adminAPI.GET("/biometric/status", handlers.Biometric.Status)
		adminAPI.POST("/biometric/connect", handlers.Biometric.Connect)
		adminAPI.POST("/biometric/disconnect", handlers.Biometric.Disconnect)
		adminAPI.POST("/biometric/enroll", handlers.Biometric.Enroll)
		adminAPI.DELETE("/biometric/enrollments/:student_id", handlers.Biometric.RemoveEnrollment)
		adminAPI.POST("/biometric/identify", handlers.Biometric.IdentifyAndMark)
		adminAPI.GET("/biometric/not-enrolled", handlers.Biometric.ListNotEnrolled)

		// App settings
		settingsGroup := adminAPI.Group("/settings")
		{
			settingsGroup.GET("", handlers.Setting.GetAllSettings)
			settingsGroup.PUT("", handlers.Setting.UpdateSettings)
		}

		// System monitoring
		adminAPI.GET("/system/metrics", handlers.System.SystemMetricsSSE)
	}

	// ─── 3. WebSocket Group (Admin JWT) ────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAdminJWT(authService))
	{
		ws.GET("/admin/attendance", handlers.WS.AttendanceStream)
	}

	return router
}
