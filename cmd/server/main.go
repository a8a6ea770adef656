package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chords-academy/chords-crm-backend/internal/biometric"
	"github.com/chords-academy/chords-crm-backend/internal/config"
	"github.com/chords-academy/chords-crm-backend/internal/database"
	"github.com/chords-academy/chords-crm-backend/internal/handler"
	"github.com/chords-academy/chords-crm-backend/internal/logger"
	"github.com/chords-academy/chords-crm-backend/internal/notifier"
	"github.com/chords-academy/chords-crm-backend/internal/repository"
	"github.com/chords-academy/chords-crm-backend/internal/router"
	"github.com/chords-academy/chords-crm-backend/internal/service"
	"github.com/chords-academy/chords-crm-backend/internal/validator"
	"github.com/chords-academy/chords-crm-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Chords CRM Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)
	instrumentRepo := repository.NewInstrumentRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	notificationLogRepo := repository.NewNotificationLogRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)

	// ─── Initialize Notifiers ──────────────────────────────────────────
	whatsapp := notifier.NewWhatsAppNotifier(cfg.Fast2SMSAPIKey)
	email := notifier.NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPPassword)

	// ─── Initialize Biometric Scanner ──────────────────────────────────
	scanner := biometric.NewSimulatedScanner()

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	adminService := service.NewAdminService(adminRepo)
	packageService := service.NewPackageService(packageRepo, instrumentRepo, rdb, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, rdb, log)
	studentService := service.NewStudentService(cfg, studentRepo, attendanceRepo, paymentRepo, packageService, log)
	notificationService := service.NewNotificationService(cfg, studentRepo, paymentRepo, notificationLogRepo, whatsapp, email, rdb, log)
	paymentService := service.NewPaymentService(cfg, paymentRepo, studentRepo, packageService, notificationService, log)
	dashboardService := service.NewDashboardService(cfg, dashboardRepo, studentRepo)
	biometricService := service.NewBiometricService(scanner, enrollmentRepo, studentRepo, attendanceService, log)
	settingService := service.NewSettingService(settingRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, adminService),
		Student:      handler.NewStudentHandler(studentService),
		Attendance:   handler.NewAttendanceHandler(attendanceService),
		Payment:      handler.NewPaymentHandler(paymentService),
		Catalog:      handler.NewCatalogHandler(packageService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Notification: handler.NewNotificationHandler(notificationService),
		Biometric:    handler.NewBiometricHandler(biometricService),
		Setting:      handler.NewSettingHandler(settingService),
		System:       handler.NewSystemHandler(rdb, log),
		WS:           handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	notificationLogWorker := worker.NewNotificationLogWorker(notificationLogRepo, rdb, log)
	go notificationLogWorker.Start(workerCtx)

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Load the package catalog into Redis BEFORE accepting traffic so
	// payment and registration lookups never hit a cold cache.
	if err := packageService.PrewarmCatalog(ctx); err != nil {
		log.Warn().Err(err).Msg("Cache prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
