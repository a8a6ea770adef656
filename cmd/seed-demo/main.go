package main

import (
	"context"
	"fmt"
	"time"

	"github.com/chords-academy/chords-crm-backend/internal/config"
	"github.com/chords-academy/chords-crm-backend/internal/database"
	"github.com/chords-academy/chords-crm-backend/internal/dateutil"
	"github.com/chords-academy/chords-crm-backend/internal/logger"
	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/chords-academy/chords-crm-backend/internal/notifier"
	"github.com/chords-academy/chords-crm-backend/internal/repository"
	"github.com/chords-academy/chords-crm-backend/internal/service"
)

// seedStudent pairs a registration with the ledger activity to replay on it.
type seedStudent struct {
	register model.RegisterStudentRequest
	payment  float64
	classes  int
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	studentRepo := repository.NewStudentRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)
	instrumentRepo := repository.NewInstrumentRepository(pool)
	notificationLogRepo := repository.NewNotificationLogRepository(pool)

	packageService := service.NewPackageService(packageRepo, instrumentRepo, rdb, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, rdb, log)
	studentService := service.NewStudentService(cfg, studentRepo, attendanceRepo, paymentRepo, packageService, log)
	// Receipts are never sent during seeding; the no-op notifiers keep the
	// wiring honest without touching the WhatsApp gateway.
	notificationService := service.NewNotificationService(cfg, studentRepo, paymentRepo, notificationLogRepo,
		notifier.NewWhatsAppNotifier(""), notifier.NewEmailNotifier("", "", "", ""), rdb, log)
	paymentService := service.NewPaymentService(cfg, paymentRepo, studentRepo, packageService, notificationService, log)

	fmt.Println("=== Seeding Demo Students ===")

	today := dateutil.Today()
	recent := today.AddDate(0, 0, -14).Format(dateutil.ISODate)
	lapsed := today.AddDate(0, 0, -45).Format(dateutil.ISODate)

	seeds := []seedStudent{
		{
			register: model.RegisterStudentRequest{
				FullName: "Ananya Iyer", Age: 12, Mobile: "9876543210",
				Email: "ananya.iyer@example.com", DateOfBirth: "2013-06-14",
				Sex: "Female", Instrument: "Keyboard", ClassPlan: "1 Month - 8",
				StartDate: recent,
			},
			payment: 4000, classes: 3,
		},
		{
			register: model.RegisterStudentRequest{
				FullName: "Rohan Deshmukh", Age: 15, Mobile: "9867001122",
				Email: "rohan.d@example.com", DateOfBirth: "2010-11-02",
				Sex: "Male", Instrument: "Guitar", ClassPlan: "3 Month - 24",
				StartDate: recent,
			},
			payment: 10800, classes: 5,
		},
		{
			register: model.RegisterStudentRequest{
				FullName: "Meera Krishnan", Age: 9, Mobile: "9845098450",
				Email: "meera.k@example.com", DateOfBirth: "2016-02-28",
				Sex: "Female", Instrument: "Carnatic Vocals", ClassPlan: "6 Month - 48",
				StartDate: recent,
			},
			payment: 20400, classes: 8,
		},
		{
			// Expired package; shows up in due alerts immediately.
			register: model.RegisterStudentRequest{
				FullName: "Aditya Rao", Age: 17, Mobile: "9900112233",
				Email: "aditya.rao@example.com", DateOfBirth: "2008-09-19",
				Sex: "Male", Instrument: "Drums", ClassPlan: "1 Month - 8",
				StartDate: lapsed,
			},
			payment: 4000, classes: 8,
		},
		{
			register: model.RegisterStudentRequest{
				FullName: "Sneha Pillai", Age: 21, Mobile: "9811223344",
				Email: "sneha.pillai@example.com", DateOfBirth: "2004-04-07",
				Sex: "Female", Instrument: "Violin", ClassPlan: "12 Month - 96",
				StartDate: recent,
			},
			payment: 38400, classes: 4,
		},
	}

	successCount := 0
	for _, seed := range seeds {
		student, err := studentService.Register(ctx, &seed.register)
		if err != nil {
			fmt.Printf("Error registering %s: %v\n", seed.register.FullName, err)
			continue
		}

		if _, err := paymentService.ProcessPayment(ctx, &model.ProcessPaymentRequest{
			StudentID:     student.StudentID,
			Amount:        seed.payment,
			PaymentMethod: "UPI Payment",
			Notes:         "Demo seed payment",
		}); err != nil {
			fmt.Printf("Error recording payment for %s: %v\n", student.StudentID, err)
		}

		for i := 0; i < seed.classes; i++ {
			if _, err := attendanceService.Mark(ctx, student.StudentID, "seed"); err != nil {
				fmt.Printf("Error marking attendance for %s: %v\n", student.StudentID, err)
				break
			}
		}

		successCount++
		fmt.Printf("Seeded %s (%s, %s)\n", student.StudentID, student.FullName, student.ClassPlan)
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, len(seeds))
}
