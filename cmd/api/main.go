package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/config"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/email"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler"
	adminHandler "github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler/admin"
	authHandler "github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler/auth"
	doctorHandler "github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler/doctor"
	patientHandler "github.com/AnshVerma23f3001159/MAD-1-HMS/internal/handler/patient"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/middleware"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/repository/postgres"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/router"
	appointmentService "github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/appointment"
	auditService "github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/audit"
	authService "github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/auth"
	doctorService "github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/doctor"
	eventService "github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/event"
	notificationService "github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/notification"
	patientService "github.com/AnshVerma23f3001159/MAD-1-HMS/internal/service/patient"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/auth"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/logger"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/metrics"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	hasher := security.NewBcryptHasher(0)
	if err := postgres.EnsureDefaultAdmin(ctx, db, hasher); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default admin")
	}

	// Repositories
	accountRepo := postgres.NewAccountRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	treatmentRepo := postgres.NewTreatmentRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	appMetrics := metrics.NewMetrics("hms")
	tokens := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	auditor := auditService.NewService(auditRepo)
	events := eventService.NewService(outboxRepo)

	var sender email.Sender = email.NopSender{}
	if cfg.SMTP.Enabled {
		sender = email.NewGomailSender(cfg.SMTP.ToSenderConfig())
	}
	notifier := notificationService.NewService(accountRepo, sender)

	authSvc := authService.NewService(accountRepo, patientRepo, hasher, tokens, auditor)
	doctorSvc := doctorService.NewService(doctorRepo, accountRepo, hasher, auditor)
	patientSvc := patientService.NewService(patientRepo)
	appointmentSvc := appointmentService.NewService(
		appointmentRepo,
		doctorRepo,
		patientRepo,
		treatmentRepo,
		events,
		notifier,
		auditor,
		appLogger,
	).WithMetrics(appMetrics)

	// Handlers
	authMW := middleware.NewAuthMiddleware(tokens)
	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	adminH := adminHandler.NewHandler(doctorSvc, patientSvc, appointmentSvc, auditor)
	doctorH := doctorHandler.NewHandler(doctorSvc, appointmentSvc)
	patientH := patientHandler.NewHandler(patientSvc, doctorSvc, appointmentSvc)

	requestTimeout := cfg.Server.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	rps := cfg.RateLimit.RequestsPerSecond
	if rps <= 0 {
		rps = 50
	}
	burst := cfg.RateLimit.Burst
	if burst <= 0 {
		burst = 100
	}

	r := router.NewRouter(authMW, authH, adminH, doctorH, patientH, h, router.Config{
		RateLimitRPS:  rps,
		RateBurst:     burst,
		Timeout:       requestTimeout,
		CORSConfig:    middleware.DefaultCORSConfig(),
		MetricsPrefix: "hms_http",
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
