package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appointmentActionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/appointment_action"
	bookSlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/book_slot"
	createAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_availability"
	deleteAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_availability"
	deleteSlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_slot"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getProviderSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_provider_slots"
	listAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_appointments"
	listAvailabilitiesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_availabilities"
	updateAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_availability"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/availability"
	slotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
	identityServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/mailer"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	availabilitiesService "github.com/m04kA/SMC-AppointmentService/internal/service/availabilities"
	slotsService "github.com/m04kA/SMC-AppointmentService/internal/service/slots"
	appointmentActionUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/appointment_action"
	bookSlotUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_slot"
	createAvailabilityUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_availability"
	deleteAvailabilityUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/delete_availability"
	updateAvailabilityUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("IdentityService client initialized (url=%s, timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Почтовый отправитель: SendGrid или заглушка без API-ключа
	var mailClient interface {
		Send(ctx context.Context, subject, body string, recipients []string) error
	}
	if cfg.Mailer.APIKey != "" {
		mailClient = mailer.NewClient(mailer.Config{
			APIKey:    cfg.Mailer.APIKey,
			FromEmail: cfg.Mailer.FromEmail,
			FromName:  cfg.Mailer.FromName,
		}, log)
		log.Info("SendGrid mailer initialized (from=%s)", cfg.Mailer.FromEmail)
	} else {
		mailClient = mailer.NewStub(log)
		log.Info("Mailer API key is empty, using stub mailer")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		availabilityRepository *availabilityRepo.Repository
		slotRepository         *slotRepo.Repository
		appointmentRepository  *appointmentRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		availabilityRepository = availabilityRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	slotsSvc := slotsService.NewService(slotRepository, identityClient, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, identityClient, log)
	availabilitiesSvc := availabilitiesService.NewService(availabilityRepository, log)

	// Инициализируем use cases
	createAvailabilityUseCase := createAvailabilityUC.NewUseCase(
		availabilityRepository,
		slotRepository,
		identityClient,
		txMgr,
		log,
	)
	updateAvailabilityUseCase := updateAvailabilityUC.NewUseCase(
		availabilityRepository,
		slotRepository,
		identityClient,
		txMgr,
		log,
	)
	deleteAvailabilityUseCase := deleteAvailabilityUC.NewUseCase(
		availabilityRepository,
		slotRepository,
		txMgr,
		log,
	)
	bookSlotUseCase := bookSlotUC.NewUseCase(
		slotRepository,
		appointmentRepository,
		identityClient,
		mailClient,
		txMgr,
		log,
	)
	appointmentActionUseCase := appointmentActionUC.NewUseCase(
		appointmentRepository,
		slotRepository,
		identityClient,
		mailClient,
		txMgr,
		appointmentActionUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	createAvailability := createAvailabilityHandler.NewHandler(createAvailabilityUseCase, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(updateAvailabilityUseCase, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(deleteAvailabilityUseCase, log)
	listAvailabilities := listAvailabilitiesHandler.NewHandler(availabilitiesSvc, log)
	getProviderSlots := getProviderSlotsHandler.NewHandler(slotsSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotsSvc, log)
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	appointmentAction := appointmentActionHandler.NewHandler(appointmentActionUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной идентификатор запроса
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты провайдера (витрина записи)
	api.HandleFunc("/providers/{providerId}/slots", getProviderSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Окна доступности (для провайдеров) ---
	protected.HandleFunc("/availabilities", createAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availabilities", listAvailabilities.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/availabilities/{availabilityId}", updateAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/availabilities/{availabilityId}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// --- Слоты ---
	protected.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/slots/{slotId}/book", bookSlot.Handle).Methods(http.MethodPost)

	// --- Записи ---
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/{action}", appointmentAction.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
