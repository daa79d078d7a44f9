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
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers/delete_appointment"
	deleteSlotsConfigHandler "github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers/delete_slots_config"
	getAppointmentHandler "github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers/get_available_slots"
	getClinicConfigHandler "github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers/get_clinic_config"
	getDentistAppointmentsHandler "github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers/get_dentist_appointments"
	getDentistPatientsHandler "github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers/get_dentist_patients"
	getDentistServicesHandler "github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers/get_dentist_services"
	getPatientHandler "github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers/get_patient"
	updateAppointmentHandler "github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers/update_appointment"
	updateClinicScheduleHandler "github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers/update_clinic_schedule"
	upsertSlotsConfigHandler "github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers/upsert_slots_config"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/api/middleware"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/config"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/reservation"
	appointmentRepo "github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/storage/appointment"
	configRepo "github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/storage/clinicconfig"
	patientRepo "github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/storage/patient"
	serviceRepo "github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/storage/service"
	appointmentsService "github.com/ilyassrachouady/rdvdb-booking-service/internal/service/appointments"
	catalogService "github.com/ilyassrachouady/rdvdb-booking-service/internal/service/catalog"
	clinicConfigService "github.com/ilyassrachouady/rdvdb-booking-service/internal/service/clinicconfig"
	patientsService "github.com/ilyassrachouady/rdvdb-booking-service/internal/service/patients"
	createAppointmentUC "github.com/ilyassrachouady/rdvdb-booking-service/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/ilyassrachouady/rdvdb-booking-service/internal/usecase/get_available_slots"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/dbmetrics"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/logger"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/metrics"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/simpletxmanager"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/txmanager"
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

	log.Info("Starting rdvdb-booking-service...")
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

	// Подключаемся к Redis (мягкие резервации слотов)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	reservationStore := reservation.NewStore(
		redisClient,
		time.Duration(cfg.Booking.ReservationTTLSeconds)*time.Second,
		reservation.RealTimeProvider{},
	)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		patientRepository     *patientRepo.Repository
		serviceRepository     *serviceRepo.Repository
		configRepository      *configRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		patientRepository = patientRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		appointmentRepository = appointmentRepo.NewRepository(db)
		patientRepository = patientRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	patientsSvc := patientsService.NewService(patientRepository, log)
	catalogSvc := catalogService.NewService(serviceRepository, log)
	clinicConfigSvc := clinicConfigService.NewService(configRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		patientRepository,
		serviceRepository,
		configRepository,
		txMgr,
		reservationStore,
		cfg.Booking.PhoneRegion,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		configRepository,
		serviceRepository,
		reservationStore,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getDentistAppointments := getDentistAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getDentistPatients := getDentistPatientsHandler.NewHandler(patientsSvc, log)
	getPatient := getPatientHandler.NewHandler(patientsSvc, log)
	getDentistServices := getDentistServicesHandler.NewHandler(catalogSvc, log)
	getClinicConfig := getClinicConfigHandler.NewHandler(clinicConfigSvc, log)
	updateClinicSchedule := updateClinicScheduleHandler.NewHandler(clinicConfigSvc, log)
	upsertSlotsConfig := upsertSlotsConfigHandler.NewHandler(clinicConfigSvc, log)
	deleteSlotsConfig := deleteSlotsConfigHandler.NewHandler(clinicConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Получение доступных слотов для записи
	api.HandleFunc("/dentists/{dentistId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог услуг клиники
	api.HandleFunc("/dentists/{dentistId}/services",
		getDentistServices.Handle).Methods(http.MethodGet)

	// Конфигурация клиники (расписание + настройки слотов)
	api.HandleFunc("/dentists/{dentistId}/config",
		getClinicConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Приёмы ---
	// Создание приёма
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение приёма по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Изменение приёма (статус, заметки)
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)

	// Отмена приёма
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Физическое удаление приёма
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Управление клиникой (для персонала) ---
	// Журнал приёмов клиники
	protected.HandleFunc("/dentists/{dentistId}/appointments", getDentistAppointments.Handle).Methods(http.MethodGet)

	// Картотека пациентов клиники
	protected.HandleFunc("/dentists/{dentistId}/patients", getDentistPatients.Handle).Methods(http.MethodGet)

	// Карточка пациента
	protected.HandleFunc("/patients/{patientId}", getPatient.Handle).Methods(http.MethodGet)

	// Обновление недельного расписания
	protected.HandleFunc("/dentists/{dentistId}/schedule", updateClinicSchedule.Handle).Methods(http.MethodPut)

	// Создание/обновление и удаление конфигурации слотов
	protected.HandleFunc("/dentists/{dentistId}/slots-config", upsertSlotsConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/dentists/{dentistId}/slots-config", deleteSlotsConfig.Handle).Methods(http.MethodDelete)

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
