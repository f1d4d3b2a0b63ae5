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

	approveRescheduleHandler "github.com/Mahamundra/Kalbook-sub000/internal/api/handlers/approve_reschedule"
	cancelAppointmentHandler "github.com/Mahamundra/Kalbook-sub000/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/Mahamundra/Kalbook-sub000/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/Mahamundra/Kalbook-sub000/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/Mahamundra/Kalbook-sub000/internal/api/handlers/get_availability"
	getBusinessAppointmentsHandler "github.com/Mahamundra/Kalbook-sub000/internal/api/handlers/get_business_appointments"
	getCustomerAppointmentsHandler "github.com/Mahamundra/Kalbook-sub000/internal/api/handlers/get_customer_appointments"
	getSettingsHandler "github.com/Mahamundra/Kalbook-sub000/internal/api/handlers/get_settings"
	rejectRescheduleHandler "github.com/Mahamundra/Kalbook-sub000/internal/api/handlers/reject_reschedule"
	requestRescheduleHandler "github.com/Mahamundra/Kalbook-sub000/internal/api/handlers/request_reschedule"
	updateSettingsHandler "github.com/Mahamundra/Kalbook-sub000/internal/api/handlers/update_settings"
	"github.com/Mahamundra/Kalbook-sub000/internal/api/middleware"
	"github.com/Mahamundra/Kalbook-sub000/internal/config"
	activityRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/activity"
	appointmentRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/appointment"
	rescheduleRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/reschedule"
	settingsRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/settings"
	catalogServiceClient "github.com/Mahamundra/Kalbook-sub000/internal/integrations/catalogservice"
	customerServiceClient "github.com/Mahamundra/Kalbook-sub000/internal/integrations/customerservice"
	appointmentsService "github.com/Mahamundra/Kalbook-sub000/internal/service/appointments"
	settingsService "github.com/Mahamundra/Kalbook-sub000/internal/service/settings"
	approveRescheduleUC "github.com/Mahamundra/Kalbook-sub000/internal/usecase/approve_reschedule"
	createAppointmentUC "github.com/Mahamundra/Kalbook-sub000/internal/usecase/create_appointment"
	getAvailabilityUC "github.com/Mahamundra/Kalbook-sub000/internal/usecase/get_availability"
	rejectRescheduleUC "github.com/Mahamundra/Kalbook-sub000/internal/usecase/reject_reschedule"
	requestRescheduleUC "github.com/Mahamundra/Kalbook-sub000/internal/usecase/request_reschedule"
	"github.com/Mahamundra/Kalbook-sub000/pkg/dbmetrics"
	"github.com/Mahamundra/Kalbook-sub000/pkg/logger"
	"github.com/Mahamundra/Kalbook-sub000/pkg/metrics"
	"github.com/Mahamundra/Kalbook-sub000/pkg/simpletxmanager"
	"github.com/Mahamundra/Kalbook-sub000/pkg/txmanager"
)

// TxManager объединяет оба режима транзакций, используемых сервисом
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting Kalbook scheduling service...")
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
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	customerClient := customerServiceClient.NewClient(
		cfg.CustomerService.URL,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, CustomerService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.CustomerService.URL, cfg.CustomerService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		rescheduleRepository  *rescheduleRepo.Repository
		settingsRepository    *settingsRepo.Repository
		activityRepository    *activityRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		rescheduleRepository = rescheduleRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		activityRepository = activityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		rescheduleRepository = rescheduleRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		activityRepository = activityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		activityRepository,
		catalogClient,
		txMgr,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		catalogClient,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		appointmentRepository,
		settingsRepository,
		catalogClient,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		settingsRepository,
		activityRepository,
		catalogClient,
		customerClient,
		txMgr,
		log,
	)
	requestRescheduleUseCase := requestRescheduleUC.NewUseCase(
		appointmentRepository,
		rescheduleRepository,
		settingsRepository,
		activityRepository,
		txMgr,
		log,
	)
	approveRescheduleUseCase := approveRescheduleUC.NewUseCase(
		appointmentRepository,
		rescheduleRepository,
		settingsRepository,
		activityRepository,
		catalogClient,
		txMgr,
		log,
	)
	rejectRescheduleUseCase := rejectRescheduleUC.NewUseCase(
		appointmentRepository,
		rescheduleRepository,
		activityRepository,
		catalogClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentSvc, log)
	getBusinessAppointments := getBusinessAppointmentsHandler.NewHandler(appointmentSvc, log)
	requestReschedule := requestRescheduleHandler.NewHandler(requestRescheduleUseCase, log)
	approveReschedule := approveRescheduleHandler.NewHandler(approveRescheduleUseCase, log)
	rejectReschedule := rejectRescheduleHandler.NewHandler(rejectRescheduleUseCase, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
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

	// Доступные слоты для записи
	api.HandleFunc("/businesses/{businessId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Настройки расписания бизнеса
	api.HandleFunc("/businesses/{businessId}/settings",
		getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/customers/{customerId}/appointments", getCustomerAppointments.Handle).Methods(http.MethodGet)

	// --- Переносы ---
	// Запрос переноса записи
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", requestReschedule.Handle).Methods(http.MethodPost)

	// Одобрение переноса (для менеджеров)
	protected.HandleFunc("/reschedules/{requestId}/approve", approveReschedule.Handle).Methods(http.MethodPost)

	// Отклонение переноса (для менеджеров)
	protected.HandleFunc("/reschedules/{requestId}/reject", rejectReschedule.Handle).Methods(http.MethodPost)

	// --- Управление бизнесом (для менеджеров) ---
	// Список записей бизнеса
	protected.HandleFunc("/businesses/{businessId}/appointments", getBusinessAppointments.Handle).Methods(http.MethodGet)

	// Обновление настроек расписания
	protected.HandleFunc("/businesses/{businessId}/settings", updateSettings.Handle).Methods(http.MethodPut)

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
