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

	cancelAppointmentHandler "github.com/m04kA/DPL-BookingService/internal/api/handlers/cancel_appointment"
	checkCancellationHandler "github.com/m04kA/DPL-BookingService/internal/api/handlers/check_cancellation"
	cleanupHandler "github.com/m04kA/DPL-BookingService/internal/api/handlers/cleanup"
	createAppointmentHandler "github.com/m04kA/DPL-BookingService/internal/api/handlers/create_appointment"
	createAvailableDayHandler "github.com/m04kA/DPL-BookingService/internal/api/handlers/create_available_day"
	getAdminAppointmentsHandler "github.com/m04kA/DPL-BookingService/internal/api/handlers/get_admin_appointments"
	getAppointmentHandler "github.com/m04kA/DPL-BookingService/internal/api/handlers/get_appointment"
	getAvailableDaysHandler "github.com/m04kA/DPL-BookingService/internal/api/handlers/get_available_days"
	getAvailableSlotsHandler "github.com/m04kA/DPL-BookingService/internal/api/handlers/get_available_slots"
	getDayZonesHandler "github.com/m04kA/DPL-BookingService/internal/api/handlers/get_day_zones"
	paymentWebhookHandler "github.com/m04kA/DPL-BookingService/internal/api/handlers/payment_webhook"
	sendWhatsAppHandler "github.com/m04kA/DPL-BookingService/internal/api/handlers/send_whatsapp"
	updateAvailableDayHandler "github.com/m04kA/DPL-BookingService/internal/api/handlers/update_available_day"
	"github.com/m04kA/DPL-BookingService/internal/api/middleware"
	"github.com/m04kA/DPL-BookingService/internal/config"
	appointmentRepo "github.com/m04kA/DPL-BookingService/internal/infra/storage/appointment"
	availableDayRepo "github.com/m04kA/DPL-BookingService/internal/infra/storage/availableday"
	mercadoPagoClient "github.com/m04kA/DPL-BookingService/internal/integrations/mercadopago"
	whatsAppClient "github.com/m04kA/DPL-BookingService/internal/integrations/whatsapp"
	appointmentsService "github.com/m04kA/DPL-BookingService/internal/service/appointments"
	availableDaysService "github.com/m04kA/DPL-BookingService/internal/service/availabledays"
	confirmPaymentUC "github.com/m04kA/DPL-BookingService/internal/usecase/confirm_payment"
	createAppointmentUC "github.com/m04kA/DPL-BookingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/DPL-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/DPL-BookingService/pkg/dbmetrics"
	"github.com/m04kA/DPL-BookingService/pkg/logger"
	"github.com/m04kA/DPL-BookingService/pkg/metrics"
	"github.com/m04kA/DPL-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/DPL-BookingService/pkg/txmanager"
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

	log.Info("Starting DPL-BookingService...")
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
	paymentClient := mercadoPagoClient.NewClient(
		mercadoPagoClient.Config{
			BaseURL:     cfg.MercadoPago.BaseURL,
			AccessToken: cfg.MercadoPago.AccessToken,
			SuccessURL:  cfg.MercadoPago.SuccessURL,
			FailureURL:  cfg.MercadoPago.FailureURL,
			PendingURL:  cfg.MercadoPago.PendingURL,
		},
		time.Duration(cfg.MercadoPago.Timeout)*time.Second,
		log,
	)
	whatsappSender := whatsAppClient.NewClient(
		whatsAppClient.Config{
			Enabled: cfg.WhatsApp.Enabled,
			BaseURL: cfg.WhatsApp.BaseURL,
			APIKey:  cfg.WhatsApp.APIKey,
		},
		time.Duration(cfg.WhatsApp.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (MercadoPago=%s timeout=%ds, WhatsApp enabled=%v)",
		cfg.MercadoPago.BaseURL, cfg.MercadoPago.Timeout, cfg.WhatsApp.Enabled)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		availableDayRepository *availableDayRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		availableDayRepository = availableDayRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		availableDayRepository = availableDayRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		whatsappSender,
		log,
	)
	availableDaysSvc := availableDaysService.NewService(
		availableDayRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		availableDayRepository,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		availableDayRepository,
		paymentClient,
		txMgr,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		appointmentRepository,
		paymentClient,
		whatsappSender,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(confirmPaymentUseCase, log)
	getDayZones := getDayZonesHandler.NewHandler(availableDaysSvc, log)
	getAvailableDays := getAvailableDaysHandler.NewHandler(availableDaysSvc, log)
	createAvailableDay := createAvailableDayHandler.NewHandler(availableDaysSvc, log)
	updateAvailableDay := updateAvailableDayHandler.NewHandler(availableDaysSvc, log)
	getAdminAppointments := getAdminAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	checkCancellation := checkCancellationHandler.NewHandler(appointmentsSvc, log)
	sendWhatsApp := sendWhatsAppHandler.NewHandler(appointmentsSvc, log)
	cleanup := cleanupHandler.NewHandler(appointmentsSvc, log)

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
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание записи с платёжной ссылкой
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Платёжный webhook провайдера
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// Услуги, доступные на дату
	api.HandleFunc("/days/{date}/zones", getDayZones.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))

	// --- Доступные дни ---
	admin.HandleFunc("/available-days", getAvailableDays.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/available-days", createAvailableDay.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/available-days/{dayId}", updateAvailableDay.Handle).Methods(http.MethodPut)

	// --- Записи ---
	admin.HandleFunc("/appointments", getAdminAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{appointmentId}/cancellation", checkCancellation.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}/whatsapp", sendWhatsApp.Handle).Methods(http.MethodPost)

	// --- Обслуживание ---
	admin.HandleFunc("/cleanup", cleanup.Handle).Methods(http.MethodPost)

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
