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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/salonhq/booking-engine/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/salonhq/booking-engine/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/salonhq/booking-engine/internal/api/handlers/create_booking"
	declineBookingHandler "github.com/salonhq/booking-engine/internal/api/handlers/decline_booking"
	getBookingHandler "github.com/salonhq/booking-engine/internal/api/handlers/get_booking"
	getProviderBookingsHandler "github.com/salonhq/booking-engine/internal/api/handlers/get_provider_bookings"
	getSlotsHandler "github.com/salonhq/booking-engine/internal/api/handlers/get_slots"
	rescheduleBookingHandler "github.com/salonhq/booking-engine/internal/api/handlers/reschedule_booking"
	"github.com/salonhq/booking-engine/internal/api/middleware"
	"github.com/salonhq/booking-engine/internal/config"
	bookingRepo "github.com/salonhq/booking-engine/internal/infra/storage/booking"
	scheduleRepo "github.com/salonhq/booking-engine/internal/infra/storage/schedule"
	calendarSyncClient "github.com/salonhq/booking-engine/internal/integrations/calendarsync"
	"github.com/salonhq/booking-engine/internal/jobs"
	availabilityService "github.com/salonhq/booking-engine/internal/service/availability"
	bookingsService "github.com/salonhq/booking-engine/internal/service/bookings"
	createBookingUC "github.com/salonhq/booking-engine/internal/usecase/create_booking"
	getSlotsUC "github.com/salonhq/booking-engine/internal/usecase/get_slots"
	rescheduleBookingUC "github.com/salonhq/booking-engine/internal/usecase/reschedule_booking"
	"github.com/salonhq/booking-engine/pkg/dbmetrics"
	"github.com/salonhq/booking-engine/pkg/logger"
	"github.com/salonhq/booking-engine/pkg/metrics"
	"github.com/salonhq/booking-engine/pkg/txmanager"
)

func main() {
	// .env опционален, в проде переменные приходят из окружения
	_ = godotenv.Load()

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

	log.Info("Starting booking-engine...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		txMgr              *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = txmanager.NewTransactionManager(dbmetrics.SQLBeginner{DB: db})
	}

	// Клиент внешнего календаря
	var calendarClient availabilityService.CalendarSyncClient
	if cfg.CalendarSync.Enabled {
		calendarClient = calendarSyncClient.NewClient(
			cfg.CalendarSync.URL,
			time.Duration(cfg.CalendarSync.Timeout)*time.Second,
			log,
		)
		log.Info("CalendarSync client initialized (url=%s, timeout=%ds)",
			cfg.CalendarSync.URL, cfg.CalendarSync.Timeout)
	} else {
		calendarClient = &calendarSyncClient.DisabledClient{}
		log.Info("CalendarSync disabled, external busy intervals are empty")
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		bookingRepository,
		scheduleRepository,
		calendarClient,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getSlotsUseCase := getSlotsUC.NewUseCase(
		scheduleRepository,
		availabilitySvc,
		txMgr,
		cfg.Booking.MaxQuerySpanDays,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		availabilitySvc,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		availabilitySvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getSlots := getSlotsHandler.NewHandler(getSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	declineBooking := declineBookingHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)

	// Фоновая задача истечения неподтверждённых бронирований
	var pendingExpiry *jobs.PendingExpiry
	if cfg.Booking.PendingTTLMinutes > 0 {
		pendingExpiry = jobs.NewPendingExpiry(
			bookingRepository,
			time.Duration(cfg.Booking.PendingTTLMinutes)*time.Minute,
			log,
		)
		if err := pendingExpiry.Start(cfg.Booking.ExpiryCronSpec); err != nil {
			log.Fatal("Failed to start pending expiry job: %v", err)
		}
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты
	api.HandleFunc("/providers/{providerId}/event-types/{eventTypeId}/slots",
		getSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Управление бронированием по uid (ссылки из писем клиенту)
	api.HandleFunc("/bookings/{uid}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{uid}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{uid}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Действия провайдера над pending бронированиями
	protected.HandleFunc("/bookings/{uid}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{uid}/decline", declineBooking.Handle).Methods(http.MethodPatch)

	// Список бронирований провайдера
	protected.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)

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

	if pendingExpiry != nil {
		pendingExpiry.Stop()
	}

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
