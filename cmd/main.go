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

	createAppointmentHandler "github.com/m04kA/appointy-booking/internal/api/handlers/create_appointment"
	createBookingHandler "github.com/m04kA/appointy-booking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/appointy-booking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/appointy-booking/internal/api/handlers/get_booking"
	getProviderRequestsHandler "github.com/m04kA/appointy-booking/internal/api/handlers/get_provider_requests"
	getScheduleHandler "github.com/m04kA/appointy-booking/internal/api/handlers/get_schedule"
	getUserAppointmentsHandler "github.com/m04kA/appointy-booking/internal/api/handlers/get_user_appointments"
	getUserBookingsHandler "github.com/m04kA/appointy-booking/internal/api/handlers/get_user_bookings"
	getUserCalendarHandler "github.com/m04kA/appointy-booking/internal/api/handlers/get_user_calendar"
	listProvidersHandler "github.com/m04kA/appointy-booking/internal/api/handlers/list_providers"
	listServicesHandler "github.com/m04kA/appointy-booking/internal/api/handlers/list_services"
	loginHandler "github.com/m04kA/appointy-booking/internal/api/handlers/login"
	registerHandler "github.com/m04kA/appointy-booking/internal/api/handlers/register"
	registerProviderHandler "github.com/m04kA/appointy-booking/internal/api/handlers/register_provider"
	resetScheduleHandler "github.com/m04kA/appointy-booking/internal/api/handlers/reset_schedule"
	setProviderAvailabilityHandler "github.com/m04kA/appointy-booking/internal/api/handlers/set_provider_availability"
	toggleDayHandler "github.com/m04kA/appointy-booking/internal/api/handlers/toggle_day"
	toggleSlotHandler "github.com/m04kA/appointy-booking/internal/api/handlers/toggle_slot"
	transitionBookingHandler "github.com/m04kA/appointy-booking/internal/api/handlers/transition_booking"
	updateBlackoutDatesHandler "github.com/m04kA/appointy-booking/internal/api/handlers/update_blackout_dates"
	updateScheduleHandler "github.com/m04kA/appointy-booking/internal/api/handlers/update_schedule"
	"github.com/m04kA/appointy-booking/internal/api/middleware"
	"github.com/m04kA/appointy-booking/internal/config"
	"github.com/m04kA/appointy-booking/internal/domain"
	appointmentRepo "github.com/m04kA/appointy-booking/internal/infra/storage/appointment"
	"github.com/m04kA/appointy-booking/internal/infra/storage/migrations"
	"github.com/m04kA/appointy-booking/internal/infra/storage/projection"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	scheduleRepo "github.com/m04kA/appointy-booking/internal/infra/storage/schedule"
	serviceCatalogRepo "github.com/m04kA/appointy-booking/internal/infra/storage/servicecatalog"
	userRepo "github.com/m04kA/appointy-booking/internal/infra/storage/user"
	accountsService "github.com/m04kA/appointy-booking/internal/service/accounts"
	appointmentsService "github.com/m04kA/appointy-booking/internal/service/appointments"
	availabilityService "github.com/m04kA/appointy-booking/internal/service/availability"
	bookingsService "github.com/m04kA/appointy-booking/internal/service/bookings"
	directoryService "github.com/m04kA/appointy-booking/internal/service/directory"
	identityService "github.com/m04kA/appointy-booking/internal/service/identity"
	"github.com/m04kA/appointy-booking/internal/service/ledger"
	createBookingUC "github.com/m04kA/appointy-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/appointy-booking/internal/usecase/get_available_slots"
	transitionBookingUC "github.com/m04kA/appointy-booking/internal/usecase/transition_booking"
	"github.com/m04kA/appointy-booking/pkg/dbmetrics"
	"github.com/m04kA/appointy-booking/pkg/kvstore"
	"github.com/m04kA/appointy-booking/pkg/logger"
	"github.com/m04kA/appointy-booking/pkg/metrics"
	"github.com/m04kA/appointy-booking/pkg/session"
	"github.com/m04kA/appointy-booking/pkg/txmanager"
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

	log.Info("Starting appointy-booking...")
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	if cfg.Database.AutoMigrate {
		if err := migrations.Apply(context.Background(), wrappedDB); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database schema is up to date")
	}

	// Хранилище проекций и расписаний
	var store kvstore.Store
	switch cfg.Redis.Driver {
	case "memory":
		store = kvstore.NewMemoryStore()
		log.Warn("Using in-memory kv store: bookings and schedules are lost on restart")
	default:
		redisClient, err := kvstore.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		store = kvstore.NewRedisStore(redisClient, cfg.Redis.KeyPrefix)
		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	}
	if cfg.Metrics.Enabled {
		store = kvstore.WithMetrics(store, metricsCollector)
	}

	// Календарь и окно записи
	closedDay, err := cfg.Booking.Weekday()
	if err != nil {
		log.Fatal("Invalid booking config: %v", err)
	}
	calendar, err := domain.NewCalendar(closedDay, cfg.Booking.Holidays)
	if err != nil {
		log.Fatal("Invalid holidays: %v", err)
	}
	window := cfg.Booking.Window()

	// Инициализируем репозитории
	userRepository := userRepo.NewRepository(wrappedDB)
	providerRepository := providerRepo.NewRepository(wrappedDB)
	serviceRepository := serviceCatalogRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)

	userBookings := projection.NewUserBookingRepository(store)
	providerRequests := projection.NewProviderRequestRepository(store)
	userCalendar := projection.NewCalendarRepository(store)
	schedules := scheduleRepo.NewRepository(store)

	sqlTxManager := txmanager.NewTransactionManager(wrappedDB)
	kvTxManager := kvstore.NewTransactionManager(store)

	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTL())

	// Инициализируем сервисы
	bookingLedger := ledger.NewLedger(userBookings, providerRequests, userCalendar, kvTxManager, metricsCollector, log)

	accountSvc := accountsService.NewService(userRepository, providerRepository, sqlTxManager, sessions, log)
	directorySvc := directoryService.NewService(serviceRepository, providerRepository, log)
	identitySvc := identityService.NewService(userRepository, providerRepository, log)
	availabilitySvc := availabilityService.NewService(schedules, providerRepository, kvTxManager, calendar, log)
	bookingSvc := bookingsService.NewService(userBookings, providerRequests, userCalendar, bookingLedger, providerRepository, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, providerRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		userBookings,
		bookingLedger,
		providerRepository,
		availabilitySvc,
		kvTxManager,
		window,
		log,
	)

	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		userBookings,
		bookingLedger,
		availabilitySvc,
		kvTxManager,
		window,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		userBookings,
		providerRepository,
		availabilitySvc,
		window,
		log,
	)

	// Инициализируем handlers
	register := registerHandler.NewHandler(accountSvc, log)
	registerProvider := registerProviderHandler.NewHandler(accountSvc, log)
	login := loginHandler.NewHandler(accountSvc, log)
	listServices := listServicesHandler.NewHandler(directorySvc, log)
	listProviders := listProvidersHandler.NewHandler(directorySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(availabilitySvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, identitySvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	transitionBooking := transitionBookingHandler.NewHandler(transitionBookingUseCase, identitySvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getUserCalendar := getUserCalendarHandler.NewHandler(bookingSvc, log)
	getProviderRequests := getProviderRequestsHandler.NewHandler(bookingSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(availabilitySvc, log)
	resetSchedule := resetScheduleHandler.NewHandler(availabilitySvc, log)
	toggleSlot := toggleSlotHandler.NewHandler(availabilitySvc, log)
	toggleDay := toggleDayHandler.NewHandler(availabilitySvc, log)
	updateBlackoutDates := updateBlackoutDatesHandler.NewHandler(availabilitySvc, log)
	setProviderAvailability := setProviderAvailabilityHandler.NewHandler(directorySvc, log)
	createAppointment := createAppointmentHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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

	// --- Аккаунты (с ограничением частоты запросов) ---
	auth := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		auth.Use(limiter.Middleware)
		log.Info("Rate limit enabled for account routes (rps=%.2f, burst=%d)",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	auth.HandleFunc("/register", register.Handle).Methods(http.MethodPost)
	auth.HandleFunc("/register-provider", registerProvider.Handle).Methods(http.MethodPost)
	auth.HandleFunc("/login", login.Handle).Methods(http.MethodPost)

	// --- Каталог ---
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{serviceType}", listProviders.Handle).Methods(http.MethodGet)

	// Свободные слоты провайдера на дату
	api.HandleFunc("/providers/{providerId:[0-9]+}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание провайдера со сводкой
	api.HandleFunc("/providers/{providerId:[0-9]+}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен сессии)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(sessions))

	// --- Бронирования ---
	// Создание заявки
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение заявки во всех представлениях
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Смена статуса: accept, decline, confirm, reject, reschedule, cancel, complete
	protected.HandleFunc("/bookings/{bookingId}/{action}", transitionBooking.Handle).Methods(http.MethodPost)

	// История и календарь пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/calendar", getUserCalendar.Handle).Methods(http.MethodGet)

	// --- Провайдер ---
	// Очередь заявок
	protected.HandleFunc("/providers/{providerId:[0-9]+}/requests", getProviderRequests.Handle).Methods(http.MethodGet)

	// Управление расписанием
	protected.HandleFunc("/providers/{providerId:[0-9]+}/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId:[0-9]+}/schedule", resetSchedule.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/providers/{providerId:[0-9]+}/schedule/toggle-slot", toggleSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{providerId:[0-9]+}/schedule/toggle-day", toggleDay.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{providerId:[0-9]+}/blackout-dates", updateBlackoutDates.Handle).Methods(http.MethodPut)

	// Прием новых заявок вкл/выкл
	protected.HandleFunc("/providers/{providerId:[0-9]+}/availability", setProviderAvailability.Handle).Methods(http.MethodPut)

	// --- Записи на прием ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/user/{userId}", getUserAppointments.Handle).Methods(http.MethodGet)

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
