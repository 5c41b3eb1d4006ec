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

	cancelAppointmentHandler "github.com/salonkit/SK-AvailabilityService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/salonkit/SK-AvailabilityService/internal/api/handlers/create_appointment"
	createScheduleHandler "github.com/salonkit/SK-AvailabilityService/internal/api/handlers/create_schedule"
	getAppointmentHandler "github.com/salonkit/SK-AvailabilityService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/salonkit/SK-AvailabilityService/internal/api/handlers/get_availability"
	getSchedulesHandler "github.com/salonkit/SK-AvailabilityService/internal/api/handlers/get_schedules"
	listAppointmentsHandler "github.com/salonkit/SK-AvailabilityService/internal/api/handlers/list_appointments"
	"github.com/salonkit/SK-AvailabilityService/internal/api/middleware"
	"github.com/salonkit/SK-AvailabilityService/internal/config"
	availabilityCache "github.com/salonkit/SK-AvailabilityService/internal/infra/cache/availability"
	appointmentRepo "github.com/salonkit/SK-AvailabilityService/internal/infra/storage/appointment"
	scheduleRepo "github.com/salonkit/SK-AvailabilityService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/salonkit/SK-AvailabilityService/internal/integrations/catalogservice"
	tenantServiceClient "github.com/salonkit/SK-AvailabilityService/internal/integrations/tenantservice"
	appointmentsService "github.com/salonkit/SK-AvailabilityService/internal/service/appointments"
	schedulesService "github.com/salonkit/SK-AvailabilityService/internal/service/schedules"
	createAppointmentUC "github.com/salonkit/SK-AvailabilityService/internal/usecase/create_appointment"
	getAvailabilityUC "github.com/salonkit/SK-AvailabilityService/internal/usecase/get_availability"
	"github.com/salonkit/SK-AvailabilityService/pkg/dbmetrics"
	"github.com/salonkit/SK-AvailabilityService/pkg/logger"
	"github.com/salonkit/SK-AvailabilityService/pkg/metrics"
	"github.com/salonkit/SK-AvailabilityService/pkg/simpletxmanager"
	"github.com/salonkit/SK-AvailabilityService/pkg/txmanager"
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

	log.Info("Starting SK-AvailabilityService...")
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

	// Тайм-зона по умолчанию для тенантов без своей
	defaultLocation, err := time.LoadLocation(cfg.Availability.DefaultTimezone)
	if err != nil {
		log.Fatal("Failed to load default timezone %q: %v", cfg.Availability.DefaultTimezone, err)
	}

	// Инициализируем интеграционных клиентов
	tenantClient := tenantServiceClient.NewClient(
		cfg.TenantService.URL,
		time.Duration(cfg.TenantService.Timeout)*time.Second,
		log,
	)
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (TenantService=%s timeout=%ds, CatalogService=%s timeout=%ds)",
		cfg.TenantService.URL, cfg.TenantService.Timeout, cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		scheduleRepository    *scheduleRepo.Repository
		appointmentRepository *appointmentRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		scheduleRepository = scheduleRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем кеш доступности (если включен)
	var (
		slotCache      getAvailabilityUC.Cache
		ucInvalidator  createAppointmentUC.CacheInvalidator
		svcInvalidator appointmentsService.CacheInvalidator
	)
	if cfg.Cache.Enabled {
		ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		switch cfg.Cache.Backend {
		case "redis":
			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.Cache.RedisAddr,
				Password: cfg.Cache.RedisPassword,
				DB:       cfg.Cache.RedisDB,
			})
			if err := redisClient.Ping(context.Background()).Err(); err != nil {
				log.Fatal("Failed to ping redis: %v", err)
			}
			defer redisClient.Close()

			c := availabilityCache.NewRedisCache(redisClient, ttl, log)
			slotCache, ucInvalidator, svcInvalidator = c, c, c
			log.Info("Availability cache enabled (backend=redis, addr=%s, ttl=%s)", cfg.Cache.RedisAddr, ttl)
		default:
			c := availabilityCache.NewMemoryCache(ttl, nil)
			slotCache, ucInvalidator, svcInvalidator = c, c, c
			log.Info("Availability cache enabled (backend=memory, ttl=%s)", ttl)
		}
	}

	// Доменные метрики расчета доступности (nil выключает)
	var availabilityMetrics getAvailabilityUC.Metrics
	if cfg.Metrics.Enabled {
		availabilityMetrics = metricsCollector
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		svcInvalidator,
		log,
	)
	schedulesSvc := schedulesService.New(
		scheduleRepository,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		scheduleRepository,
		appointmentRepository,
		tenantClient,
		catalogClient,
		slotCache,
		availabilityMetrics,
		defaultLocation,
		cfg.Availability.DefaultIntervalMinutes,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		scheduleRepository,
		appointmentRepository,
		tenantClient,
		catalogClient,
		txMgr,
		ucInvalidator,
		defaultLocation,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getSchedules := getSchedulesHandler.NewHandler(schedulesSvc, log)
	createSchedule := createScheduleHandler.NewHandler(schedulesSvc, log)

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

	// Расчет доступных слотов
	api.HandleFunc("/tenant/{tenantId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Рабочее расписание тенанта
	api.HandleFunc("/tenant/{tenantId}/schedules",
		getSchedules.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Встречи ---
	// Создание встречи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение встречи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена встречи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Управление тенантом ---
	// Список встреч тенанта
	protected.HandleFunc("/tenant/{tenantId}/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Создание рабочих окон тенанта
	protected.HandleFunc("/tenant/{tenantId}/schedules", createSchedule.Handle).Methods(http.MethodPost)

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
