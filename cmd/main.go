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

	cancelReservationHandler "github.com/huwelijksplanner/HP-BookingService/internal/api/handlers/cancel_reservation"
	createBlockedDateHandler "github.com/huwelijksplanner/HP-BookingService/internal/api/handlers/create_blocked_date"
	createReservationHandler "github.com/huwelijksplanner/HP-BookingService/internal/api/handlers/create_reservation"
	createRuleHandler "github.com/huwelijksplanner/HP-BookingService/internal/api/handlers/create_rule"
	deleteBlockedDateHandler "github.com/huwelijksplanner/HP-BookingService/internal/api/handlers/delete_blocked_date"
	deleteRuleHandler "github.com/huwelijksplanner/HP-BookingService/internal/api/handlers/delete_rule"
	getAvailabilityHandler "github.com/huwelijksplanner/HP-BookingService/internal/api/handlers/get_availability"
	getEligibleOfficiantsHandler "github.com/huwelijksplanner/HP-BookingService/internal/api/handlers/get_eligible_officiants"
	getHolderReservationsHandler "github.com/huwelijksplanner/HP-BookingService/internal/api/handlers/get_holder_reservations"
	getReservationHandler "github.com/huwelijksplanner/HP-BookingService/internal/api/handlers/get_reservation"
	listRulesHandler "github.com/huwelijksplanner/HP-BookingService/internal/api/handlers/list_rules"
	"github.com/huwelijksplanner/HP-BookingService/internal/api/middleware"
	"github.com/huwelijksplanner/HP-BookingService/internal/config"
	reservationRepo "github.com/huwelijksplanner/HP-BookingService/internal/infra/storage/reservation"
	resourceRepo "github.com/huwelijksplanner/HP-BookingService/internal/infra/storage/resource"
	scheduleRepo "github.com/huwelijksplanner/HP-BookingService/internal/infra/storage/schedule"
	auditServiceClient "github.com/huwelijksplanner/HP-BookingService/internal/integrations/auditservice"
	ceremonyServiceClient "github.com/huwelijksplanner/HP-BookingService/internal/integrations/ceremonyservice"
	reservationsService "github.com/huwelijksplanner/HP-BookingService/internal/service/reservations"
	scheduleService "github.com/huwelijksplanner/HP-BookingService/internal/service/schedule"
	composeAvailabilityUC "github.com/huwelijksplanner/HP-BookingService/internal/usecase/compose_availability"
	filterOfficiantsUC "github.com/huwelijksplanner/HP-BookingService/internal/usecase/filter_officiants"
	reserveSlotUC "github.com/huwelijksplanner/HP-BookingService/internal/usecase/reserve_slot"
	"github.com/huwelijksplanner/HP-BookingService/pkg/dbmetrics"
	"github.com/huwelijksplanner/HP-BookingService/pkg/logger"
	"github.com/huwelijksplanner/HP-BookingService/pkg/metrics"
	"github.com/huwelijksplanner/HP-BookingService/pkg/simpletxmanager"
	"github.com/huwelijksplanner/HP-BookingService/pkg/txmanager"
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

	log.Info("Starting HP-BookingService...")
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

	// Инициализируем интеграционных клиентов
	ceremonyClient := ceremonyServiceClient.NewClient(
		cfg.CeremonyService.URL,
		time.Duration(cfg.CeremonyService.Timeout)*time.Second,
		log,
	)
	auditClient := auditServiceClient.NewClient(
		cfg.AuditService.URL,
		time.Duration(cfg.AuditService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CeremonyService=%s timeout=%ds, AuditService=%s timeout=%ds)",
		cfg.CeremonyService.URL, cfg.CeremonyService.Timeout, cfg.AuditService.URL, cfg.AuditService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		resourceRepository    *resourceRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		reservationRepository *reservationRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		resourceRepository = resourceRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		resourceRepository,
		log,
	)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		auditClient,
		log,
	)

	// Инициализируем use cases
	composeAvailabilityUseCase := composeAvailabilityUC.NewUseCase(
		resourceRepository,
		scheduleRepository,
		ceremonyClient,
		log,
		cfg.Booking.HorizonDays,
		cfg.Booking.MinSlotMinutes,
	)

	filterOfficiantsUseCase := filterOfficiantsUC.NewUseCase(
		resourceRepository,
		scheduleRepository,
		reservationRepository,
		ceremonyClient,
		log,
		cfg.Booking.MinSlotMinutes,
	)

	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		resourceRepository,
		scheduleRepository,
		reservationRepository,
		ceremonyClient,
		auditClient,
		txMgr,
		log,
		cfg.Booking.MinSlotMinutes,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(composeAvailabilityUseCase, log)
	getEligibleOfficiants := getEligibleOfficiantsHandler.NewHandler(filterOfficiantsUseCase, log)
	createReservation := createReservationHandler.NewHandler(reserveSlotUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getHolderReservations := getHolderReservationsHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	createRule := createRuleHandler.NewHandler(scheduleSvc, log)
	listRules := listRulesHandler.NewHandler(scheduleSvc, log)
	deleteRule := deleteRuleHandler.NewHandler(scheduleSvc, log)
	createBlockedDate := createBlockedDateHandler.NewHandler(scheduleSvc, log)
	deleteBlockedDate := deleteBlockedDateHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все маршруты требуют X-User-ID header
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Доступность ---
	// Окна доступности ресурса на периоде
	protected.HandleFunc("/resources/{resourceId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Подбор регистраторов для церемонии
	protected.HandleFunc("/officiants/eligible", getEligibleOfficiants.Handle).Methods(http.MethodGet)

	// --- Резервации ---
	// Резервация слота
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение резервации по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена резервации
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Резервации досье
	protected.HandleFunc("/holders/{holderId}/reservations", getHolderReservations.Handle).Methods(http.MethodGet)

	// --- Управление расписанием ---
	// Правила повторения ресурса
	protected.HandleFunc("/resources/{resourceId}/rules", createRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/resources/{resourceId}/rules", listRules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rules/{ruleId}", deleteRule.Handle).Methods(http.MethodDelete)

	// Блокировки дат ресурса
	protected.HandleFunc("/resources/{resourceId}/blocked-dates", createBlockedDate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/blocked-dates/{blockedDateId}", deleteBlockedDate.Handle).Methods(http.MethodDelete)

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
