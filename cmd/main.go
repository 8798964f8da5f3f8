package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/cancel_reservation"
	cancelSelectionHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/cancel_selection"
	checkConflictsHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/check_conflicts"
	closeSessionHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/close_session"
	commitBookingsHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/commit_bookings"
	getDomainConfigHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/get_domain_config"
	getGridHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/get_grid"
	getReservationHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/get_reservation"
	getSelectionHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/get_selection"
	listReservationsHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/list_reservations"
	navigateSessionHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/navigate_session"
	openSessionHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/open_session"
	pointerEventHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/pointer_event"
	selectCellsHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/select_cells"
	unlockSessionHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/unlock_session"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ResourceBooking/internal/config"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
	reservationCache "github.com/m04kA/SMC-ResourceBooking/internal/infra/cache/reservations"
	"github.com/m04kA/SMC-ResourceBooking/internal/infra/eventbus"
	reservationRepo "github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ResourceBooking/internal/integrations/notifier"
	reservationsService "github.com/m04kA/SMC-ResourceBooking/internal/service/reservations"
	sessionsService "github.com/m04kA/SMC-ResourceBooking/internal/service/sessions"
	checkConflictsUC "github.com/m04kA/SMC-ResourceBooking/internal/usecase/check_conflicts"
	commitBookingsUC "github.com/m04kA/SMC-ResourceBooking/internal/usecase/commit_bookings"
	getGridUC "github.com/m04kA/SMC-ResourceBooking/internal/usecase/get_grid"
	prepareBookingUC "github.com/m04kA/SMC-ResourceBooking/internal/usecase/prepare_booking"
	"github.com/m04kA/SMC-ResourceBooking/pkg/logger"
	"github.com/m04kA/SMC-ResourceBooking/pkg/metrics"
)

const defaultConfigPath = "configs/config.toml"

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-ResourceBooking...")
	log.Info("Configuration loaded from %s (domains=%v)", configPath, cfg.DomainNames())

	// Доменные счётчики нужны use case'ам всегда; наружу они публикуются только при включённых метриках
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)

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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Сетки доменов строятся один раз из конфигурации
	domainConfigs, err := cfg.DomainConfigs()
	if err != nil {
		log.Fatal("Invalid domain configuration: %v", err)
	}
	grids, err := grid.NewRegistry(domainConfigs, &grid.RealTimeProvider{})
	if err != nil {
		log.Fatal("Failed to build domain grids: %v", err)
	}

	// Хранилище и кэш списка бронирований
	reservationRepository := reservationRepo.NewRepository(db)

	backend, closeBackend, err := newCacheBackend(cfg.Cache)
	if err != nil {
		log.Fatal("Failed to initialize cache: %v", err)
	}
	defer closeBackend.Close()

	cache := reservationCache.New(
		reservationRepository,
		backend,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		metricsCollector,
		log,
	)
	log.Info("Reservation cache initialized (backend=%s, ttl=%ds)", cfg.Cache.Backend, cfg.Cache.TTLSeconds)

	// Транспорт подтверждений
	confirmations, closeNotifier, err := newNotifier(cfg.Notifier, log)
	if err != nil {
		log.Fatal("Failed to initialize notifier: %v", err)
	}
	defer closeNotifier.Close()

	// Инициализируем use cases
	prepareBookingUseCase := prepareBookingUC.NewUseCase(grids, log)
	checkConflictsUseCase := checkConflictsUC.NewUseCase(cache, grids, metricsCollector, log)
	commitBookingsUseCase := commitBookingsUC.NewUseCase(
		reservationRepository,
		cache,
		confirmations,
		metricsCollector,
		log,
	)
	getGridUseCase := getGridUC.NewUseCase(cache, grids, log)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, cache, grids, log)
	sessionSvc := sessionsService.NewService(
		grids,
		cache,
		prepareBookingUseCase,
		checkConflictsUseCase,
		commitBookingsUseCase,
		metricsCollector,
		sessionsService.Config{
			AdminPasscode: cfg.Session.AdminPasscode,
			IdleTTL:       time.Duration(cfg.Session.IdleTTLMinutes) * time.Minute,
		},
		log,
	)

	// Инициализируем handlers
	getDomainConfig := getDomainConfigHandler.NewHandler(grids, log)
	getGrid := getGridHandler.NewHandler(getGridUseCase, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)

	openSession := openSessionHandler.NewHandler(sessionSvc, log)
	closeSession := closeSessionHandler.NewHandler(sessionSvc, log)
	navigateSession := navigateSessionHandler.NewHandler(sessionSvc, log)
	unlockSession := unlockSessionHandler.NewHandler(sessionSvc, log)
	pointerEvent := pointerEventHandler.NewHandler(sessionSvc, log)
	getSelection := getSelectionHandler.NewHandler(sessionSvc, log)
	selectCells := selectCellsHandler.NewHandler(sessionSvc, log)
	cancelSelection := cancelSelectionHandler.NewHandler(sessionSvc, log)
	checkConflicts := checkConflictsHandler.NewHandler(sessionSvc, log)
	commitBookings := commitBookingsHandler.NewHandler(sessionSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Сетка и бронирования ---
	api.HandleFunc("/domains/{domain}/config", getDomainConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/domains/{domain}/grid", getGrid.Handle).Methods(http.MethodGet)
	api.HandleFunc("/domains/{domain}/reservations", listReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Экземпляры сетки ---
	api.HandleFunc("/domains/{domain}/sessions", openSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}", closeSession.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{sessionId}/view", navigateSession.Handle).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{sessionId}/unlock", unlockSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/pointer", pointerEvent.Handle).Methods(http.MethodPost)

	// --- Выделение и отправка формы ---
	api.HandleFunc("/sessions/{sessionId}/selection", getSelection.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}/selection", selectCells.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/selection", cancelSelection.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{sessionId}/check", checkConflicts.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/commit", commitBookings.Handle).Methods(http.MethodPost)

	// Уборка простаивающих сессий
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go sessionSvc.RunJanitor(janitorCtx, time.Duration(cfg.Session.JanitorInterval)*time.Second)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	stopJanitor()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully (open sessions dropped: %d)", sessionSvc.Count())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newCacheBackend выбирает хранилище кэша по конфигурации
func newCacheBackend(cfg config.CacheConfig) (reservationCache.Backend, io.Closer, error) {
	if cfg.Backend != config.CacheRedis {
		return reservationCache.NewMemoryBackend(&reservationCache.RealTimeProvider{}), nopCloser{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
	}

	return reservationCache.NewRedisBackend(client), client, nil
}

// newNotifier выбирает транспорт подтверждений по конфигурации
func newNotifier(cfg config.NotifierConfig, log *logger.Logger) (commitBookingsUC.Notifier, io.Closer, error) {
	switch cfg.Transport {
	case config.NotifierHTTP:
		client := notifier.NewClient(
			cfg.URL,
			time.Duration(cfg.Timeout)*time.Second,
			notifier.BreakerSettings{
				FailureThreshold: cfg.FailureThreshold,
				OpenTimeout:      time.Duration(cfg.OpenTimeout) * time.Second,
			},
			log,
		)
		log.Info("Notifier initialized (transport=http, url=%s, timeout=%ds)", cfg.URL, cfg.Timeout)
		return client, nopCloser{}, nil

	case config.NotifierAMQP:
		publisher, err := eventbus.NewPublisher(cfg.AMQPURL, cfg.Exchange, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Notifier initialized (transport=amqp, exchange=%s)", cfg.Exchange)
		return publisher, publisher, nil

	default:
		log.Info("Notifier disabled, confirmations are only logged")
		return notifier.NewNop(log), nopCloser{}, nil
	}
}
