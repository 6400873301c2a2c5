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

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addEarningHandler "github.com/dcastano/Barberia-BookingService/internal/api/handlers/add_earning"
	blockSlotHandler "github.com/dcastano/Barberia-BookingService/internal/api/handlers/block_slot"
	bookSlotHandler "github.com/dcastano/Barberia-BookingService/internal/api/handlers/book_slot"
	cancelAppointmentHandler "github.com/dcastano/Barberia-BookingService/internal/api/handlers/cancel_appointment"
	changePasswordHandler "github.com/dcastano/Barberia-BookingService/internal/api/handlers/change_password"
	createStaffHandler "github.com/dcastano/Barberia-BookingService/internal/api/handlers/create_staff"
	getWeekEarningsHandler "github.com/dcastano/Barberia-BookingService/internal/api/handlers/get_week_earnings"
	getWeekViewHandler "github.com/dcastano/Barberia-BookingService/internal/api/handlers/get_week_view"
	globalShiftHandler "github.com/dcastano/Barberia-BookingService/internal/api/handlers/global_shift"
	listStaffHandler "github.com/dcastano/Barberia-BookingService/internal/api/handlers/list_staff"
	loginHandler "github.com/dcastano/Barberia-BookingService/internal/api/handlers/login"
	releaseScheduleHandler "github.com/dcastano/Barberia-BookingService/internal/api/handlers/release_schedule"
	toggleFixedHandler "github.com/dcastano/Barberia-BookingService/internal/api/handlers/toggle_fixed"
	updateStaffHandler "github.com/dcastano/Barberia-BookingService/internal/api/handlers/update_staff"
	"github.com/dcastano/Barberia-BookingService/internal/api/middleware"
	"github.com/dcastano/Barberia-BookingService/internal/config"
	"github.com/dcastano/Barberia-BookingService/internal/domain"
	appointmentRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/appointment"
	availabilityRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/availability"
	earningsRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/earnings"
	staffRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/staff"
	notifierClient "github.com/dcastano/Barberia-BookingService/internal/integrations/notifier"
	"github.com/dcastano/Barberia-BookingService/internal/jobs"
	earningsService "github.com/dcastano/Barberia-BookingService/internal/service/earnings"
	scheduleService "github.com/dcastano/Barberia-BookingService/internal/service/schedule"
	staffService "github.com/dcastano/Barberia-BookingService/internal/service/staff"
	bookSlotUC "github.com/dcastano/Barberia-BookingService/internal/usecase/book_slot"
	getWeekViewUC "github.com/dcastano/Barberia-BookingService/internal/usecase/get_week_view"
	"github.com/dcastano/Barberia-BookingService/pkg/dbmetrics"
	"github.com/dcastano/Barberia-BookingService/pkg/logger"
	"github.com/dcastano/Barberia-BookingService/pkg/metrics"
	"github.com/dcastano/Barberia-BookingService/pkg/simpletxmanager"
	"github.com/dcastano/Barberia-BookingService/pkg/txmanager"
	"github.com/dcastano/Barberia-BookingService/pkg/types"
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

	log.Info("Starting Barberia-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс салона: все расчеты недель и дат ведутся в нём
	location, err := cfg.Server.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Server.Timezone, err)
	}
	log.Info("Salon timezone: %s", location)

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

	// Применяем миграции схемы
	if cfg.Migrations.Enabled {
		if err := runMigrations(db, cfg); err != nil {
			log.Fatal("Failed to run migrations: %v", err)
		}
		log.Info("Database migrations applied from %s", cfg.Migrations.Path)
	}

	// Инициализируем клиент шлюза уведомлений
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Notifier client initialized (URL=%s timeout=%ds enabled=%v)",
		cfg.Notifier.URL, cfg.Notifier.Timeout, cfg.Notifier.Enabled)

	// Инициализируем репозитории (с метриками или без)
	var (
		staffRepository        *staffRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		appointmentRepository  *appointmentRepo.Repository
		earningsRepository     *earningsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		staffRepository = staffRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		earningsRepository = earningsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		staffRepository = staffRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		earningsRepository = earningsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Сетка слотов: из конфига, либо значения по умолчанию
	grid := staffService.GridConfig{
		Open:  domain.DefaultOpenTime,
		Close: domain.DefaultCloseTime,
		Step:  domain.DefaultSlotStep,
	}
	if cfg.Grid.StepMinutes != 0 {
		var openTime, closeTime types.TimeOfDay
		if openTime, err = cfg.Grid.OpenTime(); err != nil {
			log.Fatal("Invalid grid.open: %v", err)
		}
		if closeTime, err = cfg.Grid.CloseTime(); err != nil {
			log.Fatal("Invalid grid.close: %v", err)
		}
		grid = staffService.GridConfig{Open: openTime, Close: closeTime, Step: cfg.Grid.StepMinutes}
	}
	log.Info("Slot grid: %s - %s, step %d min", grid.Open, grid.Close, grid.Step)

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		availabilityRepository,
		appointmentRepository,
		staffRepository,
		txMgr,
		location,
		log,
	)
	staffSvc := staffService.NewService(
		staffRepository,
		availabilityRepository,
		txMgr,
		location,
		grid,
		log,
	)
	earningsSvc := earningsService.NewService(
		earningsRepository,
		staffRepository,
		txMgr,
		location,
		log,
	)

	// Инициализируем use cases
	getWeekViewUseCase := getWeekViewUC.NewUseCase(
		staffRepository,
		availabilityRepository,
		appointmentRepository,
		location,
		log,
	)
	bookSlotUseCase := bookSlotUC.NewUseCase(
		staffRepository,
		availabilityRepository,
		appointmentRepository,
		notifier,
		txMgr,
		location,
		log,
	)

	// Запускаем фоновые задачи
	jobsCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()

	weeklyJob := jobs.NewWeeklyJob(
		staffRepository,
		staffSvc,
		earningsSvc,
		time.Duration(cfg.Jobs.WeeklyInterval)*time.Second,
		location,
		log,
	)
	go weeklyJob.Run(jobsCtx)

	if cfg.Notifier.Enabled {
		remindersJob := jobs.NewRemindersJob(
			appointmentRepository,
			notifier,
			time.Duration(cfg.Jobs.RemindersInterval)*time.Second,
			location,
			log,
		)
		go remindersJob.Run(jobsCtx)
	} else {
		log.Info("Notifier disabled, reminders job not started")
	}

	// Инициализируем handlers
	getWeekView := getWeekViewHandler.NewHandler(getWeekViewUseCase, log)
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(scheduleSvc, log)
	toggleFixed := toggleFixedHandler.NewHandler(scheduleSvc, log)
	blockSlot := blockSlotHandler.NewHandler(scheduleSvc, log)
	releaseSchedule := releaseScheduleHandler.NewHandler(scheduleSvc, log)
	globalShift := globalShiftHandler.NewHandler(scheduleSvc, log)
	createStaff := createStaffHandler.NewHandler(staffSvc, log)
	listStaff := listStaffHandler.NewHandler(staffSvc, log)
	updateStaff := updateStaffHandler.NewHandler(staffSvc, log)
	login := loginHandler.NewHandler(staffSvc, log)
	changePassword := changePasswordHandler.NewHandler(staffSvc, log)
	addEarning := addEarningHandler.NewHandler(earningsSvc, log)
	getWeekEarnings := getWeekEarningsHandler.NewHandler(earningsSvc, log)

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

	// Вход мастера по логину и паролю
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// Список мастеров (?bookable=true: только записываемые)
	api.HandleFunc("/staff", listStaff.Handle).Methods(http.MethodGet)

	// Недельное расписание мастера (?week=0|1)
	api.HandleFunc("/staff/{staffId}/schedule", getWeekView.Handle).Methods(http.MethodGet)

	// Запись клиента на слот
	api.HandleFunc("/appointments", bookSlot.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Отмена записи по слоту (идемпотентно)
	protected.HandleFunc("/appointments/cancel", cancelAppointment.Handle).Methods(http.MethodPost)

	// Закрепление/открепление записи
	protected.HandleFunc("/appointments/{appointmentId}/fixed", toggleFixed.Handle).Methods(http.MethodPatch)

	// Смена собственного пароля
	protected.HandleFunc("/staff/{staffId}/password", changePassword.Handle).Methods(http.MethodPatch)

	// Выручка мастера
	protected.HandleFunc("/earnings", addEarning.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/staff/{staffId}/earnings", getWeekEarnings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (только администраторы)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth)
	admin.Use(middleware.RequireAdmin(staffRepository))

	// --- Управление мастерами ---
	admin.HandleFunc("/staff", createStaff.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/staff/{staffId}", updateStaff.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/staff/{staffId}", updateStaff.HandleDelete).Methods(http.MethodDelete)

	// --- Управление расписанием ---
	admin.HandleFunc("/schedule/block", blockSlot.HandleBlock).Methods(http.MethodPost)
	admin.HandleFunc("/schedule/unblock", blockSlot.HandleUnblock).Methods(http.MethodPost)
	admin.HandleFunc("/schedule/shift", globalShift.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/staff/{staffId}/release", releaseSchedule.Handle).Methods(http.MethodPost)

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

	// Останавливаем фоновые задачи
	stopJobs()

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

// runMigrations применяет все незапущенные миграции схемы
func runMigrations(db *sql.DB, cfg *config.Config) error {
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.Migrations.Path, cfg.Database.DBName, driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
