package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusdelivery/cmd"
	httpadapter "campusdelivery/internal/adapters/in/http"
	"campusdelivery/internal/adapters/out/events"
	"campusdelivery/internal/adapters/out/memory"
	"campusdelivery/internal/adapters/out/postgres"
	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)

	if err := run(configs, logger); err != nil {
		logger.Error("service stopped", "error", err)
		os.Exit(1)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Infof("no .env file loaded: %v", err)
	}

	config := cmd.Config{
		HTTPPort:               envOr("HTTP_PORT", "8080"),
		Storage:                envOr("STORAGE", cmd.StoragePostgres),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 envOr("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              os.Getenv("DB_SSLMODE"),
		ProofSecret:            os.Getenv("PROOF_SECRET"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: os.Getenv("KAFKA_ORDER_CHANGED_TOPIC"),
		RobotReleaseSchedule:   os.Getenv("ROBOT_RELEASE_SCHEDULE"),
		AdminUserID:            os.Getenv("ADMIN_USER_ID"),
		AdminUsername:          envOr("ADMIN_USERNAME", "admin"),
		LogLevel:               envOr("LOG_LEVEL", "info"),
	}
	return config
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func run(configs cmd.Config, logger *slog.Logger) error {
	if err := configs.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher, closePublisher := newPublisher(configs, logger)
	defer closePublisher()

	uowFactory, err := openStorage(configs, publisher, logger)
	if err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(configs, uowFactory, logger)
	if err != nil {
		return err
	}

	if err = bootstrapAdmin(ctx, app, configs); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := httpadapter.NewMetrics(registry)
	if err != nil {
		return err
	}

	e := httpadapter.NewEcho(app.CreateHTTPServer(metrics), logger)
	e.Logger.SetLevel(echoLevel(logger))

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		logger.Info("HTTP server listening", "addr", addr, "storage", configs.Storage)
		if startErr := e.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down HTTP server")
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newPublisher(configs cmd.Config, logger *slog.Logger) (ports.OrderEventPublisher, func()) {
	if configs.KafkaHost == "" {
		return events.NewLogOrderPublisher(logger), func() {}
	}

	publisher := events.NewKafkaOrderPublisher(events.NewKafkaWriter(configs.KafkaHost, configs.KafkaOrderChangedTopic))
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close kafka writer", "error", err)
		}
	}
}

func openStorage(configs cmd.Config, publisher ports.OrderEventPublisher, logger *slog.Logger) (ports.UnitOfWorkFactory, error) {
	if configs.Storage == cmd.StorageMemory {
		logger.Warn("using in-memory storage; data is lost on restart")
		return memory.NewUnitOfWorkFactory(memory.NewStore(), publisher, logger), nil
	}

	db, err := gorm.Open(gormpostgres.Open(configs.PostgresDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err = postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return postgres.NewGormUnitOfWorkFactory(db, publisher, logger), nil
}

func bootstrapAdmin(ctx context.Context, app cmd.CompositionRoot, configs cmd.Config) error {
	if configs.AdminUserID == "" {
		return nil
	}

	id, err := kernel.UUIDFromString(configs.AdminUserID)
	if err != nil {
		return err
	}

	bootstrap, err := commands.NewBootstrapAdminCommand(id, configs.AdminUsername)
	if err != nil {
		return err
	}

	return app.CreateBootstrapAdminCommandHandler().Handle(ctx, bootstrap)
}

func echoLevel(logger *slog.Logger) log.Lvl {
	ctx := context.Background()
	switch {
	case logger.Enabled(ctx, slog.LevelDebug):
		return log.DEBUG
	case logger.Enabled(ctx, slog.LevelInfo):
		return log.INFO
	case logger.Enabled(ctx, slog.LevelWarn):
		return log.WARN
	default:
		return log.ERROR
	}
}
