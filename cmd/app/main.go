package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe/cmd"
	cafe_http "cafe/internal/adapters/in/http"
	"cafe/internal/adapters/out/kafka"
	"cafe/internal/adapters/out/postgres"
	"cafe/internal/adapters/out/redis"
	"cafe/internal/pkg/metrics"
	"cafe/internal/pkg/tracing"

	"github.com/labstack/gommon/log"
	"github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:      configs.ServiceName,
		Environment:      configs.Environment,
		ExporterEndpoint: configs.OtelExporterEndpoint,
		SampleRate:       1.0,
	})
	if err != nil {
		log.Fatalf("Error initializing tracer: %v", err)
	}

	gormDB, sqlDB := mustOpenDatabase(configs)
	defer sqlDB.Close()

	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	redisClient := redis.NewClient(configs.RedisAddr)
	defer redisClient.Close()

	publisher := kafka.NewPublisher(kafka.ParseBrokers(configs.KafkaBrokers), configs.KafkaOrderStatusTopic)
	defer publisher.Close()

	m := metrics.New()

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		redis.NewIdempotencyStore(redisClient, redis.DefaultTTL),
		publisher,
		m,
		logger,
	)

	jobManager := app.JobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	server, err := newWebServer(ctx, &app, configs, m, logger, sqlDB)
	if err != nil {
		log.Fatalf("Error creating web server: %v", err)
	}

	go func() {
		logger.Info("HTTP server started", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.Any("error", err))
	}
	jobManager.StopAll()
	if err = shutdownTracer(shutdownCtx); err != nil {
		logger.Error("Tracer shutdown failed", slog.Any("error", err))
	}
}

func mustOpenDatabase(configs cmd.Config) (*gorm.DB, *sql.DB) {
	connector, err := pq.NewConnector(configs.DSN())
	if err != nil {
		log.Fatalf("Error creating database connector: %v", err)
	}

	sqlDB := sql.OpenDB(connector)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB, sqlDB
}

func newWebServer(
	ctx context.Context,
	app *cmd.CompositionRoot,
	configs cmd.Config,
	m *metrics.Metrics,
	logger *slog.Logger,
	sqlDB *sql.DB,
) (*http.Server, error) {
	contract, err := cafe_http.LoadContract(ctx)
	if err != nil {
		return nil, err
	}

	server := cafe_http.NewServer(app.HTTPHandlers(), logger.With("component", "http"), m)

	e, err := cafe_http.NewRouter(server, cafe_http.RouterConfig{
		Logger:      logger.With("component", "http"),
		Metrics:     m,
		Contract:    contract,
		HealthCheck: sqlDB.PingContext,
	})
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort),
		Handler:           tracing.WrapHTTPHandler(e, configs.ServiceName),
		ReadHeaderTimeout: 5 * time.Second,
	}, nil
}
