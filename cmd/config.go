package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr string

	KafkaBrokers          string
	KafkaOrderStatusTopic string

	OtelExporterEndpoint string
	ServiceName          string
	Environment          string

	OutboxBatchSize int
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment win.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	batchSize, err := strconv.Atoi(envOrDefault("OUTBOX_BATCH_SIZE", "100"))
	if err != nil || batchSize < 1 {
		return Config{}, fmt.Errorf("OUTBOX_BATCH_SIZE must be a positive integer, got %q", os.Getenv("OUTBOX_BATCH_SIZE"))
	}

	return Config{
		HTTPPort:   envOrDefault("HTTP_PORT", "8080"),
		DBHost:     envOrDefault("DB_HOST", "localhost"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBUser:     envOrDefault("DB_USER", "postgres"),
		DBPassword: envOrDefault("DB_PASSWORD", "postgres"),
		DBName:     envOrDefault("DB_NAME", "cafe"),
		DBSslMode:  envOrDefault("DB_SSLMODE", "disable"),

		RedisAddr: envOrDefault("REDIS_ADDR", "localhost:6379"),

		KafkaBrokers:          envOrDefault("KAFKA_BROKERS", "localhost:9092"),
		KafkaOrderStatusTopic: envOrDefault("KAFKA_ORDER_STATUS_TOPIC", "cafe.order.status"),

		OtelExporterEndpoint: os.Getenv("OTEL_EXPORTER_ENDPOINT"),
		ServiceName:          envOrDefault("SERVICE_NAME", "cafe"),
		Environment:          envOrDefault("ENVIRONMENT", "development"),

		OutboxBatchSize: batchSize,
	}, nil
}

// DSN returns the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
