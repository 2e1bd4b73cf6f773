package config

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	_ "modernc.org/sqlite"
)

// LoadEnv reads a .env file from the working directory when one exists.
// Real environment variables always win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}
}

func IsDevelopment() bool {
	env := strings.ToLower(GetEnv("ENVIRONMENT", "development"))
	return env == "development" || env == "dev"
}

// SetupLogger configures the global zerolog logger for one service.
func SetupLogger(service string) {
	level, err := zerolog.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	logger := zerolog.New(os.Stdout)
	if IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}
	log.Logger = logger.With().Timestamp().Str("service", service).Logger()
}

const devSessionSecret = "dev-session-secret"

var ErrSessionSecretRequired = errors.New("SESSION_SECRET must be set outside development")

// SessionSecret returns SESSION_SECRET. Only development falls back to a
// fixed secret.
func SessionSecret() (string, error) {
	if secret := GetEnv("SESSION_SECRET", ""); secret != "" {
		return secret, nil
	}
	if IsDevelopment() {
		return devSessionSecret, nil
	}
	return "", ErrSessionSecretRequired
}

func MustSessionSecret() string {
	secret, err := SessionSecret()
	if err != nil {
		log.Fatal().Err(err).Msg("refusing to start without a session secret")
	}
	return secret
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func GetEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func MustInitPostgres() *sql.DB {
	connStr := "host=" + GetEnv("DB_HOST", "localhost") + " port=" + GetEnv("DB_PORT", "5432") +
		" user=" + os.Getenv("DB_USER") + " password=" + os.Getenv("DB_PASSWORD") +
		" dbname=" + GetEnv("DB_NAME", "foodie") + " sslmode=disable"

	db := mustOpen("postgres", connStr)
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	return db
}

// MustInitSQLite opens a pure-Go SQLite database. A single connection keeps
// ":memory:" databases consistent across queries.
func MustInitSQLite(path string) *sql.DB {
	db := mustOpen("sqlite", path+"?_pragma=journal_mode(WAL)")
	db.SetMaxOpenConns(1)
	return db
}

func mustOpen(driver, dsn string) *sql.DB {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Fatal().Err(err).Str("driver", driver).Msg("failed to open database")
	}
	if err = db.Ping(); err != nil {
		log.Fatal().Err(err).Str("driver", driver).Msg("failed to ping database")
	}
	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: GetEnv("REDIS_HOST", "localhost") + ":" + GetEnv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	return client
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{GetEnv("KAFKA_BROKER", "localhost:9092")},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(GetEnv("KAFKA_BROKER", "localhost:9092")),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}
