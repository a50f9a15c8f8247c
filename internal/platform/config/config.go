package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
	Audit           Audit
}

// Audit selects where audit events are published. An empty broker list
// keeps them in the process log.
type Audit struct {
	KafkaBrokers []string
	KafkaTopic   string
}

// KafkaEnabled reports whether audit events go to Kafka.
func (a Audit) KafkaEnabled() bool {
	return len(a.KafkaBrokers) > 0
}

const (
	defaultAddr            = ":9000"
	defaultShutdownTimeout = 10 * time.Second
	defaultAuditTopic      = "staffdir.audit"
)

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win.
func FromEnv() (Server, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Server{}, fmt.Errorf("load .env: %w", err)
	}
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) (Server, error) {
	addr := getenv("STAFFDIR_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	level, err := parseLevel(getenv("LOG_LEVEL"))
	if err != nil {
		return Server{}, err
	}

	shutdownTimeout := defaultShutdownTimeout
	if raw := getenv("SHUTDOWN_TIMEOUT"); raw != "" {
		shutdownTimeout, err = time.ParseDuration(raw)
		if err != nil {
			return Server{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
		}
		if shutdownTimeout <= 0 {
			return Server{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", raw)
		}
	}

	topic := getenv("AUDIT_KAFKA_TOPIC")
	if topic == "" {
		topic = defaultAuditTopic
	}

	return Server{
		Addr:            addr,
		LogLevel:        level,
		ShutdownTimeout: shutdownTimeout,
		Audit: Audit{
			KafkaBrokers: splitList(getenv("AUDIT_KAFKA_BROKERS")),
			KafkaTopic:   topic,
		},
	}, nil
}

func parseLevel(raw string) (slog.Level, error) {
	if raw == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	return level, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
