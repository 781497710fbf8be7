package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the full process configuration, read once at startup.
type Config struct {
	Server   Server
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Audit    AuditConfig
	Postal   ClientConfig
	Elig     ClientConfig
	Geo      ClientConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Environment     string
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig selects Postgres-backed stores when URL is set.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig selects the Redis postal cache when URL is set.
type RedisConfig struct {
	URL            string
	PoolSize       int
	MinIdleConns   int
	DialTimeout    time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	PostalCacheTTL time.Duration
}

// KafkaConfig enables the audit stream sink when Brokers is set.
type KafkaConfig struct {
	Brokers    string
	AuditTopic string
}

// AuditSink names the medium audit entries are persisted to.
type AuditSink string

const (
	AuditSinkFile     AuditSink = "file"
	AuditSinkPostgres AuditSink = "postgres"
	AuditSinkKafka    AuditSink = "kafka"
	AuditSinkMemory   AuditSink = "memory"
)

// AuditConfig controls where and how audit entries are written.
type AuditConfig struct {
	Sink         AuditSink
	LogPath      string
	BufferSize   int
	WriteTimeout time.Duration
}

// ClientConfig is shared by the outbound enrichment clients.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Defaults for the outbound clients.
const (
	DefaultPostalURL      = "https://viacep.com.br/ws"
	DefaultEligibilityURL = "http://localhost:8001"
	DefaultGeoURL         = "http://localhost:8002"
	DefaultClientTimeout  = 10 * time.Second
)

// FromEnv builds a Config from environment variables so main stays lean.
// Malformed values are reported instead of silently replaced.
func FromEnv() (Config, error) {
	r := envReader{}
	cfg := Config{
		Server: Server{
			Addr:            r.str("UNIBUS_ADDR", ":8000"),
			Environment:     r.str("ENVIRONMENT", "development"),
			LogLevel:        r.str("LOG_LEVEL", "info"),
			RequestTimeout:  r.duration("REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: r.duration("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			URL:             r.str("DATABASE_URL", ""),
			MaxOpenConns:    r.integer("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    r.integer("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: r.duration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:            r.str("REDIS_URL", ""),
			PoolSize:       r.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns:   r.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:    r.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:    r.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:   r.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PostalCacheTTL: r.duration("POSTAL_CACHE_TTL", 24*time.Hour),
		},
		Kafka: KafkaConfig{
			Brokers:    r.str("KAFKA_BROKERS", ""),
			AuditTopic: r.str("AUDIT_TOPIC", "unibus.audit"),
		},
		Audit: AuditConfig{
			Sink:         AuditSink(r.str("AUDIT_SINK", string(AuditSinkFile))),
			LogPath:      r.str("AUDIT_LOG_PATH", "audit.log"),
			BufferSize:   r.integer("AUDIT_BUFFER_SIZE", 0),
			WriteTimeout: r.duration("AUDIT_WRITE_TIMEOUT", 2*time.Second),
		},
		Postal: ClientConfig{
			BaseURL: r.str("POSTAL_API_URL", DefaultPostalURL),
			Timeout: r.duration("POSTAL_API_TIMEOUT", DefaultClientTimeout),
		},
		Elig: ClientConfig{
			BaseURL: r.str("ELIGIBILITY_API_URL", DefaultEligibilityURL),
			Timeout: r.duration("ELIGIBILITY_API_TIMEOUT", DefaultClientTimeout),
		},
		Geo: ClientConfig{
			BaseURL: r.str("GEO_API_URL", DefaultGeoURL),
			Timeout: r.duration("GEO_API_TIMEOUT", DefaultClientTimeout),
		},
	}
	if r.err != nil {
		return Config{}, r.err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Audit.Sink {
	case AuditSinkFile, AuditSinkMemory:
	case AuditSinkPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("AUDIT_SINK=postgres requires DATABASE_URL")
		}
	case AuditSinkKafka:
		if c.Kafka.Brokers == "" {
			return fmt.Errorf("AUDIT_SINK=kafka requires KAFKA_BROKERS")
		}
	default:
		return fmt.Errorf("unknown AUDIT_SINK %q", c.Audit.Sink)
	}
	if c.Audit.BufferSize < 0 {
		return fmt.Errorf("AUDIT_BUFFER_SIZE must not be negative")
	}
	for name, t := range map[string]time.Duration{
		"POSTAL_API_TIMEOUT":      c.Postal.Timeout,
		"ELIGIBILITY_API_TIMEOUT": c.Elig.Timeout,
		"GEO_API_TIMEOUT":         c.Geo.Timeout,
		"AUDIT_WRITE_TIMEOUT":     c.Audit.WriteTimeout,
	} {
		if t <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

// envReader records the first parse failure so FromEnv can read every key
// before reporting.
type envReader struct {
	err error
}

func (r *envReader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(fmt.Errorf("parse %s: %w", key, err))
		return def
	}
	return d
}

func (r *envReader) integer(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(fmt.Errorf("parse %s: %w", key, err))
		return def
	}
	return n
}

func (r *envReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
