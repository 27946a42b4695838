package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// PostgresConfig holds PostgreSQL (analytics store) connection settings.
type PostgresConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MongoConfig holds MongoDB (project document store) settings.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// SQLiteConfig holds the embedded comments database settings.
type SQLiteConfig struct {
	Path string
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// ContentConfig selects where static content files are read from.
type ContentConfig struct {
	// Source is "dir" or "minio".
	Source string
	Dir    string
}

// CommentsConfig holds the comment moderation policy.
type CommentsConfig struct {
	AutoApprove bool
}

// RateLimitConfig holds write-endpoint rate limiting settings.
// When RedisAddr is empty an in-process limiter is used.
type RateLimitConfig struct {
	RPS           float64
	Burst         int
	Window        time.Duration
	RedisAddr     string
	RedisPassword string
}

// HealthConfig holds per-probe health check settings.
type HealthConfig struct {
	ProbeTimeout time.Duration
}

// AnalyticsConfig sizes the non-blocking page view dispatcher.
type AnalyticsConfig struct {
	Workers   int
	QueueSize int
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string
	Development bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables and, optionally, a config file
// named by CONFIG_FILE. Environment variables take precedence.
type AppConfig struct {
	Port           string
	// TrustedProxies lists reverse proxy addresses or CIDR ranges whose
	// X-Forwarded-For header is believed. Empty means none.
	TrustedProxies []string

	Postgres  PostgresConfig
	Mongo     MongoConfig
	SQLite    SQLiteConfig
	MinIO     MinIOConfig
	Content   ContentConfig
	Comments  CommentsConfig
	RateLimit RateLimitConfig
	Health    HealthConfig
	Analytics AnalyticsConfig
	Log       LogConfig
}

// Load reads configuration. A .env file can be auto-loaded by importing
// _ "github.com/joho/godotenv/autoload"; no .env file is required.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	return &AppConfig{
		Port:           getEnv(v, "PORT", "8080"),
		TrustedProxies: getEnvList(v, "TRUSTED_PROXIES"),
		Postgres: PostgresConfig{
			Host:               getEnv(v, "DB_HOST", ""),
			Port:               getEnv(v, "DB_PORT", "5432"),
			User:               getEnv(v, "DB_USER", ""),
			Password:           getEnv(v, "DB_PASSWORD", ""),
			Name:               getEnv(v, "DB_NAME", ""),
			SSLMode:            getEnv(v, "DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt(v, "DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt(v, "DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt(v, "DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Mongo: MongoConfig{
			URI:        getEnv(v, "MONGODB_URI", ""),
			Database:   getEnv(v, "MONGODB_DATABASE", "portfolio"),
			Collection: getEnv(v, "MONGODB_COLLECTION", "projects"),
			Timeout:    time.Duration(getEnvInt(v, "MONGODB_TIMEOUT_SEC", 10)) * time.Second,
		},
		SQLite: SQLiteConfig{
			Path: getEnv(v, "SQLITE_PATH", defaultSQLitePath()),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv(v, "MINIO_ENDPOINT", ""),
			AccessKey: getEnv(v, "MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv(v, "MINIO_SECRET_KEY", ""),
			Bucket:    getEnv(v, "MINIO_BUCKET", ""),
			Prefix:    getEnv(v, "MINIO_PREFIX", "content/"),
			UseSSL:    getEnvBool(v, "MINIO_USE_SSL", false),
		},
		Content: ContentConfig{
			Source: strings.ToLower(getEnv(v, "CONTENT_SOURCE", "dir")),
			Dir:    getEnv(v, "CONTENT_DIR", "content"),
		},
		Comments: CommentsConfig{
			AutoApprove: getEnvBool(v, "COMMENTS_AUTO_APPROVE", false),
		},
		RateLimit: RateLimitConfig{
			RPS:           getEnvFloat(v, "RATE_LIMIT_RPS", 1),
			Burst:         getEnvInt(v, "RATE_LIMIT_BURST", 5),
			Window:        time.Duration(getEnvInt(v, "RATE_LIMIT_WINDOW_SEC", 60)) * time.Second,
			RedisAddr:     getEnv(v, "REDIS_ADDR", ""),
			RedisPassword: getEnv(v, "REDIS_PASSWORD", ""),
		},
		Health: HealthConfig{
			ProbeTimeout: time.Duration(getEnvInt(v, "HEALTH_PROBE_TIMEOUT_MS", 2000)) * time.Millisecond,
		},
		Analytics: AnalyticsConfig{
			Workers:   getEnvInt(v, "ANALYTICS_WORKERS", 2),
			QueueSize: getEnvInt(v, "ANALYTICS_QUEUE_SIZE", 256),
		},
		Log: LogConfig{
			Level:       getEnv(v, "LOG_LEVEL", "info"),
			Development: getEnvBool(v, "LOG_DEVELOPMENT", false),
		},
	}, nil
}

func defaultSQLitePath() string {
	return filepath.Join(xdg.DataHome, "portfolioapi", "comments.db")
}

func getEnv(v *viper.Viper, key, def string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return def
}

func getEnvBool(v *viper.Viper, key string, def bool) bool {
	if s := v.GetString(key); s != "" {
		b, err := strconv.ParseBool(s)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(v *viper.Viper, key string, def int) int {
	if s := v.GetString(key); s != "" {
		i, err := strconv.Atoi(s)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(v *viper.Viper, key string, def float64) float64 {
	if s := v.GetString(key); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return f
		}
	}
	return def
}

// getEnvList splits a comma separated value, dropping empty entries.
func getEnvList(v *viper.Viper, key string) []string {
	var out []string
	for _, part := range strings.Split(v.GetString(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
