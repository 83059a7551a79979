package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Worker   WorkerConfig
	Geocoder GeocoderConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	LedgerSummaryTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	// ClaimMinIdle - через сколько неподтверждённое сообщение забирается заново
	ClaimMinIdle time.Duration
	BatchSize    int
	MaxRetries   int
}

// GeocoderConfig - внешний сервис геокодирования (best effort)
type GeocoderConfig struct {
	Enabled          bool
	ReverseURL       string
	SearchURL        string
	UserAgent        string
	Timeout          time.Duration
	RequestsPerSec   float64
	MaxRetries       int
	BreakerFailures  uint32
	BreakerOpenDelay time.Duration
}

// Load читает конфигурацию из .env в рабочем каталоге и окружения
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom читает конфигурацию из указанного файла и окружения.
// Отсутствующий файл не ошибка: значения берутся из окружения и умолчаний.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("API_CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			LedgerSummaryTTL: time.Duration(v.GetInt("CACHE_LEDGER_SUMMARY_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			ClaimMinIdle:      time.Duration(v.GetInt("WORKER_CLAIM_MIN_IDLE")) * time.Millisecond,
			BatchSize:         v.GetInt("WORKER_BATCH_SIZE"),
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
		},
		Geocoder: GeocoderConfig{
			Enabled:          !v.GetBool("GEOCODER_DISABLED"),
			ReverseURL:       v.GetString("GEOCODER_REVERSE_URL"),
			SearchURL:        v.GetString("GEOCODER_SEARCH_URL"),
			UserAgent:        v.GetString("GEOCODER_USER_AGENT"),
			Timeout:          time.Duration(v.GetInt("GEOCODER_TIMEOUT")) * time.Millisecond,
			RequestsPerSec:   v.GetFloat64("GEOCODER_RATE_LIMIT"),
			MaxRetries:       v.GetInt("GEOCODER_MAX_RETRIES"),
			BreakerFailures:  v.GetUint32("GEOCODER_BREAKER_FAILURES"),
			BreakerOpenDelay: time.Duration(v.GetInt("GEOCODER_BREAKER_OPEN_SECONDS")) * time.Second,
		},
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.CORSOrigins == "" {
		cfg.Server.CORSOrigins = "*"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Cache.LedgerSummaryTTL == 0 {
		cfg.Cache.LedgerSummaryTTL = 10 * time.Minute
	}

	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "ledger-refresh-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.ClaimMinIdle == 0 {
		cfg.Worker.ClaimMinIdle = 30 * time.Second
	}
	if cfg.Worker.BatchSize == 0 {
		cfg.Worker.BatchSize = 10
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	if cfg.Geocoder.ReverseURL == "" {
		cfg.Geocoder.ReverseURL = "https://api.bigdatacloud.net/data/reverse-geocode-client"
	}
	if cfg.Geocoder.SearchURL == "" {
		cfg.Geocoder.SearchURL = "https://nominatim.openstreetmap.org/search"
	}
	if cfg.Geocoder.UserAgent == "" {
		cfg.Geocoder.UserAgent = "travel-ledger/1.0"
	}
	if cfg.Geocoder.Timeout == 0 {
		cfg.Geocoder.Timeout = 5000 * time.Millisecond
	}
	if cfg.Geocoder.RequestsPerSec == 0 {
		cfg.Geocoder.RequestsPerSec = 1
	}
	if cfg.Geocoder.MaxRetries == 0 {
		cfg.Geocoder.MaxRetries = 2
	}
	if cfg.Geocoder.BreakerFailures == 0 {
		cfg.Geocoder.BreakerFailures = 5
	}
	if cfg.Geocoder.BreakerOpenDelay == 0 {
		cfg.Geocoder.BreakerOpenDelay = 30 * time.Second
	}
}

// CORSOriginList разбирает список разрешённых источников через запятую
func (c *Config) CORSOriginList() []string {
	parts := strings.Split(c.Server.CORSOrigins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
