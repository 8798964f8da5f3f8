package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig            `toml:"server"`
	Database DatabaseConfig          `toml:"database"`
	Logs     LogsConfig              `toml:"logs"`
	Metrics  MetricsConfig           `toml:"metrics"`
	Cache    CacheConfig             `toml:"cache"`
	Notifier NotifierConfig          `toml:"notifier"`
	Session  SessionConfig           `toml:"session"`
	Domains  map[string]DomainConfig `toml:"domains"`
}

// ServerConfig HTTP сервер; таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig логирование
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig метрики Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CacheConfig кэш списка бронирований
type CacheConfig struct {
	Backend    string      `toml:"backend"` // memory | redis
	TTLSeconds int         `toml:"ttl_seconds"`
	Redis      RedisConfig `toml:"redis"`
}

// RedisConfig подключение к Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// NotifierConfig транспорт подтверждений
type NotifierConfig struct {
	Transport        string `toml:"transport"` // http | amqp | none
	URL              string `toml:"url"`
	Timeout          int    `toml:"timeout"` // секунды
	FailureThreshold uint32 `toml:"failure_threshold"`
	OpenTimeout      int    `toml:"open_timeout"` // секунды
	AMQPURL          string `toml:"amqp_url"`
	Exchange         string `toml:"exchange"`
}

// SessionConfig экземпляры сетки
type SessionConfig struct {
	AdminPasscode   string `toml:"admin_passcode"`
	IdleTTLMinutes  int    `toml:"idle_ttl_minutes"`
	JanitorInterval int    `toml:"janitor_interval"` // секунды
}

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"

	NotifierHTTP = "http"
	NotifierAMQP = "amqp"
	NotifierNone = "none"
)

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "resource_booking",
		},
		Cache: CacheConfig{
			Backend:    CacheMemory,
			TTLSeconds: 30,
		},
		Notifier: NotifierConfig{
			Transport:        NotifierNone,
			Timeout:          5,
			FailureThreshold: 5,
			OpenTimeout:      30,
		},
		Session: SessionConfig{
			IdleTTLMinutes:  60,
			JanitorInterval: 60,
		},
	}
}

// Load читает конфигурацию: значения по умолчанию, затем файл, затем переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := Parse(string(data), cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse накладывает TOML поверх cfg
func Parse(data string, cfg *Config) error {
	meta, err := toml.Decode(data, cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrParseConfig, err)
	}

	// Опечатка в ключе не должна молча превращаться в значение по умолчанию
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("%w: unknown keys: %s", ErrParseConfig, strings.Join(keys, ", "))
	}

	return nil
}

// applyEnvOverrides секреты можно не хранить в файле
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SMC_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("SMC_REDIS_PASSWORD"); v != "" {
		cfg.Cache.Redis.Password = v
	}
	if v := os.Getenv("SMC_ADMIN_PASSCODE"); v != "" {
		cfg.Session.AdminPasscode = v
	}
}

// Validate проверяет конфигурацию целиком, включая описание доменов
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d is out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Cache.Backend {
	case CacheMemory:
	case CacheRedis:
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("%w: cache.redis.addr is required for redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown cache.backend %q", ErrInvalidConfig, c.Cache.Backend)
	}
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("%w: cache.ttl_seconds must be positive", ErrInvalidConfig)
	}

	switch c.Notifier.Transport {
	case NotifierNone:
	case NotifierHTTP:
		if c.Notifier.URL == "" {
			return fmt.Errorf("%w: notifier.url is required for http transport", ErrInvalidConfig)
		}
	case NotifierAMQP:
		if c.Notifier.AMQPURL == "" {
			return fmt.Errorf("%w: notifier.amqp_url is required for amqp transport", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown notifier.transport %q", ErrInvalidConfig, c.Notifier.Transport)
	}

	if len(c.Domains) == 0 {
		return fmt.Errorf("%w: at least one [domains.<name>] block is required", ErrInvalidConfig)
	}

	_, err := c.DomainConfigs()
	return err
}

// DomainNames имена доменов в алфавитном порядке
func (c *Config) DomainNames() []string {
	names := make([]string, 0, len(c.Domains))
	for name := range c.Domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
