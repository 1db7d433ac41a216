package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Redis       RedisConfig       `toml:"redis"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Reservation ReservationConfig `toml:"reservation"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig настройки подключения к Redis (блокировки и холды слотов)
// Если Enabled = false, используется in-memory хранилище
// In-memory вариант допустим ТОЛЬКО для single-instance разработки:
// при горизонтальном масштабировании блокировки обязаны жить в Redis
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ReservationConfig настройки движка резервирования слотов
type ReservationConfig struct {
	// TTL блокировки слота в секундах
	// Должен превышать худшее время критической секции резервирования,
	// TTL здесь только страховка на случай падения процесса с захваченной блокировкой
	LockTTLSeconds int `toml:"lock_ttl_seconds"`

	// Границы TTL холда в секундах: запрошенное клиентом значение зажимается в [min, max]
	HoldTTLMinSeconds     int `toml:"hold_ttl_min_seconds"`
	HoldTTLMaxSeconds     int `toml:"hold_ttl_max_seconds"`
	HoldTTLDefaultSeconds int `toml:"hold_ttl_default_seconds"`

	// Минимальный интервал до начала слота при бронировании на сегодня (минуты)
	// Применяется, если у тенанта нет собственного переопределения
	DefaultMinLeadMinutes int `toml:"default_min_lead_minutes"`
}

// Load загружает конфигурацию из TOML файла и применяет дефолты
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}

	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "smc-appointment-service"
	}

	if cfg.Reservation.LockTTLSeconds == 0 {
		cfg.Reservation.LockTTLSeconds = 10
	}
	if cfg.Reservation.HoldTTLMinSeconds == 0 {
		cfg.Reservation.HoldTTLMinSeconds = 30
	}
	if cfg.Reservation.HoldTTLMaxSeconds == 0 {
		cfg.Reservation.HoldTTLMaxSeconds = 300
	}
	if cfg.Reservation.HoldTTLDefaultSeconds == 0 {
		cfg.Reservation.HoldTTLDefaultSeconds = 120
	}
	if cfg.Reservation.DefaultMinLeadMinutes == 0 {
		cfg.Reservation.DefaultMinLeadMinutes = 15
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Redis.Enabled && cfg.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis is enabled")
	}
	if cfg.Reservation.HoldTTLMinSeconds > cfg.Reservation.HoldTTLMaxSeconds {
		return fmt.Errorf("config: reservation.hold_ttl_min_seconds must not exceed hold_ttl_max_seconds")
	}
	return nil
}
