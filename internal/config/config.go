// Package config загружает конфигурацию сервиса из TOML файла.
// Чувствительные значения (пароль БД) могут быть переопределены переменными
// окружения.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	CalendarSync CalendarSyncConfig `toml:"calendar_sync"`
	Booking      BookingConfig      `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN собирает строку подключения lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CalendarSyncConfig настройки клиента внешнего календаря
type CalendarSyncConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
	Enabled bool   `toml:"enabled"`
}

// BookingConfig бизнес-параметры движка бронирования
type BookingConfig struct {
	// MaxQuerySpanDays максимальная ширина окна запроса слотов в днях
	MaxQuerySpanDays int `toml:"max_query_span_days"`
	// PendingTTLMinutes через сколько минут неподтверждённое pending
	// бронирование отменяется фоновой задачей (0 - отключено)
	PendingTTLMinutes int `toml:"pending_ttl_minutes"`
	// ExpiryCronSpec расписание фоновой задачи в формате cron
	ExpiryCronSpec string `toml:"expiry_cron_spec"`
}

// Load читает конфигурацию из TOML файла и применяет env-переопределения
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			File:  "stdout",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "booking-engine",
		},
		CalendarSync: CalendarSyncConfig{
			Timeout: 5,
		},
		Booking: BookingConfig{
			MaxQuerySpanDays:  60,
			PendingTTLMinutes: 0,
			ExpiryCronSpec:    "*/5 * * * *",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("CALENDAR_SYNC_URL"); v != "" {
		cfg.CalendarSync.URL = v
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: http_port must be positive")
	}
	if c.Booking.MaxQuerySpanDays <= 0 {
		return fmt.Errorf("config: max_query_span_days must be positive")
	}
	if c.CalendarSync.Enabled && c.CalendarSync.URL == "" {
		return fmt.Errorf("config: calendar_sync.url is required when calendar_sync is enabled")
	}
	return nil
}
