package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Notifier   NotifierConfig   `toml:"notifier"`
	Jobs       JobsConfig       `toml:"jobs"`
	Grid       GridConfig       `toml:"grid"`
	Migrations MigrationsConfig `toml:"migrations"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`     // секунды
	WriteTimeout    int    `toml:"write_timeout"`    // секунды
	IdleTimeout     int    `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int    `toml:"shutdown_timeout"` // секунды
	Timezone        string `toml:"timezone"`         // часовой пояс салона, например "America/Bogota"
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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// NotifierConfig настройки шлюза уведомлений
type NotifierConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// JobsConfig настройки фоновых задач
type JobsConfig struct {
	RemindersInterval int `toml:"reminders_interval"` // секунды
	WeeklyInterval    int `toml:"weekly_interval"`    // секунды
}

// GridConfig сетка слотов барбершопа
type GridConfig struct {
	Open        string `toml:"open"`  // "10:00"
	Close       string `toml:"close"` // "21:00"
	StepMinutes int    `toml:"step_minutes"`
}

// OpenTime возвращает время открытия
func (g GridConfig) OpenTime() (types.TimeOfDay, error) {
	return types.ParseTimeOfDay(g.Open)
}

// CloseTime возвращает время закрытия
func (g GridConfig) CloseTime() (types.TimeOfDay, error) {
	return types.ParseTimeOfDay(g.Close)
}

// MigrationsConfig настройки миграций схемы БД
type MigrationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // например "file://migrations"
}

// Location возвращает часовой пояс салона
func (s ServerConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

// Load читает конфигурацию из TOML файла и валидирует её
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be within (0, 65535]")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.Grid.StepMinutes != 0 {
		if c.Grid.StepMinutes < 5 || c.Grid.StepMinutes > 240 {
			return fmt.Errorf("grid.step_minutes must be within [5, 240]")
		}
		if _, err := c.Grid.OpenTime(); err != nil {
			return fmt.Errorf("grid.open: %w", err)
		}
		if _, err := c.Grid.CloseTime(); err != nil {
			return fmt.Errorf("grid.close: %w", err)
		}
	}
	if _, err := c.Server.Location(); err != nil {
		return fmt.Errorf("server.timezone: %w", err)
	}
	return nil
}
