package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/appointy-booking/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Session   SessionConfig   `toml:"session"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

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
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig хранилище проекций и расписаний.
// Driver "memory" держит все в процессе (для локального запуска).
type RedisConfig struct {
	Driver    string `toml:"driver"` // redis | memory
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type SessionConfig struct {
	Secret   string `toml:"secret"`
	Issuer   string `toml:"issuer"`
	TTLHours int    `toml:"ttl_hours"`
}

// TTL время жизни токена
func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

type BookingConfig struct {
	ClosedDay      string   `toml:"closed_day"`
	Holidays       []string `toml:"holidays"`
	MinAdvanceDays int      `toml:"min_advance_days"`
	MaxAdvanceDays int      `toml:"max_advance_days"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Load читает TOML файл, подмешивает секреты из окружения (.env, если есть)
// и проставляет значения по умолчанию
func Load(path string) (*Config, error) {
	// .env опционален
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.Session.Secret = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15
	}

	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
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

	if cfg.Redis.Driver == "" {
		cfg.Redis.Driver = "redis"
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "appointy:"
	}

	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "appointy-booking"
	}

	if cfg.Session.Issuer == "" {
		cfg.Session.Issuer = "appointy"
	}
	if cfg.Session.TTLHours == 0 {
		cfg.Session.TTLHours = 24
	}

	if cfg.Booking.ClosedDay == "" {
		cfg.Booking.ClosedDay = "sunday"
	}
	// nil: секция не задана; пустой список отключает праздники
	if cfg.Booking.Holidays == nil {
		cfg.Booking.Holidays = append([]string(nil), domain.DefaultHolidays...)
	}
	if cfg.Booking.MinAdvanceDays == 0 {
		cfg.Booking.MinAdvanceDays = domain.DefaultMinDaysAhead
	}
	if cfg.Booking.MaxAdvanceDays == 0 {
		cfg.Booking.MaxAdvanceDays = domain.DefaultMaxDaysAhead
	}

	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 1
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 5
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		errs = append(errs, errors.New("database.host and database.dbname are required"))
	}
	switch c.Redis.Driver {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("redis.addr is required for the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("redis.driver must be redis or memory, got %q", c.Redis.Driver))
	}
	if strings.TrimSpace(c.Session.Secret) == "" {
		errs = append(errs, errors.New("session.secret is required (SESSION_SECRET)"))
	}
	if _, err := c.Booking.Weekday(); err != nil {
		errs = append(errs, err)
	}
	if c.Booking.MinAdvanceDays < 0 || c.Booking.MaxAdvanceDays < c.Booking.MinAdvanceDays {
		errs = append(errs, fmt.Errorf("booking window is inconsistent: min=%d max=%d",
			c.Booking.MinAdvanceDays, c.Booking.MaxAdvanceDays))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Window окно записи в днях от сегодня
func (c BookingConfig) Window() domain.BookingWindow {
	return domain.BookingWindow{MinDaysAhead: c.MinAdvanceDays, MaxDaysAhead: c.MaxAdvanceDays}
}

// Weekday день, в который провайдеры не работают
func (c BookingConfig) Weekday() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(c.ClosedDay, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("booking.closed_day is not a weekday: %q", c.ClosedDay)
}
