package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port" envconfig:"CLINIC_SERVER_PORT"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" envconfig:"CLINIC_SERVER_TIMEOUT_SECONDS"`
	AllowedOrigins []string `mapstructure:"allowed_origins" envconfig:"CLINIC_SERVER_ALLOWED_ORIGINS"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host" envconfig:"CLINIC_DB_HOST"`
	Port         int    `mapstructure:"port" envconfig:"CLINIC_DB_PORT"`
	User         string `mapstructure:"user" envconfig:"CLINIC_DB_USER"`
	Password     string `mapstructure:"password" envconfig:"CLINIC_DB_PASSWORD"`
	Name         string `mapstructure:"name" envconfig:"CLINIC_DB_NAME"`
	SSLMode      string `mapstructure:"sslmode" envconfig:"CLINIC_DB_SSLMODE"`
	MaxOpenConns int    `mapstructure:"max_open_conns" envconfig:"CLINIC_DB_MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" envconfig:"CLINIC_DB_MAX_IDLE_CONNS"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr" envconfig:"CLINIC_REDIS_ADDR"`
	Password    string        `mapstructure:"password" envconfig:"CLINIC_REDIS_PASSWORD"`
	DB          int           `mapstructure:"db" envconfig:"CLINIC_REDIS_DB"`
	LockTTL     time.Duration `mapstructure:"lock_ttl" envconfig:"CLINIC_REDIS_LOCK_TTL"`
	UseInMemory bool          `mapstructure:"use_in_memory" envconfig:"CLINIC_REDIS_USE_IN_MEMORY"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret" envconfig:"CLINIC_JWT_SECRET"`
	ExpiryHours int    `mapstructure:"expiry_hours" envconfig:"CLINIC_JWT_EXPIRY_HOURS"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" envconfig:"CLINIC_SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"CLINIC_SMTP_PORT"`
	Username string `mapstructure:"username" envconfig:"CLINIC_SMTP_USERNAME"`
	Password string `mapstructure:"password" envconfig:"CLINIC_SMTP_PASSWORD"`
	From     string `mapstructure:"from" envconfig:"CLINIC_SMTP_FROM"`
	Enabled  bool   `mapstructure:"enabled" envconfig:"CLINIC_SMTP_ENABLED"`
}

type DashboardConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl" envconfig:"CLINIC_DASHBOARD_CACHE_TTL"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" envconfig:"CLINIC_RATE_LIMIT_RPS"`
	Burst int     `mapstructure:"burst" envconfig:"CLINIC_RATE_LIMIT_BURST"`
}

// LoadConfig reads config.yaml, then lets CLINIC_* environment variables
// override individual fields.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("clinic", &config); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	return &config, nil
}
