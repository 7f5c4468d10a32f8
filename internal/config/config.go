package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	TasksRedis  = "redis"
	TasksMemory = "memory"
)

// Config holds all configuration for the service
type Config struct {
	HTTPAddr string `yaml:"http_addr"`

	Store       string `yaml:"store"`
	DatabaseDSN string `yaml:"database_dsn"`
	DBHost      string `yaml:"db_host"`
	DBPort      string `yaml:"db_port"`
	DBUser      string `yaml:"db_user"`
	DBPassword  string `yaml:"db_password"`
	DBName      string `yaml:"db_name"`
	DBSSLMode   string `yaml:"db_sslmode"`

	TaskBackend   string `yaml:"task_backend"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	DiscordToken string `yaml:"discord_token"`
	VerifiedRole string `yaml:"verified_role"`
	SessionRole  string `yaml:"session_role"`

	JWTAccessSecret   string `yaml:"jwt_access_secret"`
	JWTRefreshSecret  string `yaml:"jwt_refresh_secret"`
	AdminUser         string `yaml:"admin_user"`
	AdminPasswordHash string `yaml:"admin_password_hash"`

	Timezone     string        `yaml:"timezone"`
	GracePeriod  time.Duration `yaml:"grace_period"`
	ScheduleSpec string        `yaml:"schedule_spec"`
	ReaperSpec   string        `yaml:"reaper_spec"`
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func defaults() *Config {
	return &Config{
		HTTPAddr:     ":8080",
		Store:        StorePostgres,
		DBPort:       "5432",
		DBSSLMode:    "disable",
		TaskBackend:  TasksRedis,
		RedisAddr:    "localhost:6379",
		VerifiedRole: "Verified",
		SessionRole:  "Active Session",
		Timezone:     "Local",
		GracePeriod:  60 * time.Second,
		ScheduleSpec: "0 * * * * *",
		ReaperSpec:   "*/5 * * * * *",
	}
}

// Load reads .env (unless ENV_CHEK is set), the optional CONFIG_FILE and the
// environment, in that order of increasing priority.
func Load() (*Config, error) {
	if os.Getenv("ENV_CHEK") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[INFO] .env не найден, используются переменные окружения")
		}
	}

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Field: "CONFIG_FILE", Message: fmt.Sprintf("failed to read config file: %v", err)}
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &ConfigError{Field: "CONFIG_FILE", Message: fmt.Sprintf("failed to parse YAML: %v", err)}
	}
	return nil
}

func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	str("HTTP_ADDR", &c.HTTPAddr)
	str("STORE", &c.Store)
	str("DATABASE_DSN", &c.DatabaseDSN)
	str("DB_HOST", &c.DBHost)
	str("DB_PORT", &c.DBPort)
	str("DB_USER", &c.DBUser)
	str("DB_PASSWORD", &c.DBPassword)
	str("DB_NAME", &c.DBName)
	str("DB_SSLMODE", &c.DBSSLMode)
	str("TASK_BACKEND", &c.TaskBackend)
	str("REDIS_ADDR", &c.RedisAddr)
	str("REDIS_PASSWORD", &c.RedisPassword)
	str("DISCORD_TOKEN", &c.DiscordToken)
	str("VERIFIED_ROLE", &c.VerifiedRole)
	str("SESSION_ROLE", &c.SessionRole)
	str("JWT_ACCESS_SECRET", &c.JWTAccessSecret)
	str("JWT_REFRESH_SECRET", &c.JWTRefreshSecret)
	str("ADMIN_USER", &c.AdminUser)
	str("ADMIN_PASSWORD_HASH", &c.AdminPasswordHash)
	str("TIMEZONE", &c.Timezone)
	str("SCHEDULE_SPEC", &c.ScheduleSpec)
	str("REAPER_SPEC", &c.ReaperSpec)

	if v, ok := os.LookupEnv("REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ConfigError{Field: "REDIS_DB", Message: "REDIS_DB must be an integer"}
		}
		c.RedisDB = n
	}
	if v, ok := os.LookupEnv("GRACE_PERIOD"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &ConfigError{Field: "GRACE_PERIOD", Message: "GRACE_PERIOD must be a duration such as 60s"}
		}
		c.GracePeriod = d
	}
	return nil
}

// Validate checks that every backend selected has what it needs.
func (c *Config) Validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DatabaseDSN == "" && c.DBHost == "" {
			return &ConfigError{Field: "DB_HOST", Message: "DB_HOST or DATABASE_DSN is required for the postgres store"}
		}
	case StoreMemory:
	default:
		return &ConfigError{Field: "STORE", Message: fmt.Sprintf("unknown store %q", c.Store)}
	}

	switch c.TaskBackend {
	case TasksRedis:
		if c.RedisAddr == "" {
			return &ConfigError{Field: "REDIS_ADDR", Message: "REDIS_ADDR is required for the redis task backend"}
		}
	case TasksMemory:
	default:
		return &ConfigError{Field: "TASK_BACKEND", Message: fmt.Sprintf("unknown task backend %q", c.TaskBackend)}
	}

	if c.JWTAccessSecret == "" {
		return &ConfigError{Field: "JWT_ACCESS_SECRET", Message: "JWT_ACCESS_SECRET is required"}
	}
	if c.JWTRefreshSecret == "" {
		c.JWTRefreshSecret = c.JWTAccessSecret
	}
	if c.GracePeriod <= 0 {
		return &ConfigError{Field: "GRACE_PERIOD", Message: "GRACE_PERIOD must be positive"}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TIMEZONE used for schedule evaluation.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, &ConfigError{Field: "TIMEZONE", Message: fmt.Sprintf("unknown timezone %q", c.Timezone)}
	}
	return loc, nil
}

// PostgresDSN returns DATABASE_DSN or builds one from the DB_* settings.
func (c *Config) PostgresDSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
