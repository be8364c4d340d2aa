package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Insecure fallbacks, only meant for local development.
const (
	DefaultAccessSecret  = "default_access_secret_change_in_production"
	DefaultRefreshSecret = "default_refresh_secret_change_in_production"
	DefaultHashCost      = 10
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Hash      HashConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Name        string        `mapstructure:"name"`
	Environment string        `mapstructure:"environment"`
	Debug       bool          `mapstructure:"debug"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Port        string        `mapstructure:"port"`
	APIVersion  string        `mapstructure:"api_version"`
}

type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// JWTConfig holds the two signing secrets. Access and refresh tokens never
// share a key.
type JWTConfig struct {
	AccessSecret  string `mapstructure:"access_secret"`
	RefreshSecret string `mapstructure:"refresh_secret"`
	Issuer        string `mapstructure:"issuer"`
}

type HashConfig struct {
	Cost int `mapstructure:"cost"`
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`
}

type RateLimitConfig struct {
	Request  int `mapstructure:"request"`
	Duration int `mapstructure:"duration"`
}

// SeedConfig describes an optional development account created at startup.
type SeedConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	environment := getEnv("APP_ENV", constants.EnvDevelopment)
	debug := getEnvAsBool("APP_DEBUG", environment != constants.EnvProduction)

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "auth-service"),
			Environment: environment,
			Port:        getEnv("APP_PORT", getEnv("PORT", "8080")),
			Debug:       debug,
			Timeout:     getEnvAsDuration("APP_TIMEOUT", 30*time.Second),
			APIVersion:  getEnv("API_VERSION", "v1"),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "auth_db"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
		},
		Redis: RedisConfig{
			Enabled:      getEnvAsBool("REDIS_ENABLED", false),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvAsInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			Database:     getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
			DialTimeout:  getEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvAsDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvAsDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getEnvAsDuration("REDIS_POOL_TIMEOUT", 4*time.Second),
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_SECRET", DefaultAccessSecret),
			RefreshSecret: getEnv("REFRESH_TOKEN_SECRET", DefaultRefreshSecret),
			Issuer:        getEnv("JWT_ISSUER", "auth-service"),
		},
		Hash: HashConfig{
			Cost: getEnvAsInt("HASH_COST", DefaultHashCost),
		},
		RateLimit: RateLimitConfig{
			Request:  getEnvAsInt("RATE_LIMIT_MAX_REQUEST", 5),
			Duration: getEnvAsInt("RATE_LIMIT_DURATION", 60),
		},
		Log: LogConfig{
			Path:  getEnv("LOGS_PATH", "./logs"),
			Level: getEnv("LOG_LEVEL", defaultLogLevel(debug)),
		},
		Seed: SeedConfig{
			Enabled:  getEnvAsBool("SEED_ENABLED", false),
			Username: getEnv("SEED_USERNAME", "admin"),
			Email:    getEnv("SEED_EMAIL", "admin@auth.local"),
			Password: getEnv("SEED_PASSWORD", ""),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func defaultLogLevel(debug bool) string {
	if debug {
		return constants.LogLevelDebug
	}
	return constants.LogLevelInfo
}

func (c *Config) validate() error {
	switch c.App.Environment {
	case constants.EnvDevelopment, constants.EnvStaging, constants.EnvProduction:
	default:
		return fmt.Errorf("APP_ENV must be %s, %s or %s, got %q",
			constants.EnvDevelopment, constants.EnvStaging, constants.EnvProduction, c.App.Environment)
	}
	switch c.Log.Level {
	case constants.LogLevelDebug, constants.LogLevelInfo, constants.LogLevelWarn, constants.LogLevelError:
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.Hash.Cost < bcrypt.MinCost || c.Hash.Cost > bcrypt.MaxCost {
		return fmt.Errorf("HASH_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Hash.Cost)
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return fmt.Errorf("JWT_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.Seed.Enabled && c.IsProduction() {
		return fmt.Errorf("SEED_ENABLED is not allowed in production")
	}
	if c.Seed.Enabled && c.Seed.Password == "" {
		return fmt.Errorf("SEED_PASSWORD is required when SEED_ENABLED is set")
	}
	if c.RateLimit.Request <= 0 || c.RateLimit.Duration <= 0 {
		return fmt.Errorf("rate limit request and duration must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == constants.EnvProduction
}

// UsesDefaultSecrets reports whether either signing secret is still the
// built-in fallback.
func (c *Config) UsesDefaultSecrets() bool {
	return c.JWT.AccessSecret == DefaultAccessSecret || c.JWT.RefreshSecret == DefaultRefreshSecret
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimit.Duration) * time.Second
}

func (c *Config) DatabaseConnectionString() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func (c *Config) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
