package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvLocal       = "local"
	EnvDevelopment = "development"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type SnowflakeConfig struct {
	Account         string
	User            string
	Password        string
	PrivateKeyPath  string
	Database        string
	Schema          string
	Warehouse       string
	Role            string
	ConnectionsFile string
	ConnectionName  string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	CommandTimeout  time.Duration
}

type AuthConfig struct {
	AccessSecret string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

type CacheConfig struct {
	Backend         string
	TTL             time.Duration
	CleanupInterval time.Duration
	Redis           RedisConfig
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Snowflake   SnowflakeConfig
	Auth        AuthConfig
	Cache       CacheConfig
}

func (c *Config) IsLocal() bool {
	return c.Environment == EnvLocal
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: splitList(v.GetString("HTTP_ALLOWED_ORIGINS")),
		},
		Snowflake: SnowflakeConfig{
			Account:         v.GetString("SNOWFLAKE_ACCOUNT"),
			User:            v.GetString("SNOWFLAKE_USER"),
			Password:        v.GetString("SNOWFLAKE_PASSWORD"),
			PrivateKeyPath:  v.GetString("SNOWFLAKE_PRIVATE_KEY_PATH"),
			Database:        v.GetString("SNOWFLAKE_DATABASE"),
			Schema:          v.GetString("SNOWFLAKE_SCHEMA"),
			Warehouse:       v.GetString("SNOWFLAKE_WAREHOUSE"),
			Role:            v.GetString("SNOWFLAKE_ROLE"),
			ConnectionsFile: v.GetString("SNOWFLAKE_CONNECTIONS_FILE"),
			ConnectionName:  v.GetString("SNOWFLAKE_CONNECTION_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			CommandTimeout:  v.GetDuration("DB_COMMAND_TIMEOUT"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Cache: CacheConfig{
			Backend:         strings.ToLower(v.GetString("CACHE_BACKEND")),
			TTL:             v.GetDuration("CACHE_TTL"),
			CleanupInterval: v.GetDuration("CACHE_CLEANUP_INTERVAL"),
			Redis: RedisConfig{
				Address:  v.GetString("REDIS_ADDRESS"),
				Password: v.GetString("REDIS_PASSWORD"),
				DB:       v.GetInt("REDIS_DB"),
				Prefix:   v.GetString("REDIS_PREFIX"),
			},
		},
	}

	applyDefaults(cfg)

	if cfg.IsLocal() {
		if err := applyConnectionProfile(cfg); err != nil {
			return nil, err
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"http://localhost:4200"}
	}
	if cfg.Environment == "" {
		cfg.Environment = EnvDevelopment
	}
	if cfg.Snowflake.CommandTimeout <= 0 {
		cfg.Snowflake.CommandTimeout = 120 * time.Second
	}
	if cfg.Snowflake.MaxOpenConns <= 0 {
		cfg.Snowflake.MaxOpenConns = 10
	}
	if cfg.Snowflake.MaxIdleConns <= 0 {
		cfg.Snowflake.MaxIdleConns = 2
	}
	if cfg.Snowflake.ConnMaxLifetime <= 0 {
		cfg.Snowflake.ConnMaxLifetime = 30 * time.Minute
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = CacheBackendMemory
	}
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = time.Hour
	}
	if cfg.Cache.CleanupInterval <= 0 {
		cfg.Cache.CleanupInterval = 10 * time.Minute
	}
	if cfg.Cache.Redis.Prefix == "" {
		cfg.Cache.Redis.Prefix = "fleet-analytics:"
	}
}

func applyConnectionProfile(cfg *Config) error {
	path := cfg.Snowflake.ConnectionsFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".snowflake", "connections.toml")
	}

	profile, err := LoadConnectionProfile(path, cfg.Snowflake.ConnectionName)
	if err != nil {
		return err
	}
	cfg.Snowflake = profile.Apply(cfg.Snowflake)
	return nil
}

func validate(cfg *Config) error {
	if cfg.Snowflake.Account == "" {
		return fmt.Errorf("SNOWFLAKE_ACCOUNT is required")
	}
	if cfg.Snowflake.User == "" {
		return fmt.Errorf("SNOWFLAKE_USER is required")
	}
	if cfg.Snowflake.PrivateKeyPath == "" && cfg.Snowflake.Password == "" {
		return fmt.Errorf("SNOWFLAKE_PRIVATE_KEY_PATH or SNOWFLAKE_PASSWORD is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	switch cfg.Cache.Backend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if cfg.Cache.Redis.Address == "" {
			return fmt.Errorf("REDIS_ADDRESS is required for the redis cache backend")
		}
	default:
		return fmt.Errorf("unsupported CACHE_BACKEND %q", cfg.Cache.Backend)
	}
	return nil
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
