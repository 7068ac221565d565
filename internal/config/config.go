package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	ServerAddress  string        `mapstructure:"SERVER_ADDRESS"`
	PostgresConn   string        `mapstructure:"POSTGRES_CONN"`
	PostgresDB     string        `mapstructure:"POSTGRES_DATABASE"`
	MigrationsPath string        `mapstructure:"MIGRATIONS_PATH"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int           `mapstructure:"REDIS_DB"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	ReviewCacheTTL time.Duration `mapstructure:"REVIEW_CACHE_TTL"`
}

var (
	ErrNoPostgresConn = errors.New("POSTGRES_CONN is required")
	ErrNoJWTSecret    = errors.New("JWT_SECRET is required")
)

var defaults = map[string]any{
	"ENV":               "development",
	"SERVER_ADDRESS":    "0.0.0.0:8080",
	"POSTGRES_CONN":     "",
	"POSTGRES_DATABASE": "reviews",
	"MIGRATIONS_PATH":   "file://migrations",
	"REDIS_ADDR":        "localhost:6379",
	"REDIS_PASSWORD":    "",
	"REDIS_DB":          0,
	"JWT_SECRET":        "",
	"REVIEW_CACHE_TTL":  5 * time.Minute,
}

// Load reads an optional .env file and then the process environment.
// Values already present in the environment win over the .env file.
func Load(envFiles ...string) (*Config, error) {
	// a missing .env is fine, the environment may be set by the orchestrator
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		// AutomaticEnv only resolves keys viper already knows about
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.PostgresConn == "" {
		return nil, ErrNoPostgresConn
	}
	if cfg.JWTSecret == "" {
		return nil, ErrNoJWTSecret
	}

	return &cfg, nil
}
