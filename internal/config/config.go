package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Store drivers understood by STORE_DRIVER.
const (
	StoreDriverFile  = "file"
	StoreDriverBolt  = "bolt"
	StoreDriverMySQL = "mysql"
)

// DefaultEnvFile is read before the process environment when it exists.
const DefaultEnvFile = "./config/.env"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string        `env:"SERVER_PORT" env-default:"3000"`
	StoreDriver string        `env:"STORE_DRIVER" env-default:"file"`
	StorePath   string        `env:"STORE_PATH" env-default:"data/db.json"`
	MySQLDSN    string        `env:"MYSQL_DSN" env-default:"user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"`
	RedisAddr   string        `env:"REDIS_ADDR"`
	RedisDB     int           `env:"REDIS_DB" env-default:"0"`
	RedisPass   string        `env:"REDIS_PASSWORD"`
	SessionTTL  time.Duration `env:"SESSION_TTL" env-default:"24h"`
	ResetStore  bool          `env:"RESET_STORE" env-default:"false"`
	LogDebug    bool          `env:"LOG_DEBUG" env-default:"false"`
	SwaggerHost string        `env:"SWAGGER_HOST"`
}

// Load builds Config from ./config/.env (if present) and the environment.
func Load() (*Config, error) {
	return LoadFile(DefaultEnvFile)
}

// LoadFile is Load with an explicit env file path.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverFile, StoreDriverBolt, StoreDriverMySQL:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}
