// Package config reads server and CLI settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

var ErrUnknownStore = errors.New("unknown store")

type Config struct {
	Addr         string        `env:"CHEESE_ADDR,default=:8000"`
	Store        string        `env:"CHEESE_STORE,default=memory"`
	SQLitePath   string        `env:"CHEESE_SQLITE_PATH,default=cheese.db"`
	DatabaseURL  string        `env:"DATABASE_URL"`
	RollDelay    time.Duration `env:"CHEESE_ROLL_DELAY,default=1s"`
	BonusCards   bool          `env:"CHEESE_BONUS_CARDS,default=false"`
	IdentityPath string        `env:"CHEESE_IDENTITY_PATH,default=.cheese-identity"`
	StaticDir    string        `env:"CHEESE_STATIC_DIR,default=./build"`
}

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// Load reads the optional dotenv file and then decodes the environment.
// Unset variables take their defaults.
func Load(dotenvPath string) (Config, error) {
	if dotenvPath != "" {
		if err := LoadDotEnv(dotenvPath); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
	}
	if c.RollDelay < 0 {
		return fmt.Errorf("roll delay must not be negative, got %s", c.RollDelay)
	}
	return nil
}
