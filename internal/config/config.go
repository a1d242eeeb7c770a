package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every environment variable name.
const Prefix = "ZONETASKS_"

type Config struct {
	Addr        string `env:"ADDR" envDefault:":8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	StoreEngine string `env:"STORE_ENGINE" envDefault:"sqlite"`
	DBPath      string `env:"DB_PATH" envDefault:"zonetasks.db"`
	// Timezone decides what "today" is. "Local" uses the host zone.
	Timezone        string `env:"TIMEZONE" envDefault:"Local"`
	RefreshSchedule string `env:"REFRESH_SCHEDULE" envDefault:"0 0 * * *"`

	BackupDir           string `env:"BACKUP_DIR"`
	BackupPassphrase    string `env:"BACKUP_PASSPHRASE"`
	BackupRetentionDays int    `env:"BACKUP_RETENTION_DAYS" envDefault:"30"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: Prefix})
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// BackupsEnabled reports whether close-day exports should be written.
func (c Config) BackupsEnabled() bool {
	return c.BackupDir != "" && c.BackupPassphrase != ""
}
