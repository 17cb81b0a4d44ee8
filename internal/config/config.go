package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/gilded-rose/internal/common"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. ROSE_DATABASE_PATH.
const EnvPrefix = "ROSE"

// Config holds all application settings.
type Config struct {
	Logging    LoggingConfig
	Database   DatabaseConfig
	Simulation SimulationConfig
}

// LoggingConfig controls the global slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// DatabaseConfig locates the inventory database.
type DatabaseConfig struct {
	Path string
}

// SimulationConfig holds defaults for simulation commands.
type SimulationConfig struct {
	Fixture string
	Days    int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("simulation.days", 2)
	v.SetDefault("simulation.fixture", "")
}

// Load reads settings from v, applying defaults for anything unset.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("logging.level")),
			Format: strings.ToLower(v.GetString("logging.format")),
		},
		Database: DatabaseConfig{
			Path: ExpandPath(v.GetString("database.path")),
		},
		Simulation: SimulationConfig{
			Days:    v.GetInt("simulation.days"),
			Fixture: ExpandPath(v.GetString("simulation.fixture")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.Logging.Format)
	}

	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}

	if c.Simulation.Days < 0 {
		return fmt.Errorf("%w: simulation.days must not be negative, got %d", common.ErrInvalidConfig, c.Simulation.Days)
	}

	return nil
}

// EnvKeyReplacer maps nested keys to environment names: simulation.days
// becomes ROSE_SIMULATION_DAYS.
func EnvKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}
