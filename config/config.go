package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all top-level configuration sections.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Network    NetworkConfig    `mapstructure:"network"`
	Vehicle    VehicleConfig    `mapstructure:"vehicle"`
	Hazard     HazardConfig     `mapstructure:"hazard"`
	Storage    StorageConfig    `mapstructure:"storage"`
}

// SimulationConfig holds run-length and output settings.
type SimulationConfig struct {
	Steps         int     `mapstructure:"steps"`
	StepSeconds   float64 `mapstructure:"step_seconds"`
	CSVAppendMode bool    `mapstructure:"csv_append_mode"`
	OutputDir     string  `mapstructure:"output_dir"`
}

// LoggingConfig holds log level, file rotation and status-log settings.
// Rotation parameters follow lumberjack semantics. An empty Dir keeps
// logging on stdout only.
type LoggingConfig struct {
	Level          string `mapstructure:"level"`
	Dir            string `mapstructure:"dir"`
	MaxSizeMB      int    `mapstructure:"max_size_mb"`
	MaxBackups     int    `mapstructure:"max_backups"`
	MaxAgeDays     int    `mapstructure:"max_age_days"`
	Compress       bool   `mapstructure:"compress"`
	StatusInterval int    `mapstructure:"status_interval"`
}

// NetworkConfig holds ring road parameters.
type NetworkConfig struct {
	NumCells       int     `mapstructure:"num_cells"`
	SignalInterval int     `mapstructure:"signal_interval"`
	SignalCycle    int     `mapstructure:"signal_cycle"`
	RadiusM        float64 `mapstructure:"radius_m"`
}

// VehicleConfig holds fleet parameters.
type VehicleConfig struct {
	Count       int     `mapstructure:"count"`
	SlowingProb float64 `mapstructure:"slowing_prob"`
}

// HazardConfig holds hazard generation parameters. Seed 0 picks a
// random seed at startup.
type HazardConfig struct {
	Probability   float64 `mapstructure:"probability"`
	DurationSteps int     `mapstructure:"duration_steps"`
	RadiusM       float64 `mapstructure:"radius_m"`
	Seed          uint64  `mapstructure:"seed"`
}

// StorageConfig holds the optional SQLite mirror settings.
type StorageConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads the TOML config at path. A missing file is not an error:
// defaults apply, and any key can be overridden via MUMBAISIM_*
// environment variables (e.g. MUMBAISIM_SIMULATION_OUTPUT_DIR).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix("mumbaisim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyBounds(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.steps", 3600)
	v.SetDefault("simulation.step_seconds", 1.0)
	v.SetDefault("simulation.csv_append_mode", true)
	v.SetDefault("simulation.output_dir", "output_data")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.dir", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 7)
	v.SetDefault("logging.compress", false)
	v.SetDefault("logging.status_interval", 300)

	v.SetDefault("network.num_cells", 400)
	v.SetDefault("network.signal_interval", 40)
	v.SetDefault("network.signal_cycle", 60)
	v.SetDefault("network.radius_m", 1200.0)

	v.SetDefault("vehicle.count", 80)
	v.SetDefault("vehicle.slowing_prob", 0.1)

	v.SetDefault("hazard.probability", 0.002)
	v.SetDefault("hazard.duration_steps", 120)
	v.SetDefault("hazard.radius_m", 50.0)
	v.SetDefault("hazard.seed", 0)

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.path", "output_data/simulation.db")
}

// applyBounds replaces out-of-range values with safe defaults, so an
// odd config file degrades instead of crashing the run.
func applyBounds(cfg *Config) {
	if cfg.Simulation.Steps <= 0 {
		cfg.Simulation.Steps = 3600
	}
	if cfg.Simulation.StepSeconds <= 0 {
		cfg.Simulation.StepSeconds = 1.0
	}
	if cfg.Simulation.OutputDir == "" {
		cfg.Simulation.OutputDir = "output_data"
	}

	if cfg.Network.NumCells <= 0 {
		cfg.Network.NumCells = 400
	}
	if cfg.Network.SignalInterval <= 0 {
		cfg.Network.SignalInterval = 40
	}
	if cfg.Network.SignalCycle <= 1 {
		cfg.Network.SignalCycle = 60
	}
	if cfg.Network.RadiusM <= 0 {
		cfg.Network.RadiusM = 1200.0
	}

	if cfg.Vehicle.Count < 0 {
		cfg.Vehicle.Count = 0
	}
	if cfg.Vehicle.SlowingProb < 0 || cfg.Vehicle.SlowingProb > 1 {
		cfg.Vehicle.SlowingProb = 0.1
	}

	if cfg.Hazard.Probability < 0 || cfg.Hazard.Probability > 1 {
		cfg.Hazard.Probability = 0.002
	}
	if cfg.Hazard.DurationSteps <= 0 {
		cfg.Hazard.DurationSteps = 120
	}
	if cfg.Hazard.RadiusM <= 0 {
		cfg.Hazard.RadiusM = 50.0
	}
}
