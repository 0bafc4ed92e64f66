package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the link watchdog
type Config struct {
	Targets  []string       `yaml:"targets" env:"TARGETS" env-default:"8.8.8.8,1.1.1.1"`
	Schedule string         `yaml:"schedule" env-default:"@every 1m"`
	Probe    ProbeConfig    `yaml:"probe"`
	Database DatabaseConfig `yaml:"database"`
	Escalate EscalateConfig `yaml:"escalate"`
	Web      WebConfig      `yaml:"web"`
	Log      LogConfig      `yaml:"log"`
}

type ProbeConfig struct {
	Count      int           `yaml:"count" env-default:"33"`
	Timeout    time.Duration `yaml:"timeout" env-default:"5s"`
	Interval   time.Duration `yaml:"interval" env-default:"1s"`
	Privileged bool          `yaml:"privileged" env:"PROBE_PRIVILEGED" env-default:"false"`
}

type DatabaseConfig struct {
	Path      string        `yaml:"path" env:"DATABASE_PATH" env-default:"logs/internet_status.db"`
	Retention time.Duration `yaml:"retention" env-default:"336h"`
}

type EscalateConfig struct {
	Threshold     int              `yaml:"threshold" env-default:"5"`
	CounterPath   string           `yaml:"counter_path" env-default:"logs/failure_count.txt"`
	Cooldown      time.Duration    `yaml:"cooldown" env-default:"0s"`
	LastCyclePath string           `yaml:"last_cycle_path" env-default:"logs/cooldown.txt"`
	PowerCycle    PowerCycleConfig `yaml:"power_cycle"`
}

type PowerCycleConfig struct {
	Command     []string      `yaml:"command"`
	Timeout     time.Duration `yaml:"timeout" env-default:"2m"`
	MaxAttempts int           `yaml:"max_attempts" env-default:"3"`
	LogPath     string        `yaml:"log_path" env-default:"logs/power_cycle.log"`
}

type WebConfig struct {
	Enabled bool   `yaml:"enabled" env-default:"true"`
	Address string `yaml:"address" env:"WEB_ADDRESS" env-default:":8050"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from the given YAML file with environment
// overrides. An empty path falls back to CONFIG_PATH, and with no file at
// all the built-in defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return fmt.Errorf("at least one target must be specified")
	}
	if c.Schedule == "" {
		return fmt.Errorf("schedule cannot be empty")
	}
	if c.Probe.Count <= 0 {
		return fmt.Errorf("probe count must be positive")
	}
	if c.Probe.Timeout <= 0 {
		return fmt.Errorf("probe timeout must be positive")
	}
	if c.Probe.Interval <= 0 {
		return fmt.Errorf("probe interval must be positive")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.Database.Retention <= 0 {
		return fmt.Errorf("retention must be positive")
	}
	if c.Escalate.Threshold < 1 {
		return fmt.Errorf("escalation threshold must be at least 1")
	}
	if c.Escalate.CounterPath == "" {
		return fmt.Errorf("counter path cannot be empty")
	}
	if c.Escalate.Cooldown > 0 && c.Escalate.LastCyclePath == "" {
		return fmt.Errorf("last cycle path cannot be empty when cooldown is enabled")
	}
	if c.Escalate.PowerCycle.MaxAttempts < 1 {
		return fmt.Errorf("power cycle max attempts must be at least 1")
	}
	if c.Web.Enabled && c.Web.Address == "" {
		return fmt.Errorf("web address cannot be empty when web is enabled")
	}
	return nil
}
