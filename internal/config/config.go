// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: environment variables > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/shift"
)

// Seconds is a wrapper around time.Duration that supports YAML unmarshaling
// from plain numeric seconds (integer or float), matching the sampling
// interval format operators enter on the settings screen.
type Seconds struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Seconds.
func (s *Seconds) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("unsupported interval format: %v", value.Kind)
	}
	f, err := strconv.ParseFloat(value.Value, 64)
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", value.Value, err)
	}
	s.Duration = time.Duration(f * float64(time.Second))
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface for Seconds.
func (s Seconds) MarshalYAML() (interface{}, error) {
	return s.Duration.Seconds(), nil
}

// clockLayout is the time-of-day format used by the shift schedule.
const clockLayout = "15:04:05"

// ClockTime is a time-of-day value that unmarshals from "HH:MM:SS" strings.
type ClockTime struct {
	offset time.Duration // since midnight
}

// ParseClock converts an "HH:MM:SS" string to a ClockTime.
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	offset := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
	return ClockTime{offset: offset}, nil
}

// Offset returns the duration since midnight.
func (c ClockTime) Offset() time.Duration {
	return c.offset
}

// String formats the clock time as "HH:MM:SS".
func (c ClockTime) String() string {
	h := int(c.offset / time.Hour)
	m := int(c.offset % time.Hour / time.Minute)
	s := int(c.offset % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for ClockTime.
func (c *ClockTime) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("unsupported clock time format: %v", value.Kind)
	}
	parsed, err := ParseClock(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface for ClockTime.
func (c ClockTime) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// Config holds all production monitor configuration.
type Config struct {
	Simulation       bool          `yaml:"simulation"`
	MachineID        string        `yaml:"machine_id"`
	Server           ServerConfig  `yaml:"server"`
	SamplingInterval Seconds       `yaml:"sampling_interval"`
	CountersFile     string        `yaml:"counters_file"`
	HTTP             HTTPConfig    `yaml:"http"`
	Logging          LoggingConfig `yaml:"logging"`
	Shifts           []ShiftConfig `yaml:"shifts"`
	StopReasons      []string      `yaml:"stop_reasons"`
	Email            *EmailConfig  `yaml:"email,omitempty"`
}

// ServerConfig holds the TCP relay endpoint settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// HTTPConfig holds the operator control surface settings.
// An empty Addr disables the HTTP server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds logging settings, including file rotation.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	Backups   int    `yaml:"backups"`
}

// ShiftConfig is one named shift window. Start and End are times of day;
// a window whose start is later than its end crosses midnight.
type ShiftConfig struct {
	Name  string    `yaml:"name"`
	Start ClockTime `yaml:"start"`
	End   ClockTime `yaml:"end"`
}

// EmailConfig holds SMTP settings for stop notifications.
// Recipients maps stop reasons to addresses; the "Other" key is the fallback.
type EmailConfig struct {
	SMTPHost   string            `yaml:"smtp_host"`
	SMTPPort   int               `yaml:"smtp_port"`
	From       string            `yaml:"from"`
	Password   string            `yaml:"password"`
	Recipients map[string]string `yaml:"recipients"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Simulation:       true,
		MachineID:        "MACHINE-01",
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 9000,
		},
		SamplingInterval: Seconds{10 * time.Second},
		CountersFile:     "production_counters.json",
		HTTP: HTTPConfig{
			Addr: ":8081",
		},
		Logging: LoggingConfig{
			Level:     "info",
			File:      "production_monitor.log",
			MaxSizeMB: 5,
			Backups:   3,
		},
		StopReasons: []string{
			"Maintenance", "Jam", "Material Shortage",
			"Quality Issue", "Changeover", "Break",
		},
	}
}

// LoadFromBytes parses YAML configuration from a byte slice and merges with defaults.
// Environment variables take highest precedence and override values from the byte slice.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config data: %w", err)
		}
	}

	// Environment variable overrides (highest precedence)
	applyEnvOverrides(cfg)

	return cfg, nil
}

// Load reads configuration from a YAML file and merges with defaults.
// The process must not start without a valid configuration, so an
// unreadable or missing file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	candidates := configSearchPaths()
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Write serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func Write(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0640)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables have the highest precedence.
func applyEnvOverrides(cfg *Config) {
	if host := os.Getenv("FM_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("FM_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if id := os.Getenv("FM_MACHINE_ID"); id != "" {
		cfg.MachineID = id
	}
	if level := os.Getenv("FM_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if sim := os.Getenv("FM_SIMULATION"); sim != "" {
		if b, err := strconv.ParseBool(sim); err == nil {
			cfg.Simulation = b
		}
	}
}

// ShiftWindows converts the configured shift schedule into shift windows,
// preserving configuration order.
func (c *Config) ShiftWindows() []shift.Window {
	windows := make([]shift.Window, 0, len(c.Shifts))
	for _, s := range c.Shifts {
		windows = append(windows, shift.Window{
			Name:  s.Name,
			Start: s.Start.Offset(),
			End:   s.End.Offset(),
		})
	}
	return windows
}

// Validate checks that the configuration is valid for production use.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if c.MachineID == "" {
		return fmt.Errorf("machine ID cannot be empty")
	}
	if c.SamplingInterval.Duration <= 0 {
		return fmt.Errorf("sampling interval must be positive")
	}
	if c.CountersFile == "" {
		return fmt.Errorf("counters file path cannot be empty")
	}
	for i, s := range c.Shifts {
		if s.Name == "" {
			return fmt.Errorf("shift %d: name cannot be empty", i)
		}
	}
	return nil
}
