package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all habitd configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Nudge      NudgeConfig      `toml:"nudge"`
	Timeline   TimelineConfig   `toml:"timeline"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath          string `toml:"db_path,omitempty"`
	SchedulerBuffer int    `toml:"scheduler_buffer"`
}

// NudgeConfig controls the evening reminder to fill in the day.
type NudgeConfig struct {
	Enabled bool `toml:"enabled"`
	Hour    int  `toml:"hour"`
}

// TimelineConfig holds timeline view settings.
type TimelineConfig struct {
	Days int `toml:"days"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			SchedulerBuffer: 64,
		},
		Nudge: NudgeConfig{
			Enabled: true,
			Hour:    20,
		},
		Timeline: TimelineConfig{
			Days: 14,
		},
		Appearance: AppearanceConfig{
			Theme: "dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "habitd")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "habitd")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied on top of whatever was read.
func Load() (Config, error) {
	cfg, err := LoadPath(ConfigPath())
	if err != nil {
		return cfg, err
	}
	return FromEnv(cfg), nil
}

// LoadPath reads a config file from an explicit location.
func LoadPath(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// FromEnv applies HABITD_* environment overrides on top of base.
func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("HABITD_DB_PATH")); v != "" {
		cfg.General.DBPath = v
	}
	if v, ok := getEnvInt("HABITD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.General.SchedulerBuffer = v
	}
	if v, ok := getEnvBool("HABITD_NUDGE"); ok {
		cfg.Nudge.Enabled = v
	}
	if v, ok := getEnvInt("HABITD_NUDGE_HOUR"); ok && v >= 0 && v <= 23 {
		cfg.Nudge.Hour = v
	}
	if v, ok := getEnvInt("HABITD_TIMELINE_DAYS"); ok && v > 0 {
		cfg.Timeline.Days = v
	}
	if v := strings.TrimSpace(os.Getenv("HABITD_THEME")); v != "" {
		cfg.Appearance.Theme = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
