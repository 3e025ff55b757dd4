package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate rejects settings the rig cannot run with.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		return fmt.Errorf("camera fov %v out of range", c.Camera.FovDegrees)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip planes near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.BoundMargin <= 0 {
		return fmt.Errorf("camera bound_margin %v must be positive", c.Camera.BoundMargin)
	}
	if c.Camera.Position[2] == 0 {
		return fmt.Errorf("camera must sit off the actor plane (position z = 0)")
	}
	if c.Rig.MaxDeltaMs <= 0 {
		return fmt.Errorf("rig max_delta_ms must be positive")
	}
	if c.Rig.PitchUp >= c.Rig.PitchDown {
		return fmt.Errorf("rig pitch range [%v, %v] is empty", c.Rig.PitchUp, c.Rig.PitchDown)
	}
	if c.Rig.YawLimit <= 0 {
		return fmt.Errorf("rig yaw_limit must be positive")
	}
	if c.Rig.NeckShare < 0 || c.Rig.NeckShare > 1 {
		return fmt.Errorf("rig neck_share %v outside [0, 1]", c.Rig.NeckShare)
	}
	if c.Rig.FadeSeconds < 0 || c.Rig.GestureFadeSeconds < 0 {
		return fmt.Errorf("rig fade durations must not be negative")
	}
	if c.Rig.TiltRange <= 0 {
		return fmt.Errorf("rig tilt_range must be positive")
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Robostage")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Robostage")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "robostage")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "robostage")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
