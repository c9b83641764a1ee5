package common

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional ~/.config/dahdit/config.yaml file. Command line
// flags override it.
type Config struct {
	Morse MorseConfig `yaml:"morse"`
	Log   LogConfig   `yaml:"log"`
}

type MorseConfig struct {
	WPM        float64 `yaml:"wpm"`
	Frequency  float64 `yaml:"frequency"`
	Volume     float64 `yaml:"volume"`
	Shape      string  `yaml:"shape"`
	SampleRate int     `yaml:"sample_rate"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Morse: MorseConfig{
			WPM:        20,
			Frequency:  750,
			Volume:     0.5,
			Shape:      "sine",
			SampleRate: 44100,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LoadConfig reads ConfigPath. A missing file yields DefaultConfig.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(ConfigPath())
}

func LoadConfigFrom(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	// Zero values mean "not set"
	defaults := DefaultConfig()
	if cfg.Morse.WPM <= 0 {
		cfg.Morse.WPM = defaults.Morse.WPM
	}
	if cfg.Morse.Frequency <= 0 {
		cfg.Morse.Frequency = defaults.Morse.Frequency
	}
	if cfg.Morse.Shape == "" {
		cfg.Morse.Shape = defaults.Morse.Shape
	}
	if cfg.Morse.SampleRate <= 0 {
		cfg.Morse.SampleRate = defaults.Morse.SampleRate
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	return cfg, nil
}
