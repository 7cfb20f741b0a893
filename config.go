package tpool

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Name    string     `yaml:"name" json:"name"`
	Workers int        `yaml:"workers" json:"workers"`
	Log     *LogConfig `yaml:"log" json:"log"`

	// Metrics cannot come from a file; set it programmatically.
	Metrics *Metrics `yaml:"-" json:"-"`
}

type LogConfig struct {
	AppFile    string `yaml:"app_file" json:"app_file"`
	ErrorFile  string `yaml:"error_file" json:"error_file"`
	MaxSize    int    `yaml:"max_size" json:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAge     int    `yaml:"max_age" json:"max_age"` // days
	Compress   bool   `yaml:"compress" json:"compress"`
}

func DefaultConfig() Config {
	return Config{
		Name:    "tpool",
		Workers: runtime.NumCPU(),
	}
}

func DefaultLogConfig() LogConfig {
	return LogConfig{
		AppFile:    "./logs/tpool.log",
		ErrorFile:  "./logs/error.log",
		MaxSize:    50, // MB
		MaxBackups: 30,
		MaxAge:     7, // days
		Compress:   true,
	}
}

// LoadConfig reads a Config from a YAML or JSON file, picked by extension.
// Fields absent from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return config, fmt.Errorf("unsupported config format: %s", ext)
	}

	if config.Name == "" {
		config.Name = "tpool"
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	return config, nil
}
