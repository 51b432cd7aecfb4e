package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the config file.
const (
	EnvConfig      = "PI_MEMORY_CONFIG"
	EnvGlobal      = "PI_MEMORY_GLOBAL"
	EnvProjectFile = "PI_MEMORY_PROJECT_FILE"
	EnvLogLevel    = "PI_MEMORY_LOG_LEVEL"
)

// Config holds all pimemory configuration.
type Config struct {
	Memory MemoryConfig `yaml:"memory"`
	Log    LogConfig    `yaml:"log"`
}

type MemoryConfig struct {
	GlobalPath  string `yaml:"global_path"`  // "" resolves to ~/.pi/memory.md
	ProjectFile string `yaml:"project_file"` // relative to the project directory
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // "console" or "json"
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Memory: MemoryConfig{
			GlobalPath:  "", // resolved at runtime via GlobalMemoryPath()
			ProjectFile: filepath.Join(".pi", "memory.md"),
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// DefaultPath returns the default config file path: ~/.pi/pimemory.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".pi", "pimemory.yaml"), nil
}

// Load reads the YAML config at path over the defaults, then applies
// environment overrides. An empty path means PI_MEMORY_CONFIG or the
// default location. A missing file is not an error. On error the returned
// Config is the defaults with environment overrides applied.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			cfg.applyEnv()
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		cfg.applyEnv()
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			// The fallback still honors the environment.
			cfg = Default()
			cfg.applyEnv()
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvGlobal); v != "" {
		c.Memory.GlobalPath = v
	}
	if v := os.Getenv(EnvProjectFile); v != "" {
		c.Memory.ProjectFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// GlobalMemoryPath returns the global memory file path, expanding a
// leading "~/" and defaulting to ~/.pi/memory.md.
func (c *Config) GlobalMemoryPath() (string, error) {
	p := c.Memory.GlobalPath
	if p != "" && p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	if p == "" {
		return filepath.Join(home, ".pi", "memory.md"), nil
	}
	return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(p, "~"), "/")), nil
}

// ProjectMemoryPath returns the project memory file path for the project
// rooted at dir. An absolute ProjectFile is used as is.
func (c *Config) ProjectMemoryPath(dir string) string {
	if filepath.IsAbs(c.Memory.ProjectFile) {
		return c.Memory.ProjectFile
	}
	return filepath.Join(dir, c.Memory.ProjectFile)
}
