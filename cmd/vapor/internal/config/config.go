// Package config loads the optional vapor.yaml configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the project root.
const FileName = "vapor.yaml"

// RuntimeVersion is the version of the component runtime this CLI embeds.
const RuntimeVersion = "v0.1.0"

// Config represents the optional vapor.yaml configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Runtime RuntimeConfig `yaml:"runtime"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// RuntimeConfig contains component runtime settings.
type RuntimeConfig struct {
	// Debug enables instrumented diagnostics. Defaults to true.
	Debug *bool `yaml:"debug,omitempty"`
	// Version is the minimum runtime version the project expects.
	Version string `yaml:"version,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level       string `yaml:"level,omitempty"`
	Development bool   `yaml:"development,omitempty"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root             string `yaml:"root"`
	ModulePath       string `yaml:"modulePath,omitempty"`
	AppName          string `yaml:"appName"`
	Debug            bool   `yaml:"debug"`
	RuntimeVersion   string `yaml:"runtimeVersion"`
	LogLevel         string `yaml:"logLevel"`
	LogDevelopment   bool   `yaml:"logDevelopment"`
	MetricsEnabled   bool   `yaml:"metricsEnabled"`
	MetricsNamespace string `yaml:"metricsNamespace"`
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOptional reads vapor.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Resolve loads vapor.yaml from dir (or path, when non-empty) and resolves
// defaults.
func Resolve(dir, path string) (*Resolved, error) {
	var cfg *Config
	var err error
	if path != "" {
		cfg, err = Load(path)
	} else {
		cfg, err = LoadOptional(dir)
	}
	if err != nil {
		return nil, err
	}

	modPath := modulePath(dir)

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modPath, dir)
	}

	version := strings.TrimSpace(cfg.Runtime.Version)
	if version == "" {
		version = RuntimeVersion
	}
	if err := checkRuntimeVersion(version); err != nil {
		return nil, err
	}

	debug := true
	if cfg.Runtime.Debug != nil {
		debug = *cfg.Runtime.Debug
	}

	level := strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if level == "" {
		level = "info"
	}
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q (use debug, info, warn or error)", cfg.Log.Level)
	}

	namespace := strings.TrimSpace(cfg.Metrics.Namespace)
	if namespace == "" {
		namespace = "vapor"
	}

	return &Resolved{
		Root:             dir,
		ModulePath:       modPath,
		AppName:          appName,
		Debug:            debug,
		RuntimeVersion:   version,
		LogLevel:         level,
		LogDevelopment:   cfg.Log.Development,
		MetricsEnabled:   cfg.Metrics.Enabled,
		MetricsNamespace: namespace,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod or
// vapor.yaml. It falls back to the current directory.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		for _, marker := range []string{"go.mod", FileName} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func checkRuntimeVersion(want string) error {
	if !semver.IsValid(want) {
		return fmt.Errorf("invalid runtime version %q (want semantic version like v0.1.0)", want)
	}
	if semver.Compare(want, RuntimeVersion) > 0 {
		return fmt.Errorf("project requires runtime %s, this build provides %s", want, RuntimeVersion)
	}
	return nil
}

func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		modName, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "vapor_app"
	}
	return base
}
