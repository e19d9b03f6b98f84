package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvNodeURL = "CONTRACT_NODE_URL"
	EnvSuri    = "CONTRACT_SURI"
)

// GlobalFlags are the persistent root-command flags, raw as parsed.
type GlobalFlags struct {
	ConfigPath string
	Timeout    string
}

// Settings are the resolved defaults a command starts from. Per-command
// flags still override the URL and suri at invocation time.
type Settings struct {
	DefaultNodeURL  string
	DefaultSuri     string
	Timeout         time.Duration
	HistoryEnabled  bool
	HistoryPath     string
	HistoryLockPath string
}

type fileConfig struct {
	URL     string `yaml:"url"`
	Suri    string `yaml:"suri"`
	Timeout string `yaml:"timeout"`
	History struct {
		Enabled  *bool  `yaml:"enabled"`
		Path     string `yaml:"path"`
		LockPath string `yaml:"lock_path"`
	} `yaml:"history"`
}

// Load resolves settings: built-in defaults, then the config file, then
// environment variables, then flags.
func Load(flags GlobalFlags) (Settings, error) {
	settings, err := defaultSettings()
	if err != nil {
		return Settings{}, err
	}

	cfgPath, err := resolveConfigPath(flags.ConfigPath)
	if err != nil {
		return Settings{}, err
	}
	if err := applyFileConfig(cfgPath, &settings); err != nil {
		return Settings{}, err
	}

	applyEnv(&settings)

	if strings.TrimSpace(flags.Timeout) != "" {
		d, err := time.ParseDuration(flags.Timeout)
		if err != nil {
			return Settings{}, fmt.Errorf("--timeout: %w", err)
		}
		settings.Timeout = d
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 30 * time.Second
	}
	return settings, nil
}

func defaultSettings() (Settings, error) {
	historyPath, lockPath, err := defaultHistoryPaths()
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Timeout:         30 * time.Second,
		HistoryEnabled:  true,
		HistoryPath:     historyPath,
		HistoryLockPath: lockPath,
	}, nil
}

func resolveConfigPath(input string) (string, error) {
	if strings.TrimSpace(input) != "" {
		return input, nil
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "contract", "config.yaml"), nil
}

func defaultHistoryPaths() (string, string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", "", err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, "contract")
	return filepath.Join(dir, "history.db"), filepath.Join(dir, "history.lock"), nil
}

func applyFileConfig(path string, settings *Settings) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}

	if cfg.URL != "" {
		settings.DefaultNodeURL = cfg.URL
	}
	if cfg.Suri != "" {
		settings.DefaultSuri = cfg.Suri
	}
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return fmt.Errorf("config timeout: %w", err)
		}
		settings.Timeout = d
	}
	if cfg.History.Enabled != nil {
		settings.HistoryEnabled = *cfg.History.Enabled
	}
	if cfg.History.Path != "" {
		settings.HistoryPath = cfg.History.Path
	}
	if cfg.History.LockPath != "" {
		settings.HistoryLockPath = cfg.History.LockPath
	}
	return nil
}

func applyEnv(settings *Settings) {
	if v := strings.TrimSpace(os.Getenv(EnvNodeURL)); v != "" {
		settings.DefaultNodeURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSuri)); v != "" {
		settings.DefaultSuri = v
	}
}
