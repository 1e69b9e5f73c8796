package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultAPIBaseURL = "http://localhost:8000/api"

type Config struct {
	Dir        string
	APIBaseURL string

	SessionPath string
	ArchiveDB   string

	LogPath   string
	LogLevel  string
	LogFormat string
}

// fileConfig is the optional config.yaml inside the config dir.
type fileConfig struct {
	APIURL string `yaml:"api_url"`
	Log    struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// New resolves configuration in precedence order: defaults, then config.yaml,
// then environment (a .env file is honored when present), then the explicit
// apiURL argument from the command line. dir empty means the user config dir.
func New(dir, apiURL string) (Config, error) {
	_ = godotenv.Load()

	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "physiq")
	}

	cfg := Config{
		Dir:         dir,
		APIBaseURL:  defaultAPIBaseURL,
		SessionPath: filepath.Join(dir, "session.json"),
		ArchiveDB:   filepath.Join(dir, "archive.db"),
		LogPath:     filepath.Join(dir, "physiq.log"),
		LogLevel:    "info",
		LogFormat:   "json",
	}

	if err := cfg.applyFile(filepath.Join(dir, "config.yaml")); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()

	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("api url is required")
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if fc.APIURL != "" {
		c.APIBaseURL = fc.APIURL
	}
	if fc.Log.Level != "" {
		c.LogLevel = fc.Log.Level
	}
	if fc.Log.Format != "" {
		c.LogFormat = fc.Log.Format
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PHYSIQ_API_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("PHYSIQ_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PHYSIQ_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
}
