package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingToken = errors.New("BOT_TOKEN environment variable not set")

const (
	DefaultBackend  = "json"
	DefaultDataFile = "data.json"
)

type StoreConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
}

type Config struct {
	BotToken string      `mapstructure:"bot_token" yaml:"bot_token"`
	Store    StoreConfig `mapstructure:"store" yaml:"store"`
}

// Load merges defaults, an optional YAML file at path and the environment,
// in increasing precedence. A .env file in the working directory is read
// first when envFile is true.
func Load(path string, envFile bool) (*Config, error) {
	if envFile {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetDefault("bot_token", "")
	v.SetDefault("store.backend", DefaultBackend)
	v.SetDefault("store.path", DefaultDataFile)

	_ = v.BindEnv("bot_token", "BOT_TOKEN")
	_ = v.BindEnv("store.backend", "STUDYSTREAK_STORE_BACKEND")
	_ = v.BindEnv("store.path", "STUDYSTREAK_DATA_FILE")

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.BotToken = strings.TrimSpace(cfg.BotToken)
	if strings.TrimSpace(cfg.Store.Backend) == "" {
		cfg.Store.Backend = DefaultBackend
	}
	if strings.TrimSpace(cfg.Store.Path) == "" {
		cfg.Store.Path = DefaultDataFile
	}
	return cfg, nil
}

func (c *Config) RequireToken() error {
	if c.BotToken == "" {
		return ErrMissingToken
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.BotToken != "" {
		c.BotToken = "********"
	}
	return c
}
