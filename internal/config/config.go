// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultAPIURL is the hosted collection endpoint the page talks to.
const DefaultAPIURL = "https://nodejs-project-two.vercel.app/items"

// Store backends accepted by BLOG_STORE.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config is everything the CLI, the page and the dev server read at startup.
type Config struct {
	APIURL      string        `env:"BLOG_API_URL" envDefault:"https://nodejs-project-two.vercel.app/items"`
	LogLevel    string        `env:"BLOG_LOG_LEVEL" envDefault:"info"`
	LogFile     string        `env:"BLOG_LOG_FILE" envDefault:"blog.log"`
	HTTPTimeout time.Duration `env:"BLOG_HTTP_TIMEOUT" envDefault:"0s"`
	Serve       ServeConfig
}

// ServeConfig drives the development /items API.
type ServeConfig struct {
	Addr      string `env:"BLOG_SERVE_ADDR" envDefault:"127.0.0.1:8080"`
	Store     string `env:"BLOG_STORE" envDefault:"json"`
	StorePath string `env:"BLOG_STORE_PATH"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the given dotenv files (".env" when none are named) and then
// parses the environment. Missing dotenv files are not an error; variables
// already set in the environment win over the file.
func Load(dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the program cannot act on.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("BLOG_API_URL is empty")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("BLOG_HTTP_TIMEOUT must not be negative, got %s", c.HTTPTimeout)
	}
	switch c.Serve.Store {
	case StoreJSON, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("BLOG_STORE: unknown backend %q (want json, sqlite or memory)", c.Serve.Store)
	}
	return nil
}

// StorePathOrDefault returns the configured store location, falling back to
// a per-backend file name in the working directory.
func (s ServeConfig) StorePathOrDefault() string {
	if s.StorePath != "" {
		return s.StorePath
	}
	switch s.Store {
	case StoreSQLite:
		return "posts.db"
	case StoreJSON:
		return "posts.json"
	}
	return ""
}
