package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds every setting of the catalog client and the catalog API.
type Config struct {
	APIURL    string `env:"CATALOG_API_URL" envDefault:"http://localhost:8080/books"`
	ProxyAddr string `env:"CATALOG_PROXY"`
	LogLevel  string `env:"CATALOG_LOG_LEVEL" envDefault:"info"`

	WebAddr string `env:"CATALOG_WEB_ADDR" envDefault:":3000"`
	APIAddr string `env:"CATALOG_API_ADDR" envDefault:":8080"`

	Store      string `env:"CATALOG_STORE" envDefault:"memory"`
	SQLitePath string `env:"CATALOG_SQLITE_PATH" envDefault:"data/catalog.db"`

	// Genres are the options offered by the form. The list is owned by the deployment, not the page.
	Genres []string `env:"CATALOG_GENRES" envSeparator:"," envDefault:"Fiction,Non-fiction,Science Fiction,Fantasy,Mystery,Biography,History,Poetry"`
}

// Load reads .env (if any), then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine: in a container the variables come straight from the environment.
	if err := godotenv.Load(); err != nil {
		log.Println("info: .env not found, reading the process environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.SQLitePath = resolvePath(cfg.SQLitePath)
	cfg.Genres = cleanList(cfg.Genres)
	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CATALOG_API_URL must be an absolute URL, got %q", c.APIURL)
	}

	switch c.Store {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("CATALOG_STORE must be memory or sqlite, got %q", c.Store)
	}

	if c.Store == "sqlite" && strings.TrimSpace(c.SQLitePath) == "" {
		return fmt.Errorf("CATALOG_SQLITE_PATH is required when CATALOG_STORE is sqlite")
	}

	if len(cleanList(c.Genres)) == 0 {
		return fmt.Errorf("CATALOG_GENRES must name at least one genre")
	}

	return nil
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func resolvePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	if filepath.IsAbs(p) {
		return p
	}

	if exe, err := os.Executable(); err == nil {
		base := filepath.Dir(exe)
		return filepath.Clean(filepath.Join(base, p))
	}

	if cwd, err := os.Getwd(); err == nil {
		return filepath.Clean(filepath.Join(cwd, p))
	}

	return p
}
