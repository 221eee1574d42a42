package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultHost   = "127.0.0.1"
	defaultPort   = 8000
	defaultDBPath = "data/fintrack.db"
)

type Config struct {
	Host   string
	Port   int
	DBPath string
}

// Load собирает конфигурацию из переменных окружения, все значения опциональны.
func Load() (*Config, error) {
	cfg := &Config{
		Host:   defaultHost,
		Port:   defaultPort,
		DBPath: defaultDBPath,
	}

	if host := os.Getenv("FINTRACK_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("FINTRACK_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid FINTRACK_PORT %q: %w", port, err)
		}
		cfg.Port = p
	}
	if path := os.Getenv("FINTRACK_DB_PATH"); path != "" {
		cfg.DBPath = path
	}

	return cfg, nil
}
