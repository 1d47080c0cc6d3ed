// File path: internal/mentor/config.go
package mentor

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// StoreConfig controls the SQLite connection pool backing the mentor
// reference store.
type StoreConfig struct {
	Path            string
	BusyTimeout     time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoadStoreConfig reads store settings from the environment and applies
// defaults.
func LoadStoreConfig() StoreConfig {
	cfg := StoreConfig{}
	if path := strings.TrimSpace(os.Getenv("MENTOR_DB_PATH")); path != "" {
		cfg.Path = path
	}
	if busy := strings.TrimSpace(os.Getenv("MENTOR_DB_BUSY_TIMEOUT")); busy != "" {
		if parsed, err := time.ParseDuration(busy); err == nil {
			cfg.BusyTimeout = parsed
		}
	}
	if maxOpen := strings.TrimSpace(os.Getenv("MENTOR_DB_MAX_OPEN_CONNS")); maxOpen != "" {
		if value, err := strconv.Atoi(maxOpen); err == nil && value > 0 {
			cfg.MaxOpenConns = value
		}
	}
	cfg.applyDefaults()
	return cfg
}

func (c *StoreConfig) applyDefaults() {
	if strings.TrimSpace(c.Path) == "" {
		c.Path = "data/mentors.db"
	}
	if c.BusyTimeout <= 0 {
		c.BusyTimeout = 5 * time.Second
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 8
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 4
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = time.Hour
	}
	if c.ConnMaxIdleTime <= 0 {
		c.ConnMaxIdleTime = 10 * time.Minute
	}
}
