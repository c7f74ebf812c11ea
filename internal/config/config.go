// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/knkgun/gallery/internal/shared"
)

// Config holds the application's configuration.
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logging      LoggingConfig      `toml:"logging"`
	Preview      PreviewConfig      `toml:"preview"`
	Cache        CacheConfig        `toml:"cache"`
	Housekeeping HousekeepingConfig `toml:"housekeeping"`

	MaxDownloadSizeBytes int64         `toml:"-"` // Runtime computed value
	CacheExpiration      time.Duration `toml:"-"` // Runtime computed value
	HousekeepingInterval time.Duration `toml:"-"` // Runtime computed value
	HousekeepingMaxAge   time.Duration `toml:"-"` // Runtime computed value
}

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	MaxDownloadSize string `toml:"max_download_size"` // e.g. "64MB"
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	Path        string `toml:"path"`
	StorageRoot string `toml:"storage_root"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"`
}

// PreviewConfig holds preview generation settings.
type PreviewConfig struct {
	SquareThumbnailWidth int    `toml:"square_thumbnail_width"`
	SVGEnabled           bool   `toml:"svg_enabled"`
	ConvertPath          string `toml:"convert_path"` // ImageMagick, used for SVG
	IconDir              string `toml:"icon_dir"`
	DefaultOwner         string `toml:"default_owner"`
}

// CacheConfig selects and configures the preview cache store.
type CacheConfig struct {
	Backend       string `toml:"backend"`    // sqlite, memory or redis
	Expiration    string `toml:"expiration"` // e.g. "720h", "30d"
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// HousekeepingConfig controls the periodic purge of cached previews.
type HousekeepingConfig struct {
	Interval string `toml:"interval"` // "0" disables the timer
	MaxAge   string `toml:"max_age"`
}

// Cache backends.
const (
	CacheBackendSQLite = "sqlite"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
// Used by `gallery config init` to write a file with all defaults filled in.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrorCreateFile, err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrorEncodeFile, err)
	}
	return nil
}

// ApplyDefaults fills every unset value with its default.
func (c *Config) ApplyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.MaxDownloadSize == "" {
		c.Server.MaxDownloadSize = "64MB"
	}
	if c.Database.Path == "" {
		c.Database.Path = "gallery.db"
	}
	if c.Database.StorageRoot == "" {
		c.Database.StorageRoot = "storage_root"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Preview.SquareThumbnailWidth == 0 {
		c.Preview.SquareThumbnailWidth = 200
	}
	if c.Preview.DefaultOwner == "" {
		c.Preview.DefaultOwner = "admin"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheBackendSQLite
	}
	if c.Cache.Expiration == "" {
		c.Cache.Expiration = "720h"
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = "localhost:6379"
	}
	if c.Housekeeping.Interval == "" {
		c.Housekeeping.Interval = "1h"
	}
	if c.Housekeeping.MaxAge == "" {
		c.Housekeeping.MaxAge = "30d"
	}
}

// ParseAndValidate processes configuration strings into runtime values.
// It sets defaults if values are missing and parses human-readable sizes and durations.
func (c *Config) ParseAndValidate() error {
	c.ApplyDefaults()

	sizeBytes, err := parseSize(c.Server.MaxDownloadSize)
	if err != nil {
		return fmt.Errorf("invalid max_download_size: %w", err)
	}
	c.MaxDownloadSizeBytes = sizeBytes

	if c.Preview.SquareThumbnailWidth < 0 {
		return fmt.Errorf("invalid square_thumbnail_width: %d", c.Preview.SquareThumbnailWidth)
	}

	switch c.Cache.Backend {
	case CacheBackendSQLite, CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("invalid cache backend: %q (expected sqlite, memory or redis)", c.Cache.Backend)
	}

	if c.CacheExpiration, err = shared.ParseDuration(c.Cache.Expiration); err != nil {
		return fmt.Errorf("invalid cache expiration: %w", err)
	}
	if c.HousekeepingInterval, err = shared.ParseDuration(c.Housekeeping.Interval); err != nil {
		return fmt.Errorf("invalid housekeeping interval: %w", err)
	}
	if c.HousekeepingMaxAge, err = shared.ParseDuration(c.Housekeeping.MaxAge); err != nil {
		return fmt.Errorf("invalid housekeeping max_age: %w", err)
	}

	return nil
}

var sizePattern = regexp.MustCompile(`(?i)^(\d+)\s*(K|M|G|T)?B?$`)

// parseSize parses a size string (e.g., "100G", "500MB") into bytes.
func parseSize(sizeStr string) (int64, error) {
	matches := sizePattern.FindStringSubmatch(strings.TrimSpace(sizeStr))

	if len(matches) < 2 {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number: %s", matches[1])
	}

	unit := ""
	if len(matches) > 2 {
		unit = strings.ToUpper(matches[2])
	}

	switch unit {
	case "T":
		return value * (1 << 40), nil
	case "G":
		return value * (1 << 30), nil
	case "M":
		return value * (1 << 20), nil
	case "K":
		return value * (1 << 10), nil
	default:
		return value, nil
	}
}
