package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/dayplan/internal/constants"
)

// StorageConfig selects and locates the persistence backend.
type StorageConfig struct {
	// Driver is one of sqlite, postgres, file or memory.
	Driver string `yaml:"driver"`
	// Path is the SQLite database file or the file-backend directory.
	Path string `yaml:"path,omitempty"`
	// DSN is the PostgreSQL connection string. Leave empty to read it from the OS keyring.
	DSN string `yaml:"dsn,omitempty"`
}

// Config is the top-level application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`

	// Refresh is a cron schedule used by `watch` to reprint now/next.
	Refresh string `yaml:"refresh"`

	// TwelveHour prints clock times as "6:05 AM" instead of "06:05".
	TwelveHour bool `yaml:"twelve_hour"`

	Debug bool `yaml:"debug"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: constants.DriverSQLite,
			Path:   constants.DefaultDBPath,
		},
		Refresh: constants.DefaultRefreshSpec,
	}
}

// Normalize fills in missing or unusable values so that partially-filled
// files still behave.
func (c *Config) Normalize() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case constants.DriverSQLite, constants.DriverPostgres, constants.DriverFile, constants.DriverMemory:
	default:
		c.Storage.Driver = constants.DriverSQLite
	}

	if c.Storage.Path == "" {
		switch c.Storage.Driver {
		case constants.DriverSQLite:
			c.Storage.Path = constants.DefaultDBPath
		case constants.DriverFile:
			c.Storage.Path = constants.DefaultDataDir
		}
	}

	if _, err := cron.ParseStandard(c.Refresh); err != nil {
		c.Refresh = constants.DefaultRefreshSpec
	}
}

// ResolvedPath returns Storage.Path with a leading ~ expanded.
func (c *Config) ResolvedPath() (string, error) {
	if c.Storage.Path == "" {
		return "", nil
	}
	p, err := homedir.Expand(c.Storage.Path)
	if err != nil {
		return "", fmt.Errorf("expanding storage path %q: %w", c.Storage.Path, err)
	}
	return p, nil
}

// ExpandPath expands a leading ~ in a user-supplied path.
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist a default config is written with 0600 perms
// and returned. Otherwise the file is decoded and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically via a temp file + rename.
// The parent directory is created with 0700 and the file ends up 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".dayplan-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save delegates to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
