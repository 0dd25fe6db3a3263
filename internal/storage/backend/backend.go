// Package backend turns configuration into a concrete storage.Provider.
package backend

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/dayplan/internal/config"
	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/errors"
	"github.com/julianstephens/dayplan/internal/keyring"
	"github.com/julianstephens/dayplan/internal/storage"
	"github.com/julianstephens/dayplan/internal/storage/filekv"
	"github.com/julianstephens/dayplan/internal/storage/postgres"
	"github.com/julianstephens/dayplan/internal/storage/sqlite"
)

// lookupDSN is swapped in tests.
var lookupDSN = keyring.GetConnectionString

// New builds the provider named by cfg.Driver. cfg is expected to be normalized.
func New(cfg config.StorageConfig) (storage.Provider, error) {
	switch cfg.Driver {
	case constants.DriverMemory:
		return storage.NewMemoryStore(), nil
	case constants.DriverPostgres:
		dsn, err := resolveDSN(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return postgres.New(dsn), nil
	case constants.DriverFile:
		path, err := config.ExpandPath(cfg.Path)
		if err != nil {
			return nil, err
		}
		return filekv.NewStore(path), nil
	case constants.DriverSQLite, "":
		path, err := config.ExpandPath(cfg.Path)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// resolveDSN prefers an explicit connection string, which must not carry a
// password, and falls back to the OS keyring.
func resolveDSN(dsn string) (string, error) {
	if dsn != "" {
		if ok, err := postgres.ValidateConnString(dsn); !ok {
			if stderrors.Is(err, postgres.ErrEmbeddedCredentials) {
				return "", errors.WithHint(err,
					"store the full connection string with 'dayplan keyring set', or use PGPASSWORD or .pgpass")
			}
			return "", err
		}
		return dsn, nil
	}

	dsn, err := lookupDSN()
	if err != nil {
		if stderrors.Is(err, keyring.ErrNotFound) {
			return "", errors.WithHint(fmt.Errorf("no PostgreSQL connection string configured"),
				"set storage.dsn in the config, pass --dsn, or run 'dayplan keyring set'")
		}
		return "", err
	}
	return dsn, nil
}

// FromSource guesses the backend for an ad-hoc location: a PostgreSQL
// connection string, an existing directory (file backend) or a SQLite file.
func FromSource(source string) (storage.Provider, error) {
	if postgres.IsConnString(source) || strings.Contains(source, "host=") {
		return New(config.StorageConfig{Driver: constants.DriverPostgres, DSN: source})
	}
	path, err := config.ExpandPath(source)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return New(config.StorageConfig{Driver: constants.DriverFile, Path: path})
	}
	return New(config.StorageConfig{Driver: constants.DriverSQLite, Path: path})
}

// DryRun copies the stored document from p into a memory store and closes
// p, so commands run against the copy and nothing is written back.
func DryRun(p storage.Provider) (storage.Provider, error) {
	if err := p.Load(); err != nil {
		return nil, err
	}
	defer p.Close()

	raw, found, err := p.Get(constants.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	if !found {
		return storage.NewMemoryStore(), nil
	}
	return storage.NewMemoryStoreFrom(map[string]string{constants.StorageKey: raw}), nil
}
