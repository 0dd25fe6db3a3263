package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/dayplan/internal/constants"
)

// The PostgreSQL DSN is the only secret dayplan keeps, stored under the
// app name with a fixed user.
var (
	ErrNotFound           = errors.New("no connection string in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetConnectionString returns the stored DSN, or ErrNotFound.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString replaces the stored DSN.
func SetConnectionString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return errors.New("empty connection string")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("keyring write: %w", err)
	}
	return nil
}

// DeleteConnectionString forgets the stored DSN. Deleting nothing is ErrNotFound.
func DeleteConnectionString() error {
	switch err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("keyring delete: %w", err)
	}
}

// IsAvailable looks up a key that is never written; a not-found answer
// still proves the backend responds.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
