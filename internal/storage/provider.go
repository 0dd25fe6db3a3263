package storage

import "errors"

// ErrNotLoaded is returned when a store is used before Init or Load.
var ErrNotLoaded = errors.New("storage not loaded")

// Provider is a string key-value store. The application keeps its whole
// document under a single key, so backends only need point reads and writes.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns found=false when the key has never been written.
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error

	// Utils
	GetConfigPath() string
}

// KeyLister is implemented by providers that can enumerate their keys.
type KeyLister interface {
	Keys() []string
}

// SchemaReporter is implemented by SQL-backed providers.
type SchemaReporter interface {
	SchemaVersion() (current, latest int, err error)
}
