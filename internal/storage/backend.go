// Package storage provides the key/value persistence used for favorites,
// recently viewed recipes and the theme preference. Backends may fail; the
// Accessor masks every failure behind safe defaults.
package storage

// Backend is a synchronous string-keyed store.
type Backend interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Clear() error
	// Keys enumerates every stored key. Order is backend specific.
	Keys() ([]string, error)
}

// Driver names a Backend implementation.
type Driver string

const (
	DriverFile   Driver = "file"
	DriverSQLite Driver = "sqlite"
	DriverMemory Driver = "memory"
)

// Drivers lists the supported drivers.
func Drivers() []Driver {
	return []Driver{DriverFile, DriverSQLite, DriverMemory}
}
