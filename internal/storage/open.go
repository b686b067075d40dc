package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OpenBackend builds the Backend for driver. path is the file or database
// location; it is ignored by the memory driver.
func OpenBackend(driver Driver, path string) (Backend, error) {
	switch Driver(strings.ToLower(string(driver))) {
	case DriverFile, "":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("file storage requires a path")
		}
		return NewFileBackend(path)
	case DriverSQLite:
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("sqlite storage requires a path")
		}
		return NewSQLiteBackend(path)
	case DriverMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// DefaultPath returns the conventional store location for driver under dir.
func DefaultPath(driver Driver, dir string) string {
	switch driver {
	case DriverSQLite:
		return filepath.Join(dir, "store.db")
	default:
		return filepath.Join(dir, "store.json")
	}
}
