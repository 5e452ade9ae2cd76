package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Open opens the embedded bbolt database file, creating it if absent.
// The handle is passed down explicitly; there is no package-level
// singleton connection.
func Open(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return db, nil
}
