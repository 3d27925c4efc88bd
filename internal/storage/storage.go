// Package storage persists store snapshots as named JSON blobs.
// Each store writes its full state under a fixed key after every mutation
// and rehydrates it wholesale at startup.
package storage

import "errors"

// Keys under which the stores persist their snapshots.
const (
	KeyDashboards = "dashboard-storage"
	KeyServices   = "services-storage"
	KeyAuth       = "auth-storage"
)

// ErrNotFound is returned when no snapshot exists under the given key.
var ErrNotFound = errors.New("snapshot not found")

// Snapshots is a key-value store of JSON snapshot blobs.
type Snapshots interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}
