// Package storage defines the persistence port for the status board: a
// small keyed blob store. The store persists whole snapshots under fixed
// keys rather than per-row writes, so any backend that can load and save a
// byte slice by key qualifies.
package storage

import (
	"context"
	"errors"
)

// Well-known blob keys.
const (
	KeyProjects    = "projects"
	KeyPreferences = "preferences"
)

// ErrNotFound indicates no blob has been saved under the requested key.
var ErrNotFound = errors.New("blob not found")

// BlobStore loads and saves opaque snapshots by key. Save replaces the
// previous value; Load returns ErrNotFound for keys never saved.
type BlobStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
