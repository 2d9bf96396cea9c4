package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/statusdeck/internal/storage"
)

// BlobRepository implements storage.BlobStore on the blobs table
type BlobRepository struct {
	db *DB
}

// NewBlobRepository creates a new BlobRepository
func NewBlobRepository(db *DB) *BlobRepository {
	return &BlobRepository{db: db}
}

// Load retrieves the blob saved under key
func (r *BlobRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT data FROM blobs WHERE key = ?`

	var data []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load blob %s: %w", key, err)
	}

	return data, nil
}

// Save upserts data under key
func (r *BlobRepository) Save(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO blobs (key, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, key, data); err != nil {
		return fmt.Errorf("failed to save blob %s: %w", key, err)
	}

	return nil
}
