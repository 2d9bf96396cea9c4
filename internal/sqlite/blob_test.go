package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/statusdeck/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestBlobLoadMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewBlobRepository(db)

	_, err := repo.Load(context.Background(), storage.KeyProjects)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBlobSaveLoad(t *testing.T) {
	db := NewTestDB(t)
	repo := NewBlobRepository(db)
	ctx := context.Background()

	err := repo.Save(ctx, storage.KeyProjects, []byte(`[{"id":"p1"}]`))
	require.NoError(t, err)

	data, err := repo.Load(ctx, storage.KeyProjects)
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"id":"p1"}]`), data)
}

func TestBlobSaveReplaces(t *testing.T) {
	db := NewTestDB(t)
	repo := NewBlobRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, storage.KeyPreferences, []byte(`{"title":"old"}`)))
	require.NoError(t, repo.Save(ctx, storage.KeyPreferences, []byte(`{"title":"new"}`)))

	data, err := repo.Load(ctx, storage.KeyPreferences)
	require.NoError(t, err)
	require.Equal(t, []byte(`{"title":"new"}`), data)

	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blobs`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "upsert should keep a single row per key")
}

func TestBlobKeysIndependent(t *testing.T) {
	db := NewTestDB(t)
	repo := NewBlobRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, storage.KeyProjects, []byte(`[]`)))
	require.NoError(t, repo.Save(ctx, storage.KeyPreferences, []byte(`{}`)))

	projects, err := repo.Load(ctx, storage.KeyProjects)
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), projects)

	prefs, err := repo.Load(ctx, storage.KeyPreferences)
	require.NoError(t, err)
	require.Equal(t, []byte(`{}`), prefs)
}
