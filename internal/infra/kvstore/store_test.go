package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type store interface {
	GetAll(ctx context.Context, owner string) (map[string]string, error)
	SetMany(ctx context.Context, owner string, values map[string]string) error
}

func exerciseStore(t *testing.T, s store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.GetAll(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.SetMany(ctx, "1", map[string]string{
		"websiteName":   "Green Valley",
		"publishStatus": "draft",
	}))
	require.NoError(t, s.SetMany(ctx, "2", map[string]string{"websiteName": "Hillside"}))

	// last write wins
	require.NoError(t, s.SetMany(ctx, "1", map[string]string{"publishStatus": "published"}))

	got, err = s.GetAll(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"websiteName":   "Green Valley",
		"publishStatus": "published",
	}, got)

	// empty values remove keys in the same write
	require.NoError(t, s.SetMany(ctx, "1", map[string]string{
		"publishStatus": "",
		"missing":       "",
		"lastPublished": "2026-05-04T12:00:00Z",
	}))
	got, err = s.GetAll(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"websiteName":   "Green Valley",
		"lastPublished": "2026-05-04T12:00:00Z",
	}, got)

	got, err = s.GetAll(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"websiteName": "Hillside"}, got)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.SetMany(ctx, "1", map[string]string{"a": "1"}))

	got, _ := m.GetAll(ctx, "1")
	got["a"] = "changed"

	again, _ := m.GetAll(ctx, "1")
	assert.Equal(t, "1", again["a"])
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "site.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	exerciseStore(t, s)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.SetMany(ctx, "7", map[string]string{"components": "[]"}))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	got, err := s.GetAll(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "[]", got["components"])
}

func TestGormStore(t *testing.T) {
	dsn := os.Getenv("TEST_DB_URL")
	if dsn == "" {
		t.Skip("TEST_DB_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(&Entry{}))
	require.NoError(t, db.AutoMigrate(&Entry{}))

	exerciseStore(t, NewGorm(db))
}
