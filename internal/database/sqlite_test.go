package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLite(t *testing.T) {
	t.Run("file database is migrated", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "comments.db")

		db, err := NewSQLite(path)
		require.NoError(t, err)
		defer db.Close()

		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'blog_comments'").Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, "blog_comments", name)
	})

	t.Run("reopening is a no-op migration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "comments.db")

		db, err := NewSQLite(path)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db, err = NewSQLite(path)
		require.NoError(t, err)
		assert.NoError(t, db.Close())
	})

	t.Run("in-memory database", func(t *testing.T) {
		db, err := NewSQLite(":memory:")
		require.NoError(t, err)
		defer db.Close()

		_, err = db.Exec(`INSERT INTO blog_comments (post_slug, author_name, comment_text, is_approved, created_at, updated_at)
			VALUES ('p1', 'A', 'hi', 1, '2024-01-01T00:00:00.000000000Z', '2024-01-01T00:00:00.000000000Z')`)
		assert.NoError(t, err)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := NewSQLite("")
		assert.Error(t, err)
	})
}
