package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_add_index.sql", "0001_create_users.sql", "README.md", "0001_create_users.sql.bak"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- noop"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	files, err := sqlMigrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_create_users.sql", "0002_add_index.sql"}, files)
}

func TestSQLMigrationFilesMissingDir(t *testing.T) {
	_, err := sqlMigrationFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
