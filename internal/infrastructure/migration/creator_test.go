package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("creates an up and down pair", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add partner table", "partners for documents")

		require.NoError(t, err)
		assert.FileExists(t, mf.UpPath)
		assert.FileExists(t, mf.DownPath)
		assert.Contains(t, filepath.Base(mf.UpPath), "add_partner_table.up.sql")
		assert.Contains(t, filepath.Base(mf.DownPath), "add_partner_table.down.sql")

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "add partner table")
		assert.Contains(t, string(up), "partners for documents")

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "Rollback")
	})

	t.Run("creates the directory when missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "migrations")

		_, err := CreateMigration(dir, "init", "")

		require.NoError(t, err)
		assert.DirExists(t, dir)
	})
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"add partner table", "add_partner_table"},
		{"Add-Partner--Table", "add_partner_table"},
		{"trailing space ", "trailing_space"},
		{"MiXeD123", "mixed123"},
		{"weird!@#chars", "weirdchars"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeName(tt.input))
		})
	}
}

func TestListMigrations(t *testing.T) {
	t.Run("lists up migrations by base name", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"000001_init_schema.up.sql",
			"000001_init_schema.down.sql",
			"000002_add_appointments.up.sql",
			"000002_add_appointments.down.sql",
			"README.md",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- sql"), 0644))
		}

		migrations, err := ListMigrations(dir)

		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init_schema", "000002_add_appointments"}, migrations)
	})

	t.Run("missing directory is empty, not an error", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "missing"))

		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
