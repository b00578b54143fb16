package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/postit-dev/postit/internal/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("file extensions select a codec", func(t *testing.T) {
		tests := map[string]string{
			"tasks.csv":  "csv",
			"tasks.json": "json",
			"tasks.xml":  "xml",
			"tasks.yaml": "yaml",
			"tasks.yml":  "yaml",
			"TASKS.CSV":  "csv",
		}
		for target, format := range tests {
			p, err := Resolve(target)
			require.NoError(t, err, target)
			f, ok := p.(*File)
			require.True(t, ok, target)
			assert.Equal(t, format, f.codec.Name(), target)
			assert.Equal(t, KindFile, p.Kind())
		}
	})

	t.Run("sqlite targets", func(t *testing.T) {
		tests := []struct {
			target string
			path   string
			table  string
		}{
			{"tasks.db", "tasks.db", "tasks"},
			{"work.sqlite", "work.sqlite", "work"},
			{"work.sqlite3", "work.sqlite3", "work"},
			{"sqlite://data/home.db", "data/home.db", "home"},
			{"sqlite:///var/lib/todo.db", "/var/lib/todo.db", "todo"},
			{":memory:", MemoryDSN, "tasks"},
			{"sqlite://:memory:", MemoryDSN, "tasks"},
		}
		for _, tt := range tests {
			p, err := Resolve(tt.target)
			require.NoError(t, err, tt.target)
			s, ok := p.(*SQLite)
			require.True(t, ok, tt.target)
			assert.Equal(t, tt.path, s.Path(), tt.target)
			assert.Equal(t, tt.table, s.Table(), tt.target)
		}
	})

	t.Run("mongodb targets", func(t *testing.T) {
		for _, target := range []string{"mongodb://localhost:27017", "mongodb+srv://cluster.example.net/db"} {
			p, err := Resolve(target)
			require.NoError(t, err, target)
			assert.Equal(t, KindMongo, p.Kind())
		}
	})

	t.Run("unknown extension fails before any file is touched", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "tasks.xyz")

		p, err := Resolve(target)
		require.Error(t, err)
		assert.Nil(t, p)
		assert.True(t, IsUnsupported(err))
		assert.Contains(t, err.Error(), ".xyz")

		_, statErr := os.Stat(target)
		assert.True(t, os.IsNotExist(statErr))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("other unsupported targets", func(t *testing.T) {
		for _, target := range []string{"", "   ", "tasks", "ftp://host/tasks.csv", "sqlite://", "tasks.txt"} {
			_, err := Resolve(target)
			assert.True(t, IsUnsupported(err), "target %q", target)
		}
	})

	t.Run("unsupported error lists supported targets", func(t *testing.T) {
		_, err := Resolve("tasks.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "*.csv")
		assert.Contains(t, err.Error(), "mongodb://")
	})

	t.Run("relative paths are placed under the root", func(t *testing.T) {
		root := t.TempDir()

		p, err := Resolve("tasks.csv", WithRoot(root))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "tasks.csv"), p.String())

		p, err = Resolve("sqlite://tasks.db", WithRoot(root))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "tasks.db"), p.(*SQLite).Path())

		abs := filepath.Join(t.TempDir(), "other.json")
		p, err = Resolve(abs, WithRoot(root))
		require.NoError(t, err)
		assert.Equal(t, abs, p.String())
	})
}

func TestSupportedTargets(t *testing.T) {
	targets := SupportedTargets()
	for _, ext := range codec.Extensions() {
		assert.Contains(t, targets, "*"+ext)
	}
	assert.Contains(t, targets, "*.db")
	assert.Contains(t, targets, "mongodb+srv://HOST[/DB]")
}

func TestIsDatabaseTarget(t *testing.T) {
	assert.True(t, IsDatabaseTarget("tasks.db"))
	assert.True(t, IsDatabaseTarget("mongodb://localhost"))
	assert.True(t, IsDatabaseTarget(":memory:"))
	assert.False(t, IsDatabaseTarget("tasks.csv"))
	assert.False(t, IsDatabaseTarget("tasks"))
}

func TestSameTarget(t *testing.T) {
	dir := t.TempDir()
	a, err := Resolve(filepath.Join(dir, "tasks.csv"))
	require.NoError(t, err)
	b, err := Resolve("tasks.csv", WithRoot(dir))
	require.NoError(t, err)
	c, err := Resolve(filepath.Join(dir, "tasks.json"))
	require.NoError(t, err)
	d, err := Resolve(filepath.Join(dir, "tasks.db"))
	require.NoError(t, err)
	mem1, _ := Resolve(MemoryDSN)
	mem2, _ := Resolve(MemoryDSN)

	assert.True(t, SameTarget(a, b))
	assert.False(t, SameTarget(a, c))
	assert.False(t, SameTarget(a, d))
	assert.True(t, SameTarget(mem1, mem1))
	assert.False(t, SameTarget(mem1, mem2))
}
