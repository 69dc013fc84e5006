package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, at time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	require.NoError(t, os.Chtimes(path, at, at))
}

func TestStale(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-time.Hour)
	now := time.Now()

	bin := filepath.Join(dir, "bin", "do")
	internal := filepath.Join(dir, "internal")
	content := filepath.Join(dir, "content")

	touch(t, bin, old.Add(time.Minute))
	touch(t, filepath.Join(internal, "assistant", "intent.go"), old)
	touch(t, filepath.Join(content, "knowledge", "b-plus-tree.md"), old)

	roots := []string{internal, content}
	assert.False(t, Stale(bin, roots))
	assert.True(t, Stale(filepath.Join(dir, "bin", "missing"), roots))

	t.Run("test files never count", func(t *testing.T) {
		touch(t, filepath.Join(internal, "assistant", "intent_test.go"), now)
		assert.False(t, Stale(bin, roots))
	})

	t.Run("other extensions never count", func(t *testing.T) {
		touch(t, filepath.Join(content, "notes.txt"), now)
		assert.False(t, Stale(bin, roots))
	})

	t.Run("a changed article rebuilds", func(t *testing.T) {
		touch(t, filepath.Join(content, "knowledge", "complexity.md"), now)
		assert.True(t, Stale(bin, roots))
		assert.False(t, Stale(bin, []string{internal}))
	})

	t.Run("explicit extensions", func(t *testing.T) {
		assert.False(t, Stale(bin, roots, ".go"))
		touch(t, filepath.Join(internal, "db", "migrations", "00004.sql"), now)
		assert.True(t, Stale(bin, []string{internal}, ".sql"))
	})
}

func TestStaleTemplFiles(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-time.Hour)
	now := time.Now()

	fresh := filepath.Join(dir, "toast", "toast.templ")
	touch(t, fresh, old)
	touch(t, filepath.Join(dir, "toast", "toast_templ.go"), old.Add(time.Minute))

	changed := filepath.Join(dir, "form", "form.templ")
	touch(t, filepath.Join(dir, "form", "form_templ.go"), old)
	touch(t, changed, now)

	missing := filepath.Join(dir, "pages", "chat.templ")
	touch(t, missing, old)

	assert.ElementsMatch(t, []string{changed, missing}, staleTemplFiles(dir))
}

func TestGenSkipsWhenUpToDate(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-time.Hour)
	touch(t, filepath.Join(dir, "toast.templ"), old)
	touch(t, filepath.Join(dir, "toast_templ.go"), old.Add(time.Minute))

	var out bytes.Buffer
	require.NoError(t, runGen(&out, dir, false))
	assert.Equal(t, "[templ] skipped\n", out.String())
}
