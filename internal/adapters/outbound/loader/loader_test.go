package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageforge/pageforge/internal/adapters/outbound/loader"
	"github.com/pageforge/pageforge/internal/domain"
)

func TestLoad_SiteFilesOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Hi</h1>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "styles.css"), []byte("body{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("let a=1"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "nested.html"), []byte("ignored"), 0644))

	files, err := loader.New().Load(dir)
	require.NoError(t, err)

	assert.Len(t, files, 3)
	assert.Equal(t, "<h1>Hi</h1>", files["index.html"])
	assert.Equal(t, "body{}", files["styles.css"])
	assert.Equal(t, "let a=1", files["app.js"])
	assert.NotContains(t, files, "notes.txt")
	assert.NotContains(t, files, "nested.html")
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := loader.New().Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestWrite_RoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dist")
	files := domain.FileSet{
		"index.html": "<h1>Hi</h1>",
		"styles.css": "body{}",
	}

	ld := loader.New()
	require.NoError(t, ld.Write(out, files))

	loaded, err := ld.Load(out)
	require.NoError(t, err)
	assert.Equal(t, files, loaded)
}
