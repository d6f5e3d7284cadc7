package demo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bberrors "git.home.luguber.info/inful/bookbinder/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCopyDir_MergesIntoExistingTree(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "index.html"), "new index")
	writeFile(t, filepath.Join(src, "assets", "app.js"), "js")
	writeFile(t, filepath.Join(dst, "index.html"), "old index")
	writeFile(t, filepath.Join(dst, "stale.css"), "stale")

	require.NoError(t, CopyDir(src, dst))

	got, err := os.ReadFile(filepath.Join(dst, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "new index", string(got))

	_, err = os.Stat(filepath.Join(dst, "assets", "app.js"))
	require.NoError(t, err)

	// Merge, not replace: files absent from the source survive.
	_, err = os.Stat(filepath.Join(dst, "stale.css"))
	require.NoError(t, err)
}

func TestBuild_SuccessCopiesDist(t *testing.T) {
	exampleDir := t.TempDir()
	targetDir := filepath.Join(t.TempDir(), "book", "sensors", "use_mouse", "demo")

	writeFile(t, filepath.Join(exampleDir, "dist", "index.html"), "<html></html>")

	b := &Builder{Command: []string{"true"}, DistDir: "dist"}
	require.NoError(t, b.Build(exampleDir, targetDir))

	_, err := os.Stat(filepath.Join(targetDir, "index.html"))
	require.NoError(t, err)
}

func TestBuild_FailureCarriesExitCode(t *testing.T) {
	exampleDir := t.TempDir()

	b := &Builder{Command: []string{"false"}, DistDir: "dist"}
	err := b.Build(exampleDir, t.TempDir())
	require.Error(t, err)

	be, ok := err.(*bberrors.BookbinderError)
	require.True(t, ok)
	assert.Equal(t, bberrors.CategoryBuild, be.Category)
	assert.Equal(t, 1, be.ExitCode)
}

func TestBuild_MissingCommand(t *testing.T) {
	b := &Builder{DistDir: "dist"}
	err := b.Build(t.TempDir(), t.TempDir())
	require.Error(t, err)
	assert.True(t, bberrors.IsCategory(err, bberrors.CategoryConfig))
}
