package splice

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookbinder/internal/config"
	"git.home.luguber.info/inful/bookbinder/internal/demo"
	bberrors "git.home.luguber.info/inful/bookbinder/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fixture lays out a minimal library checkout with one documented page and
// one example project whose "build" is pre-baked dist output.
func fixture(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.Library.Root = root

	writeFile(t, filepath.Join(root, "docs/book/src/sensors/use_mouse.md"), "# use_mouse\n")
	writeFile(t, filepath.Join(root, "docs/book/book/sensors/use_mouse.html"),
		`<!DOCTYPE html><html><head><link href="theme.css"></head><body class="light"><main>crate::docs</main></body></html>`)
	writeFile(t, filepath.Join(root, "examples/use_mouse/dist/index.html"),
		`<html><head><script src="./demo/app.js"></script></head><body><div class="demo-container"><div id="demo-anchor"></div></div></body></html>`)

	return cfg
}

func TestRunner_SplicesDemoIntoPage(t *testing.T) {
	cfg := fixture(t)
	runner := &Runner{
		Config:  cfg,
		Builder: &demo.Builder{Command: []string{"true"}, DistDir: "dist"},
	}

	require.NoError(t, runner.Run())

	merged, err := os.ReadFile(filepath.Join(cfg.BookOutDir(), "sensors", "use_mouse.html"))
	require.NoError(t, err)
	page := string(merged)

	// Demo head precedes book head, demo body precedes book body.
	assert.Less(t, strings.Index(page, "app.js"), strings.Index(page, "theme.css"))
	assert.Less(t, strings.Index(page, "demo-anchor"), strings.Index(page, "<main>"))
	// Asset paths were re-rooted for the page's location.
	assert.Contains(t, page, `src="./use_mouse/demo/app.js"`)
	// Cleanup removed internal path prefixes.
	assert.NotContains(t, page, "crate::")
	assert.Contains(t, page, "docs</main>")
}

func TestRunner_FilterSkipsOtherPages(t *testing.T) {
	cfg := fixture(t)
	runner := &Runner{
		Config:  cfg,
		Builder: &demo.Builder{Command: []string{"false"}, DistDir: "dist"},
		Filter:  "use_scroll",
	}

	// The only example's build command would fail, but the filter skips it.
	require.NoError(t, runner.Run())
}

func TestRunner_MissingExampleIsSkipped(t *testing.T) {
	cfg := fixture(t)
	require.NoError(t, os.RemoveAll(filepath.Join(cfg.Library.Root, "examples")))

	runner := &Runner{
		Config:  cfg,
		Builder: &demo.Builder{Command: []string{"false"}, DistDir: "dist"},
	}
	require.NoError(t, runner.Run())
}

func TestRunner_BuildFailureAborts(t *testing.T) {
	cfg := fixture(t)
	runner := &Runner{
		Config:  cfg,
		Builder: &demo.Builder{Command: []string{"false"}, DistDir: "dist"},
	}

	err := runner.Run()
	require.Error(t, err)
	assert.True(t, bberrors.IsCategory(err, bberrors.CategoryBuild))
}
