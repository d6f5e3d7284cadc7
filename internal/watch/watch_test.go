package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookbinder/internal/config"
	"git.home.luguber.info/inful/bookbinder/internal/page"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func watchFixture(t *testing.T) *Watcher {
	t.Helper()
	cfg := config.Default()
	cfg.Library.Root = t.TempDir()
	cfg.Library.RepoURL = "https://github.com/acme/lib"
	cfg.Library.DocsBaseURL = "https://docs.rs/lib"

	writeFile(t, cfg.SourcePath("", "use_mouse"),
		"/// Reactive mouse position.\npub fn use_mouse() {}\n")
	writeFile(t, filepath.Join(cfg.BookSrcDir(), "sensors", "use_mouse.md"), "# stale\n")

	return &Watcher{
		Config: cfg,
		Assembler: &page.Assembler{
			RepoURL:     cfg.Library.RepoURL,
			DocsBaseURL: cfg.Library.DocsBaseURL,
			SrcExt:      cfg.Library.SrcExt,
		},
	}
}

func TestRegenerate_RewritesPage(t *testing.T) {
	w := watchFixture(t)
	srcDir := filepath.Join(w.Config.Library.Root, w.Config.Library.SrcDir)

	require.NoError(t, w.regenerate(srcDir, w.Config.SourcePath("", "use_mouse")))

	content, err := os.ReadFile(filepath.Join(w.Config.BookSrcDir(), "sensors", "use_mouse.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "# use_mouse")
	assert.Contains(t, string(content), "Reactive mouse position.")
}

func TestRegenerate_SourceWithoutPageIgnored(t *testing.T) {
	w := watchFixture(t)
	srcDir := filepath.Join(w.Config.Library.Root, w.Config.Library.SrcDir)
	writeFile(t, w.Config.SourcePath("", "use_unlisted"), "/// Docs.\npub fn use_unlisted() {}\n")

	require.NoError(t, w.regenerate(srcDir, w.Config.SourcePath("", "use_unlisted")))

	entries, err := os.ReadDir(filepath.Join(w.Config.BookSrcDir(), "sensors"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestRegenerate_ModuleSource(t *testing.T) {
	w := watchFixture(t)
	srcDir := filepath.Join(w.Config.Library.Root, w.Config.Library.SrcDir)
	writeFile(t, w.Config.SourcePath("storage", "use_local_storage"),
		"/// Persistent state.\npub fn use_local_storage() {}\n")
	writeFile(t, filepath.Join(w.Config.BookSrcDir(), "storage", "use_local_storage.md"), "# stale\n")

	require.NoError(t, w.regenerate(srcDir, w.Config.SourcePath("storage", "use_local_storage")))

	content, err := os.ReadFile(filepath.Join(w.Config.BookSrcDir(), "storage", "use_local_storage.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Module: `storage`")
}

func TestRun_RegeneratesOnWrite(t *testing.T) {
	w := watchFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register before triggering an event.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, w.Config.SourcePath("", "use_mouse"),
		"/// Updated summary.\npub fn use_mouse() {}\n")

	pagePath := filepath.Join(w.Config.BookSrcDir(), "sensors", "use_mouse.md")
	assert.Eventually(t, func() bool {
		content, err := os.ReadFile(pagePath)
		return err == nil && string(content) != "# stale\n"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
}
