// Package watch regenerates book pages while editing library sources. It
// watches the source tree and rewrites the markdown page of any documented
// function whose source file changes.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/bookbinder/internal/config"
	"git.home.luguber.info/inful/bookbinder/internal/errors"
	"git.home.luguber.info/inful/bookbinder/internal/extract"
	"git.home.luguber.info/inful/bookbinder/internal/page"
)

// Watcher regenerates pages for changed source files.
type Watcher struct {
	Config    *config.Config
	Assembler *page.Assembler
}

// Run watches the library source tree until the context is cancelled.
// Regeneration failures are logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, errors.SeverityFatal, "create filesystem watcher")
	}
	defer fw.Close()

	srcDir := filepath.Join(w.Config.Library.Root, w.Config.Library.SrcDir)
	if err := fw.Add(srcDir); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "watch source directory").
			WithContext("path", srcDir)
	}
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "read source directory").
			WithContext("path", srcDir)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := fw.Add(filepath.Join(srcDir, entry.Name())); err != nil {
				slog.Warn("Cannot watch module directory", "dir", entry.Name(), "error", err)
			}
		}
	}

	slog.Info("Watching library sources", "dir", srcDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if filepath.Ext(event.Name) != w.Config.Library.SrcExt {
				continue
			}
			if err := w.regenerate(srcDir, event.Name); err != nil {
				slog.Error("Page regeneration failed", "file", event.Name, "error", err)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", "error", err)
		}
	}
}

// regenerate rebuilds the book page for one source file. Sources without a
// page in the book are ignored.
func (w *Watcher) regenerate(srcDir, srcPath string) error {
	name := strings.TrimSuffix(filepath.Base(srcPath), w.Config.Library.SrcExt)

	module := ""
	if dir := filepath.Dir(srcPath); dir != filepath.Clean(srcDir) {
		module = filepath.Base(dir)
	}

	category, ok := w.findCategory(name)
	if !ok {
		slog.Debug("No book page for source file", "name", name)
		return nil
	}

	rewriter := &extract.LinkRewriter{
		Name:        name,
		Module:      module,
		DocsBaseURL: w.Config.Library.DocsBaseURL,
	}
	result, err := extract.New(rewriter).ExtractFile(srcPath)
	if err != nil {
		return errors.Wrap(err, errors.CategoryExtract, errors.SeverityError, "extract source file").
			WithContext("path", srcPath)
	}

	demoExists := false
	if _, err := os.Stat(w.Config.ExampleDir(name)); err == nil {
		demoExists = true
	}

	meta := page.Metadata{Category: category, Module: module}
	content := w.Assembler.Assemble(name, meta, result, demoExists)

	pagePath := filepath.Join(w.Config.BookSrcDir(), category, name+".md")
	if err := os.WriteFile(pagePath, []byte(content), 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "write page").
			WithContext("path", pagePath)
	}

	slog.Info("Regenerated page", "page", category+"/"+name+".md")
	return nil
}

// findCategory locates the category directory already holding a page for
// the function.
func (w *Watcher) findCategory(name string) (string, bool) {
	entries, err := os.ReadDir(w.Config.BookSrcDir())
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pagePath := filepath.Join(w.Config.BookSrcDir(), entry.Name(), name+".md")
		if _, err := os.Stat(pagePath); err == nil {
			return entry.Name(), true
		}
	}
	return "", false
}
