package splice

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/bookbinder/internal/config"
	"git.home.luguber.info/inful/bookbinder/internal/demo"
	"git.home.luguber.info/inful/bookbinder/internal/errors"
)

// Runner walks the book source tree and, for every page with a matching
// example project, builds the demo and splices its output into the
// rendered book page.
type Runner struct {
	Config  *config.Config
	Builder *demo.Builder
	// Filter restricts processing to pages whose filename contains it.
	Filter string
}

// Run executes the post-build pass. The first failing demo build aborts
// the run; its exit code is carried on the returned error.
func (r *Runner) Run() error {
	runID := uuid.NewString()
	slog.Info("Starting post-build splice", "run_id", runID, "filter", r.Filter)

	bookSrc := r.Config.BookSrcDir()
	entries, err := os.ReadDir(bookSrc)
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "read book source tree").
			WithContext("dir", bookSrc)
	}

	pages := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		category := entry.Name()

		files, err := os.ReadDir(filepath.Join(bookSrc, category))
		if err != nil {
			return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "read category directory").
				WithContext("category", category)
		}

		for _, file := range files {
			name, ok := strings.CutSuffix(file.Name(), ".md")
			if !ok || file.IsDir() {
				continue
			}
			if r.Filter != "" && !strings.Contains(file.Name(), r.Filter) {
				continue
			}

			exampleDir := r.Config.ExampleDir(name)
			if _, err := os.Stat(exampleDir); os.IsNotExist(err) {
				slog.Debug("No example project for page", "page", name)
				continue
			}

			if err := r.processPage(category, name, exampleDir); err != nil {
				return err
			}
			pages++
		}
	}

	slog.Info("Post-build splice finished", "run_id", runID, "pages", pages)
	return nil
}

func (r *Runner) processPage(category, name, exampleDir string) error {
	demoDir := filepath.Join(r.Config.BookOutDir(), category, name, "demo")

	if err := r.Builder.Build(exampleDir, demoDir); err != nil {
		return err
	}

	demoIndex := filepath.Join(demoDir, "index.html")
	demoHTML, err := os.ReadFile(demoIndex)
	if err != nil {
		return errors.Wrap(err, errors.CategorySplice, errors.SeverityFatal, "read demo entry document").
			WithContext("path", demoIndex)
	}

	demoDoc, err := Split(RewriteDemoAssets(string(demoHTML), name))
	if err != nil {
		return errors.Wrap(err, errors.CategorySplice, errors.SeverityFatal, "split demo document").
			WithContext("path", demoIndex)
	}

	pagePath := filepath.Join(r.Config.BookOutDir(), category, name+".html")
	pageHTML, err := os.ReadFile(pagePath)
	if err != nil {
		return errors.Wrap(err, errors.CategorySplice, errors.SeverityFatal, "read book page").
			WithContext("path", pagePath)
	}

	bookDoc, err := Split(string(pageHTML))
	if err != nil {
		return errors.Wrap(err, errors.CategorySplice, errors.SeverityFatal, "split book page").
			WithContext("path", pagePath)
	}

	merged := Cleanup(Merge(bookDoc, demoDoc), r.Config.Demo.CleanupPrefixes)
	VerifyDemoContainer(merged, pagePath)

	if err := os.WriteFile(pagePath, []byte(merged), 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "write spliced page").
			WithContext("path", pagePath)
	}

	slog.Info("Spliced demo into page", "category", category, "page", name)
	return nil
}
