// Package overview generates the per-category function overview and keeps
// the README function-count badge current.
package overview

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/bookbinder/internal/config"
)

var titleCaser = cases.Title(language.English)

// Generator emits markdown overviews of the book's pages.
type Generator struct {
	Config *config.Config
}

// ForCategory renders a category heading followed by one bullet per page,
// each quoting the first doc line of the page's source file. Pages whose
// source cannot be found are listed without a summary.
func (g *Generator) ForCategory(category, module string) (string, error) {
	categoryDir := filepath.Join(g.Config.BookSrcDir(), category)
	entries, err := os.ReadDir(categoryDir)
	if err != nil {
		return "", fmt.Errorf("read category directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", titleCaser.String(category))

	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".md")
		if !ok || entry.IsDir() {
			continue
		}

		summary, _ := firstDocLine(g.Config.SourcePath(module, name))
		if summary == "" {
			fmt.Fprintf(&b, "- [%s](/%s/%s.md)\n", name, category, name)
			continue
		}
		fmt.Fprintf(&b, "- [%s](/%s/%s.md) – %s\n", name, category, name, summary)
	}

	return b.String(), nil
}

// firstDocLine returns the stripped first doc-comment line of a source file.
func firstDocLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "///") {
			return strings.TrimPrefix(strings.TrimPrefix(line, "///"), " "), nil
		}
	}
	return "", scanner.Err()
}
