package overview

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/bookbinder/internal/config"
	"git.home.luguber.info/inful/bookbinder/internal/errors"
)

// badgePattern matches the shields.io function-count badge in the README.
var badgePattern = regexp.MustCompile(`<img src="https://img\.shields\.io/badge/-\d+%20functions-%23EF3939" alt="\d+ Functions"`)

// CountPages counts the book's function pages: every markdown file inside
// a category subdirectory. Top-level files such as the table of contents
// are not pages.
func CountPages(bookSrcDir string) (int, error) {
	entries, err := os.ReadDir(bookSrcDir)
	if err != nil {
		return 0, fmt.Errorf("read book source directory: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pages, err := os.ReadDir(filepath.Join(bookSrcDir, entry.Name()))
		if err != nil {
			return 0, fmt.Errorf("read category directory: %w", err)
		}
		for _, page := range pages {
			if !page.IsDir() && strings.HasSuffix(page.Name(), ".md") {
				count++
			}
		}
	}
	return count, nil
}

// ApplyBadge rewrites the function-count badge to the given count. The
// content is returned unchanged when no badge is present.
func ApplyBadge(content string, count int) string {
	replacement := fmt.Sprintf(
		`<img src="https://img.shields.io/badge/-%d%%20functions-%%23EF3939" alt="%d Functions"`,
		count, count)
	return badgePattern.ReplaceAllString(content, replacement)
}

// UpdateBadge counts the book's pages and stamps the count into the
// README badge. A README without a badge is a validation error so stale
// badges do not go unnoticed.
func UpdateBadge(cfg *config.Config) error {
	count, err := CountPages(cfg.BookSrcDir())
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "count book pages")
	}

	path := cfg.ReadmePath()
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "read readme").
			WithContext("path", path)
	}

	if !badgePattern.MatchString(string(content)) {
		return errors.New(errors.CategoryValidation, errors.SeverityFatal, "no function-count badge found in readme").
			WithContext("path", path)
	}

	updated := ApplyBadge(string(content), count)
	if updated == string(content) {
		return nil
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "write readme").
			WithContext("path", path)
	}
	return nil
}
