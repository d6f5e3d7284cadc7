// Package lint checks the committed book pages for problems that would
// otherwise only surface after publishing: doc blocks with unclosed code
// fences, pages whose source file has gone missing, and links pointing at
// markdown files that do not exist.
package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/bookbinder/internal/config"
	"git.home.luguber.info/inful/bookbinder/internal/errors"
	"git.home.luguber.info/inful/bookbinder/internal/extract"
	"git.home.luguber.info/inful/bookbinder/internal/markdown"
)

// Finding is one problem in one page.
type Finding struct {
	Page    string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Page, f.Message)
}

// Linter walks the book source tree and collects findings.
type Linter struct {
	Config *config.Config
}

// Run lints every page under the book source tree. Findings are returned
// in walk order; only I/O failures produce an error.
func (l *Linter) Run() ([]Finding, error) {
	bookSrc := l.Config.BookSrcDir()
	entries, err := os.ReadDir(bookSrc)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "read book source directory").
			WithContext("path", bookSrc)
	}

	var findings []Finding
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		category := entry.Name()
		pages, err := os.ReadDir(filepath.Join(bookSrc, category))
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "read category directory").
				WithContext("category", category)
		}
		for _, page := range pages {
			if page.IsDir() || !strings.HasSuffix(page.Name(), ".md") {
				continue
			}
			f, err := l.lintPage(category, page.Name())
			if err != nil {
				return nil, err
			}
			findings = append(findings, f...)
		}
	}
	return findings, nil
}

func (l *Linter) lintPage(category, fileName string) ([]Finding, error) {
	pageRef := category + "/" + fileName
	name := strings.TrimSuffix(fileName, ".md")

	var findings []Finding

	srcPath, module, found := l.findSource(name)
	if !found {
		findings = append(findings, Finding{Page: pageRef, Message: "no source file for page"})
	} else {
		rewriter := &extract.LinkRewriter{
			Name:        name,
			Module:      module,
			DocsBaseURL: l.Config.Library.DocsBaseURL,
		}
		result, err := extract.New(rewriter).ExtractFile(srcPath)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryExtract, errors.SeverityFatal, "extract source file").
				WithContext("path", srcPath)
		}
		if !result.BalancedFences {
			findings = append(findings, Finding{Page: pageRef, Message: "doc block ends inside an open code fence"})
		}
		if len(result.DocLines) == 0 {
			findings = append(findings, Finding{Page: pageRef, Message: "source file has no doc comment"})
		}
	}

	pagePath := filepath.Join(l.Config.BookSrcDir(), category, fileName)
	content, err := os.ReadFile(pagePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "read page").
			WithContext("path", pagePath)
	}

	for _, link := range markdown.ExtractLinks(content) {
		if msg, bad := l.checkLink(category, link.Destination); bad {
			findings = append(findings, Finding{Page: pageRef, Message: msg})
		}
	}

	return findings, nil
}

// findSource locates the source file for a page, first directly under the
// source directory, then one level down in each module directory.
func (l *Linter) findSource(name string) (path, module string, found bool) {
	direct := l.Config.SourcePath("", name)
	if _, err := os.Stat(direct); err == nil {
		return direct, "", true
	}

	srcDir := filepath.Join(l.Config.Library.Root, l.Config.Library.SrcDir)
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return "", "", false
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := l.Config.SourcePath(entry.Name(), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, entry.Name(), true
		}
	}
	return "", "", false
}

// checkLink verifies relative markdown destinations resolve inside the book
// source tree. External URLs and fragments are out of scope.
func (l *Linter) checkLink(category, dest string) (string, bool) {
	if dest == "" || strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") || strings.HasPrefix(dest, "#") {
		return "", false
	}
	dest, _, _ = strings.Cut(dest, "#")
	if !strings.HasSuffix(dest, ".md") {
		return "", false
	}

	var target string
	if strings.HasPrefix(dest, "/") {
		target = filepath.Join(l.Config.BookSrcDir(), dest)
	} else {
		target = filepath.Join(l.Config.BookSrcDir(), category, dest)
	}
	if _, err := os.Stat(target); err != nil {
		return fmt.Sprintf("dangling link %q", dest), true
	}
	return "", false
}
