// Package scaffold inserts a new function's entries into the text
// artifacts that track it: the example workspace member list, the crate's
// re-export files, the book's table of contents and the changelog.
//
// Every mutation is computed in memory from the full file content and
// written back only when the computation succeeds. A missing anchor
// section is reported and skipped; the remaining artifacts are still
// processed.
package scaffold

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/bookbinder/internal/anchor"
	"git.home.luguber.info/inful/bookbinder/internal/config"
	"git.home.luguber.info/inful/bookbinder/internal/errors"
)

const (
	unreleasedHeading   = "## [Unreleased] - "
	newFunctionsHeading = "### New Functions 🚀"
)

// Params identify the function being scaffolded.
type Params struct {
	FunctionName string
	Category     string
	Module       string
	Feature      string
}

// Scaffolder wires a new function into the library's bookkeeping files.
type Scaffolder struct {
	Config *config.Config
}

// Run performs all insertions. Missing anchors are logged and skipped;
// only I/O failures abort the run.
func (s *Scaffolder) Run(p Params) error {
	if p.FunctionName == "" || p.Category == "" {
		return errors.ValidationError("function name and category are required")
	}

	slog.Info("Scaffolding function", "name", p.FunctionName, "category", p.Category, "module", p.Module)

	steps := []struct {
		name string
		fn   func(Params) error
	}{
		{"changelog", s.updateChangelog},
		{"lib re-exports", s.updateLib},
		{"module re-exports", s.updateModFile},
		{"summary", s.updateSummary},
		{"workspace members", s.updateWorkspace},
	}

	for _, step := range steps {
		if err := step.fn(p); err != nil {
			if errors.IsCategory(err, errors.CategoryScaffold) {
				slog.Warn("Skipping artifact, manual follow-up needed", "step", step.name, "error", err)
				continue
			}
			return err
		}
	}

	return nil
}

// mutateFile reads path, applies transform, and writes the result back
// unless it is unchanged. Transform errors leave the file untouched.
func mutateFile(path string, transform func(string) (string, error)) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "read file").
			WithContext("path", path)
	}

	updated, err := transform(string(content))
	if err != nil {
		return err
	}
	if updated == string(content) {
		return nil
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "write file").
			WithContext("path", path)
	}
	return nil
}

func (s *Scaffolder) updateWorkspace(p Params) error {
	return mutateFile(s.Config.WorkspacePath(), func(content string) (string, error) {
		entry := fmt.Sprintf("    %q,", p.FunctionName)
		updated, err := anchor.SortedInsert(content, "members = [\n", "]", entry)
		if err != nil {
			return "", errors.Wrap(err, errors.CategoryScaffold, errors.SeverityWarning, "no members block in workspace manifest")
		}
		return updated, nil
	})
}

func (s *Scaffolder) updateSummary(p Params) error {
	return mutateFile(s.Config.SummaryPath(), func(content string) (string, error) {
		entry := fmt.Sprintf("- [%s](%s/%s.md)", p.FunctionName, p.Category, p.FunctionName)
		pattern := regexp.MustCompile(`(?i)# @?` + regexp.QuoteMeta(p.Category) + `\n\n`)
		updated, err := anchor.SortedInsertRegexp(content, pattern, "\n# ", entry)
		if err != nil {
			return "", errors.Wrap(err, errors.CategoryScaffold, errors.SeverityWarning,
				fmt.Sprintf("category %q not found in summary; add it together with the link to the new function", p.Category))
		}
		return updated, nil
	})
}

func (s *Scaffolder) updateChangelog(p Params) error {
	return mutateFile(s.Config.ChangelogPath(), func(content string) (string, error) {
		content = ensureUnreleasedSection(content)

		entry := fmt.Sprintf("- `%s`", p.FunctionName)
		updated, err := anchor.SortedInsert(content, newFunctionsHeading+"\n", "\n#", entry)
		if err != nil {
			// ensureUnreleasedSection always creates the heading; reaching
			// this means the changelog layout is beyond repair.
			return "", errors.Wrap(err, errors.CategoryScaffold, errors.SeverityWarning, "no new-functions section in changelog")
		}
		return updated, nil
	})
}

// ensureUnreleasedSection guarantees an unreleased heading with a
// new-functions subsection exists ahead of the first released heading.
func ensureUnreleasedSection(content string) string {
	if !strings.Contains(content, "## [Unreleased") {
		block := unreleasedHeading + "\n\n"
		if idx := strings.Index(content, "\n## ["); idx >= 0 {
			content = content[:idx+1] + block + content[idx+1:]
		} else {
			content = strings.TrimRight(content, "\n") + "\n\n" + block
		}
	}

	start := strings.Index(content, "## [Unreleased")
	sectionEnd := len(content)
	if idx := strings.Index(content[start+1:], "\n## ["); idx >= 0 {
		sectionEnd = start + 1 + idx
	}

	if !strings.Contains(content[start:sectionEnd], newFunctionsHeading) {
		headingEnd := start
		if idx := strings.IndexByte(content[start:sectionEnd], '\n'); idx >= 0 {
			headingEnd = start + idx + 1
		} else {
			content += "\n"
			headingEnd = len(content)
			sectionEnd = headingEnd
		}
		// Skip the blank line after the unreleased heading if present.
		if headingEnd < sectionEnd && strings.HasPrefix(content[headingEnd:], "\n") {
			headingEnd++
		}
		content = content[:headingEnd] + newFunctionsHeading + "\n\n" + content[headingEnd:]
	}

	return content
}

func (s *Scaffolder) updateLib(p Params) error {
	return mutateFile(s.Config.LibPath(), func(content string) (string, error) {
		featurePrefix := ""
		if p.Feature != "" {
			featurePrefix = fmt.Sprintf("#[cfg(feature = %q)]\n", p.Feature)
		}

		if p.Module == "" {
			modAnchor := s.Config.Scaffold.ModDeclAnchor
			useAnchor := s.Config.Scaffold.ReExportAnchor
			if !strings.Contains(content, modAnchor) || !strings.Contains(content, useAnchor) {
				return "", errors.New(errors.CategoryScaffold, errors.SeverityWarning, "re-export anchors not found in lib file")
			}
			content = strings.Replace(content, modAnchor,
				modAnchor+"\n"+featurePrefix+"mod "+p.FunctionName+";", 1)
			content = strings.Replace(content, useAnchor,
				useAnchor+"\n"+featurePrefix+"pub use "+p.FunctionName+"::*;", 1)
			return content, nil
		}

		if strings.Contains(content, "pub mod "+p.Module+";") {
			return content, nil
		}
		moduleAnchor := s.Config.Scaffold.ModuleDeclAnchor
		if !strings.Contains(content, moduleAnchor) {
			return "", errors.New(errors.CategoryScaffold, errors.SeverityWarning, "module declaration anchor not found in lib file")
		}
		return strings.Replace(content, moduleAnchor,
			moduleAnchor+"\n"+featurePrefix+"pub mod "+p.Module+";", 1), nil
	})
}

func (s *Scaffolder) updateModFile(p Params) error {
	if p.Module == "" {
		return nil
	}

	path := s.Config.ModFilePath(p.Module)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		var b strings.Builder
		if p.Feature != "" {
			fmt.Fprintf(&b, "#![doc(cfg(feature = %q))]\n", p.Feature)
		}
		fmt.Fprintf(&b, "\nmod %s;\n\npub use %s::*;\n", p.FunctionName, p.FunctionName)

		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "write module file").
				WithContext("path", path)
		}
		return nil
	}

	return mutateFile(path, func(content string) (string, error) {
		// New declarations become the first of their statement kind.
		content = strings.Replace(content, "mod ", "mod "+p.FunctionName+";\nmod ", 1)
		content = strings.Replace(content, "pub use ", "pub use "+p.FunctionName+"::*;\npub use ", 1)
		return content, nil
	})
}
