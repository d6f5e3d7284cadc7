// Package page assembles the final markdown fragment for one documented
// function from the extractor's output and the caller-supplied directory
// context.
package page

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/bookbinder/internal/extract"
)

// linkSeparator joins the entries of the source link line.
const linkSeparator = " • "

var titleCaser = cases.Title(language.English)

// Metadata is the directory context of a page. It is supplied by the
// caller, not derived from the source file.
type Metadata struct {
	Category string
	Module   string
	Feature  string
}

// Assembler emits book pages.
type Assembler struct {
	// RepoURL is the base URL of the hosted repository.
	RepoURL string
	// DocsBaseURL is the base URL of the generated API docs.
	DocsBaseURL string
	// SourceRef is the branch or commit source links point at.
	SourceRef string
	// SrcExt is the source file extension including the dot.
	SrcExt string
}

// Assemble renders the page for one function in fixed order: metadata
// block, doc body, feature notice, types section, source link line.
// demoExists controls whether the demo link is emitted; a missing demo
// directory is an expected case, not an error.
func (a *Assembler) Assemble(name string, meta Metadata, doc *extract.Result, demoExists bool) string {
	var b strings.Builder

	a.writeMetadata(&b, name, meta)

	for _, line := range doc.DocLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if meta.Feature != "" {
		fmt.Fprintf(&b, "\n> This function is only available when the crate feature **`%s`** is enabled.\n", meta.Feature)
	}

	a.writeTypes(&b, meta, doc.Types)
	a.writeSourceLine(&b, name, meta, demoExists)

	return b.String()
}

func (a *Assembler) writeMetadata(b *strings.Builder, name string, meta Metadata) {
	fmt.Fprintf(b, "# %s\n\n", name)

	parts := []string{fmt.Sprintf("Category: %s", titleCaser.String(meta.Category))}
	if meta.Module != "" {
		parts = append(parts, fmt.Sprintf("Module: `%s`", meta.Module))
	}
	if meta.Feature != "" {
		parts = append(parts, fmt.Sprintf("Feature: `%s`", meta.Feature))
	}
	fmt.Fprintf(b, "*%s*\n\n", strings.Join(parts, linkSeparator))
}

func (a *Assembler) writeTypes(b *strings.Builder, meta Metadata, types []extract.TypeEntry) {
	if len(types) == 0 {
		return
	}

	b.WriteString("\n## Types\n\n")
	for _, entry := range types {
		fmt.Fprintf(b, "- [`%s`](%s/%s%s.%s.html)\n",
			entry.Identifier, a.DocsBaseURL, modulePrefix(meta.Module), entry.Kind, entry.Identifier)
	}
}

func (a *Assembler) writeSourceLine(b *strings.Builder, name string, meta Metadata, demoExists bool) {
	ref := a.SourceRef
	if ref == "" {
		ref = "main"
	}

	links := []string{
		fmt.Sprintf("[Source](%s/blob/%s/src/%s%s%s)", a.RepoURL, ref, modulePrefix(meta.Module), name, a.SrcExt),
	}
	if demoExists {
		links = append(links, fmt.Sprintf("[Demo](%s/tree/%s/examples/%s)", a.RepoURL, ref, name))
	}
	links = append(links, fmt.Sprintf("[Docs](%s/%sfn.%s.html)", a.DocsBaseURL, modulePrefix(meta.Module), name))

	b.WriteString("\n## Source\n\n")
	b.WriteString(strings.Join(links, linkSeparator))
	b.WriteByte('\n')
}

// modulePrefix returns "module/" or the empty string.
func modulePrefix(module string) string {
	if module == "" {
		return ""
	}
	return module + "/"
}
