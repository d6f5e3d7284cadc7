// Package extract turns the leading doc-comment block of a library source
// file into book-ready markdown lines, and scans the remainder of the file
// for public type declarations.
package extract

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// docMarker is the doc-comment line prefix recognized in library sources.
const docMarker = "///"

// fenceMarker toggles code-block state inside the doc block.
const fenceMarker = "```"

// ignoreTag replaces the opening fence's language tag so the book renderer
// does not attempt to compile the snippet.
const ignoreTag = "```rust,ignore"

// phase is the extractor's position relative to the doc-comment block.
// Transitions are one-directional: BeforeBlock -> InBlock -> AfterBlock.
type phase int

const (
	phaseBeforeBlock phase = iota
	phaseInBlock
	phaseAfterBlock
)

// TypeKind is the declaration keyword of a discovered public type.
type TypeKind string

const (
	TypeStruct TypeKind = "struct"
	TypeEnum   TypeKind = "enum"
)

// TypeEntry is a public type declaration found after the doc block.
type TypeEntry struct {
	Kind       TypeKind
	Identifier string
}

// Result holds the transformed doc block and the auxiliary metadata
// discovered in the same pass.
type Result struct {
	// DocLines are the stripped, fence-annotated, link-rewritten lines of
	// the leading doc-comment block, in source order.
	DocLines []string
	// Types are the public declarations found after the block, in
	// discovery order. Duplicates are not removed.
	Types []TypeEntry
	// BalancedFences is false when the block ended inside an open code
	// fence. Downstream output is undefined in that case.
	BalancedFences bool
}

// Extractor transforms one source file.
type Extractor struct {
	rewriter *LinkRewriter
}

// New creates an Extractor whose link rewriting targets the given function.
func New(rewriter *LinkRewriter) *Extractor {
	return &Extractor{rewriter: rewriter}
}

// ExtractFile reads and transforms the source file at path.
// A file without any doc comment yields an empty result and no error;
// callers treat that as "no documentation".
func (e *Extractor) ExtractFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}

	result := e.Extract(lines)
	if !result.BalancedFences {
		slog.Warn("Doc comment ends inside an open code fence", "path", path)
	}
	return result, nil
}

// Extract runs the three-phase pass over the raw source lines.
func (e *Extractor) Extract(lines []string) *Result {
	result := &Result{BalancedFences: true}
	state := phaseBeforeBlock
	inFence := false

	for _, raw := range lines {
		isDoc := strings.HasPrefix(raw, docMarker)

		switch state {
		case phaseBeforeBlock:
			if !isDoc {
				continue
			}
			state = phaseInBlock
			fallthrough

		case phaseInBlock:
			if !isDoc {
				// The block never re-opens; everything from here on is
				// scanned for type declarations only.
				state = phaseAfterBlock
				scanTypes(raw, result)
				continue
			}
			line := stripMarker(raw)
			if strings.Contains(line, fenceMarker) {
				if !inFence {
					line = strings.Replace(line, fenceMarker, ignoreTag, 1)
				}
				inFence = !inFence
			}
			result.DocLines = append(result.DocLines, e.rewriter.Rewrite(line))

		case phaseAfterBlock:
			scanTypes(raw, result)
		}
	}

	result.BalancedFences = !inFence
	return result
}

// stripMarker removes the doc marker and a single following space.
// A marker-only line strips to an empty line, preserving paragraph breaks.
func stripMarker(raw string) string {
	line := strings.TrimPrefix(raw, docMarker)
	return strings.TrimPrefix(line, " ")
}
