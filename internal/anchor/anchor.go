// Package anchor provides idempotent insert-or-update primitives over text
// file content. All functions are pure (oldContent, params) -> newContent;
// file I/O belongs to the callers, keeping every mutation unit-testable
// without a filesystem.
package anchor

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// ErrAnchorMissing reports that the requested section or marker does not
// exist in the content. Callers treat this as a reported, non-fatal
// condition requiring manual follow-up.
var ErrAnchorMissing = errors.New("anchor not found")

// AccumulateTableRow updates the trailing row of a pipe-delimited
// compatibility table. The table realizes a many-to-one mapping: one right
// version may correspond to multiple left versions accumulated in the
// row's first cell.
//
// If the last line already pairs left with right the content is returned
// unchanged. If the last line carries right but not left, ", left" is
// inserted at the end of the first cell (trailing cell spaces trimmed
// first). Otherwise a brand-new row is appended. Applying the function
// twice yields the same result as applying it once.
func AccumulateTableRow(content, left, right string) string {
	trimmed := strings.TrimRight(content, "\n")
	lines := strings.Split(trimmed, "\n")
	last := lines[len(lines)-1]

	rowPattern := regexp.MustCompile(`^\|[^|]+\| ` + regexp.QuoteMeta(right))
	if !rowPattern.MatchString(last) {
		lines = append(lines, "| "+left+" | "+right+" |")
		return strings.Join(lines, "\n") + "\n"
	}

	if firstCellContains(last, left) {
		return content
	}

	idx := strings.Index(last[1:], "|") + 1
	for idx > 2 && last[idx-1] == ' ' {
		idx--
	}
	lines[len(lines)-1] = last[:idx] + ", " + left + last[idx:]
	return strings.Join(lines, "\n") + "\n"
}

// firstCellContains reports whether the row's first cell already lists
// version among its comma-separated entries. Cell-level parsing (rather
// than a regular expression over the raw row) keeps the mutation
// idempotent for freshly appended rows too.
func firstCellContains(row, version string) bool {
	end := strings.Index(row[1:], "|")
	if end < 0 {
		return false
	}
	for _, v := range strings.Split(row[1:end+1], ",") {
		if strings.TrimSpace(v) == version {
			return true
		}
	}
	return false
}

// StampHeading replaces the literal marker with heading. An absent marker
// is a silent no-op (the heading was already stamped).
func StampHeading(content, marker, heading string) string {
	return strings.ReplaceAll(content, marker, heading)
}

// SortedInsert inserts entry into the section delimited by startMarker and
// the next occurrence of nextMarker (or end of content), keeping the
// section's non-empty lines lexicographically sorted. Duplicate entries
// are not filtered.
func SortedInsert(content, startMarker, nextMarker, entry string) (string, error) {
	start := strings.Index(content, startMarker)
	if start < 0 {
		return "", ErrAnchorMissing
	}
	return sortedInsertAt(content, start+len(startMarker), nextMarker, entry), nil
}

// SortedInsertRegexp is SortedInsert with a pattern-located start anchor.
func SortedInsertRegexp(content string, startPattern *regexp.Regexp, nextMarker, entry string) (string, error) {
	loc := startPattern.FindStringIndex(content)
	if loc == nil {
		return "", ErrAnchorMissing
	}
	return sortedInsertAt(content, loc[1], nextMarker, entry), nil
}

func sortedInsertAt(content string, sectionStart int, nextMarker, entry string) string {
	before := content[:sectionStart]
	rest := content[sectionStart:]

	section := rest
	after := ""
	if nextMarker != "" {
		if end := strings.Index(rest, nextMarker); end >= 0 {
			section = rest[:end]
			after = rest[end:]
		}
	}

	var entries []string
	for _, line := range strings.Split(section, "\n") {
		if strings.TrimSpace(line) != "" {
			entries = append(entries, line)
		}
	}
	entries = append(entries, entry)
	sort.Strings(entries)

	return before + strings.Join(entries, "\n") + "\n" + after
}
