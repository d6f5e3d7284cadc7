package extract

import "strings"

// Declaration prefixes recognized by the type scanner.
const (
	structPrefix = "pub struct "
	enumPrefix   = "pub enum "
)

// scanTypes appends a TypeEntry when the line declares a public struct or
// enum. Lines not matching either prefix are ignored.
func scanTypes(line string, result *Result) {
	var kind TypeKind
	var rest string

	switch {
	case strings.HasPrefix(line, structPrefix):
		kind = TypeStruct
		rest = line[len(structPrefix):]
	case strings.HasPrefix(line, enumPrefix):
		kind = TypeEnum
		rest = line[len(enumPrefix):]
	default:
		return
	}

	ident := leadingIdentifier(strings.TrimLeft(rest, " "))
	if ident == "" {
		return
	}

	result.Types = append(result.Types, TypeEntry{Kind: kind, Identifier: ident})
}

// leadingIdentifier returns the maximal leading run of identifier
// characters, rejecting a leading digit.
func leadingIdentifier(s string) string {
	end := 0
	for end < len(s) {
		c := s[end]
		isLetter := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if !isLetter && !isDigit {
			break
		}
		if end == 0 && isDigit {
			return ""
		}
		end++
	}
	return s[:end]
}
