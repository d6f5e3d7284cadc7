package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// demoLinkPrefix marks a line that embeds the function's interactive demo.
const demoLinkPrefix = "[Link to Demo](https://"

// codeRefPattern matches an internal code reference like [`use_mouse`].
var codeRefPattern = regexp.MustCompile("\\[`([A-Za-z_][A-Za-z0-9_:]*)`\\]")

// LinkRewriter rewrites demo links and internal code references in one doc
// line. Rewriting is line-local and single-pass.
type LinkRewriter struct {
	// Name of the documented function; used for the demo embed target.
	Name string
	// Module is the optional module segment of generated docs URLs.
	Module string
	// DocsBaseURL is the base URL of the generated API docs.
	DocsBaseURL string
}

// Rewrite applies the two exclusive per-line rules, first match wins.
func (r *LinkRewriter) Rewrite(line string) string {
	if fragment, ok := r.rewriteDemoLink(line); ok {
		return fragment
	}
	return r.rewriteCodeRefs(line)
}

// rewriteDemoLink replaces a literal demo-link line with the demo container
// fragment: a source anchor derived from the link URL plus the embed anchor
// the post-build splicer fills in.
func (r *LinkRewriter) rewriteDemoLink(line string) (string, bool) {
	stripped := strings.TrimSpace(line)
	if !strings.HasPrefix(stripped, demoLinkPrefix) {
		return "", false
	}

	url := strings.TrimPrefix(stripped, "[Link to Demo](")
	url = strings.TrimSuffix(url, ")")

	fragment := fmt.Sprintf(`<div class="demo-container">
    <a class="demo-source" href="%s/src/main.rs" target="_blank">source</a>
    <div id="demo-anchor"></div>
</div>`, url)
	return fragment, true
}

// rewriteCodeRefs links every [`Identifier`] occurrence that is not already
// followed by a markdown link target.
func (r *LinkRewriter) rewriteCodeRefs(line string) string {
	matches := codeRefPattern.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return line
	}

	module := ""
	if r.Module != "" {
		module = r.Module + "/"
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		// Go regexp has no lookahead; an existing link target is detected
		// by inspecting the byte after the match instead.
		if end < len(line) && line[end] == '(' {
			continue
		}
		ident := line[m[2]:m[3]]
		b.WriteString(line[last:start])
		fmt.Fprintf(&b, "[`%s`](%s/%sfn.%s.html)", ident, r.DocsBaseURL, module, ident)
		last = end
	}
	b.WriteString(line[last:])
	return b.String()
}
