package splice

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RewriteDemoAssets adjusts asset paths in a demo's HTML so they stay
// valid once the demo tree lives at ./{name}/demo relative to the book
// page. Quoted paths beginning with the "/demo" or "./demo" segment are
// rewritten; longer first segments like "/demos-overview" are not.
func RewriteDemoAssets(content, name string) string {
	target := "./" + name + "/demo"
	for _, quote := range []string{`"`, `'`} {
		for _, prefix := range []string{"./demo", "/demo"} {
			content = strings.ReplaceAll(content, quote+prefix+"/", quote+target+"/")
			content = strings.ReplaceAll(content, quote+prefix+quote, quote+target+quote)
		}
	}
	return content
}

// Merge rebuilds the book page with the demo's fragments spliced in.
// Demo fragments come first in both head and body: demo-injected
// stylesheets and scripts must load before the book theme's, and the
// demo's embed target must precede the book's textual content so the
// demo-anchor placeholder resolves.
func Merge(book, demoDoc *Document) string {
	var b strings.Builder
	b.WriteString(book.Prologue)
	b.WriteString("<head>")
	b.WriteString(demoDoc.Head)
	b.WriteString(book.Head)
	b.WriteString("</head>")
	b.WriteString("<body>")
	b.WriteString(demoDoc.Body)
	b.WriteString(book.Body)
	b.WriteString("</body>")
	b.WriteString(book.Epilogue)
	return b.String()
}

// Cleanup removes internal crate-path prefixes from the merged page so
// rendered doc-comment cross-references do not leak internal path syntax.
func Cleanup(content string, prefixes []string) string {
	for _, prefix := range prefixes {
		content = strings.ReplaceAll(content, prefix, "")
	}
	return content
}

// VerifyDemoContainer checks the merged page for the demo container. The
// check is read-only and advisory: a missing container is logged as a
// warning, never treated as an error.
func VerifyDemoContainer(content, page string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		slog.Warn("Could not parse merged page for verification", "page", page, "error", err)
		return
	}
	if doc.Find("div.demo-container").Length() == 0 {
		slog.Warn("Merged page has no demo container", "page", page)
	}
}
