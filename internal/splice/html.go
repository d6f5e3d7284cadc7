// Package splice merges a demo's generated HTML head/body fragments into
// the corresponding rendered book page.
package splice

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is an HTML document split around its first head and body
// elements. The fields are copies of the source spans; concatenating
// Prologue + "<head>" + Head + "</head>" + "<body>" + Body + "</body>" +
// Epilogue without the tags yields the regions of the original document.
type Document struct {
	// Prologue is everything before the opening <head> tag.
	Prologue string
	// Head is the inner content of the first head element.
	Head string
	// Body is the inner content of the first body element. The opening
	// body tag may carry attributes; they are not part of the fragment.
	Body string
	// Epilogue is everything after the closing </body> tag.
	Epilogue string
}

// Split locates the first head and body elements with the HTML tokenizer,
// tracking raw byte offsets so the extracted spans are byte-identical to
// the source. No re-serialization happens; surrounding text, whitespace
// and attribute quoting are untouched.
func Split(content string) (*Document, error) {
	z := html.NewTokenizer(strings.NewReader(content))

	pos := 0
	headStart, headInnerStart, headInnerEnd := -1, -1, -1
	bodyInnerStart, bodyInnerEnd, bodyEnd := -1, -1, -1

	for {
		tt := z.Next()
		tokenStart := pos
		pos += len(z.Raw())

		if tt == html.ErrorToken {
			break
		}

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "head":
				if headInnerStart < 0 {
					headStart = tokenStart
					headInnerStart = pos
				}
			case "body":
				if bodyInnerStart < 0 {
					bodyInnerStart = pos
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "head":
				if headInnerStart >= 0 && headInnerEnd < 0 {
					headInnerEnd = tokenStart
				}
			case "body":
				if bodyInnerStart >= 0 && bodyInnerEnd < 0 {
					bodyInnerEnd = tokenStart
					bodyEnd = pos
				}
			}
		}
	}

	if err := z.Err(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("tokenize html: %w", err)
	}
	if headInnerStart < 0 || headInnerEnd < 0 {
		return nil, fmt.Errorf("document has no head element")
	}
	if bodyInnerStart < 0 || bodyInnerEnd < 0 {
		return nil, fmt.Errorf("document has no body element")
	}

	return &Document{
		Prologue: content[:headStart],
		Head:     content[headInnerStart:headInnerEnd],
		Body:     content[bodyInnerStart:bodyInnerEnd],
		Epilogue: content[bodyEnd:],
	}, nil
}
