package page

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookbinder/internal/extract"
)

func testAssembler() *Assembler {
	return &Assembler{
		RepoURL:     "https://github.com/acme/lib",
		DocsBaseURL: "https://docs.example.com",
		SrcExt:      ".rs",
	}
}

func TestAssemble_FixedOrder(t *testing.T) {
	a := testAssembler()
	doc := &extract.Result{
		DocLines: []string{"Reactive mouse position.", "", "More text."},
		Types:    []extract.TypeEntry{{Kind: extract.TypeStruct, Identifier: "UseMouseReturn"}},
	}

	out := a.Assemble("use_mouse", Metadata{Category: "sensors", Feature: "mouse"}, doc, true)

	metaIdx := strings.Index(out, "Category: Sensors")
	bodyIdx := strings.Index(out, "Reactive mouse position.")
	featureIdx := strings.Index(out, "crate feature **`mouse`**")
	typesIdx := strings.Index(out, "## Types")
	sourceIdx := strings.Index(out, "## Source")

	require.NotEqual(t, -1, metaIdx)
	require.NotEqual(t, -1, bodyIdx)
	require.NotEqual(t, -1, featureIdx)
	require.NotEqual(t, -1, typesIdx)
	require.NotEqual(t, -1, sourceIdx)

	assert.Less(t, metaIdx, bodyIdx)
	assert.Less(t, bodyIdx, featureIdx)
	assert.Less(t, featureIdx, typesIdx)
	assert.Less(t, typesIdx, sourceIdx)
}

func TestAssemble_TypesLinks(t *testing.T) {
	a := testAssembler()
	doc := &extract.Result{
		Types: []extract.TypeEntry{
			{Kind: extract.TypeStruct, Identifier: "Foo"},
			{Kind: extract.TypeEnum, Identifier: "Baz"},
		},
	}

	out := a.Assemble("use_foo", Metadata{Category: "utilities", Module: "math"}, doc, false)

	assert.Contains(t, out, "- [`Foo`](https://docs.example.com/math/struct.Foo.html)")
	assert.Contains(t, out, "- [`Baz`](https://docs.example.com/math/enum.Baz.html)")
}

func TestAssemble_NoTypesSection(t *testing.T) {
	a := testAssembler()
	out := a.Assemble("use_foo", Metadata{Category: "utilities"}, &extract.Result{}, false)
	assert.NotContains(t, out, "## Types")
}

func TestAssemble_SourceLine(t *testing.T) {
	a := testAssembler()

	out := a.Assemble("use_mouse", Metadata{Category: "sensors"}, &extract.Result{}, true)
	assert.Contains(t, out,
		"[Source](https://github.com/acme/lib/blob/main/src/use_mouse.rs) • "+
			"[Demo](https://github.com/acme/lib/tree/main/examples/use_mouse) • "+
			"[Docs](https://docs.example.com/fn.use_mouse.html)")
}

func TestAssemble_MissingDemoOmitsLink(t *testing.T) {
	a := testAssembler()

	out := a.Assemble("use_mouse", Metadata{Category: "sensors"}, &extract.Result{}, false)
	assert.NotContains(t, out, "[Demo]")
	assert.Contains(t, out, "[Source]")
	assert.Contains(t, out, "[Docs]")
}

func TestAssemble_PinnedSourceRef(t *testing.T) {
	a := testAssembler()
	a.SourceRef = "abc1234"

	out := a.Assemble("use_mouse", Metadata{Category: "sensors"}, &extract.Result{}, false)
	assert.Contains(t, out, "/blob/abc1234/src/use_mouse.rs")
}

func TestAssemble_ModuleInMetadataAndPaths(t *testing.T) {
	a := testAssembler()

	out := a.Assemble("use_local_storage", Metadata{Category: "storage", Module: "storage"}, &extract.Result{}, false)
	assert.Contains(t, out, "Module: `storage`")
	assert.Contains(t, out, "/blob/main/src/storage/use_local_storage.rs")
	assert.Contains(t, out, "[Docs](https://docs.example.com/storage/fn.use_local_storage.html)")
}
