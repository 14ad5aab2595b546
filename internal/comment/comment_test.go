package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/vitedoc/internal/docmodel"
	tu "git.home.luguber.info/inful/vitedoc/internal/testutil/testutils"
)

func TestModule_SearchOrder(t *testing.T) {
	n := tu.Function("formatDate").Module("date/format").Build()
	m, ok := Module(n, "")
	require.True(t, ok)
	assert.Equal(t, "date/format", m)

	// Node comment wins over signatures.
	n = tu.Function("f").Module("sig").NodeComment().Module("own").Build()
	m, _ = Module(n, DefaultModuleTag)
	assert.Equal(t, "own", m)

	// Second signature is searched when the first has nothing.
	n = tu.Function("g").Summary("first").Overload().Module("second").Build()
	m, ok = Module(n, "")
	require.True(t, ok)
	assert.Equal(t, "second", m)
}

func TestModule_Extraction(t *testing.T) {
	n := tu.Class("C").Tag("@memberof", "  Plain Text  ").Build()
	m, ok := Module(n, "")
	require.True(t, ok)
	assert.Equal(t, "Plain Text", m)

	n = tu.Class("C").Tag("@func", "  module:raw  ").Build()
	m, ok = Module(n, RawTag)
	require.True(t, ok)
	assert.Equal(t, "  module:raw  ", m)

	n = tu.Class("C").Tag("@memberof", "see module:geo/distance for details").Build()
	m, _ = Module(n, "")
	assert.Equal(t, "geo/distance", m)
}

func TestModule_Absent(t *testing.T) {
	for _, n := range []*docmodel.Node{
		nil,
		{Name: "bare", Kind: docmodel.KindVariable},
		tu.Function("f").Summary("only summary").Build(),
		{Name: "nilsig", Kind: docmodel.KindFunction, Signatures: []*docmodel.Signature{nil}},
	} {
		_, ok := Module(n, "")
		assert.False(t, ok)
		assert.Equal(t, "", ModuleKey(n))
		assert.Equal(t, GlobalModule, ModuleName(n))
	}
}

func TestCategoryAndModuleTag(t *testing.T) {
	n := tu.Function("f").Category(" Utils ").Tag("@module", "strings").Build()
	c, ok := Category(n)
	require.True(t, ok)
	assert.Equal(t, "Utils", c)
	m, ok := ModuleTag(n)
	require.True(t, ok)
	assert.Equal(t, "strings", m)

	_, ok = Category(tu.Interface("I").Build())
	assert.False(t, ok)
}

func TestFunctionDescription(t *testing.T) {
	n := tu.Function("f").NodeComment().Tag("@function", " 格式化日期。").Build()
	d, ok := FunctionDescription(n)
	require.True(t, ok)
	assert.Equal(t, "格式化日期", d)

	n = tu.Function("f").Tag("function", "Sig tag").Build()
	d, _ = FunctionDescription(n)
	assert.Equal(t, "Sig tag", d)

	n = tu.Function("f").Summary("Summary text").Build()
	d, _ = FunctionDescription(n)
	assert.Equal(t, "Summary text", d)

	_, ok = FunctionDescription(tu.Class("C").Summary("class summary").Build())
	assert.False(t, ok)
}

func TestFullDescription(t *testing.T) {
	n := tu.Class("C").Summary("Short.").Remarks("Long.").Build()
	assert.Equal(t, "Short.\n\nLong.", FullDescription(n))

	n = tu.Class("C").Remarks("Only long.").Build()
	assert.Equal(t, "Only long.", FullDescription(n))

	n = tu.Function("f").Summary("From signature").Build()
	assert.Equal(t, "From signature", FullDescription(n))

	n = tu.Function("myFunction").Build()
	assert.Equal(t, "myFunction function", FullDescription(n))

	n = tu.TypeAlias("Alias", tu.Intrinsic("string")).Build()
	assert.Equal(t, "Alias typealias", FullDescription(n))
}

func TestExamples(t *testing.T) {
	n := tu.Function("f").Example("sig()").NodeComment().Example("node()").Example("  ").Build()
	assert.Equal(t, []string{"node()", "sig()"}, Examples(n))
	assert.Empty(t, Examples(nil))
}

func TestDeprecatedAndSince(t *testing.T) {
	n := tu.Function("old").Modifier("@deprecated").Build()
	assert.True(t, IsDeprecated(n))

	n = tu.Class("Legacy").Tag("@deprecated", "Use New instead.").Tag("@since", "1.2.0").Build()
	assert.True(t, IsDeprecated(n))
	assert.Equal(t, "Use New instead.", DeprecationNote(n))
	v, ok := Since(n)
	require.True(t, ok)
	assert.Equal(t, "1.2.0", v)

	assert.False(t, IsDeprecated(tu.Class("Fresh").Build()))
}
