package sidebar

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/vitedoc/internal/docmodel"
	tu "git.home.luguber.info/inful/vitedoc/internal/testutil/testutils"
)

func fixtureNodes() []*docmodel.Node {
	return tu.Nodes(
		tu.Function("formatDate").Module("date/format").Summary("Formats a date"),
		tu.Function("parseDate").Module("date").Tag("@function", "Parses a date。"),
		tu.Function("distance").Category("Geo").Tag("@module", "math"),
		tu.Function("bearing").Category("Geo").Tag("@module", "math"),
		tu.Function("toRad").Category("Geo").Tag("@module", "Geo"),
		tu.Class("Point").Category("Geo").NodeComment().Summary("A point"),
		tu.Interface("Hidden").Category("Geo"),
		tu.Interface("Shown").Category("Geo").NodeComment().Example("const s: Shown = {}"),
		tu.TypeAlias("Alias", tu.Intrinsic("string")),
		tu.Variable("VERSION", tu.Intrinsic("string")),
	)
}

func TestGenerate_Structure(t *testing.T) {
	tree := Generate(fixtureNodes(), Options{BaseURL: "/api/"})
	require.Len(t, tree, 3)

	assert.Equal(t, "Geo", tree[0].Text)
	assert.Equal(t, "Global", tree[1].Text)
	assert.Equal(t, "date", tree[2].Text)

	geo := tree[0].Items
	// Direct items first (Point, Shown, toRad sorted by name), then the math subgroup.
	require.Len(t, geo, 4)
	assert.Equal(t, "Point", geo[0].Text)
	assert.Equal(t, "/api/point", geo[0].Link)
	assert.Equal(t, "Shown", geo[1].Text)
	assert.Equal(t, "toRad", geo[2].Text)
	assert.Equal(t, "math", geo[3].Text)
	require.Len(t, geo[3].Items, 2)
	assert.Equal(t, "/api/bearing", geo[3].Items[0].Link)
	assert.Equal(t, "/api/distance", geo[3].Items[1].Link)
	assert.Empty(t, geo[3].Link)

	global := tree[1].Items
	require.Len(t, global, 1)
	assert.Equal(t, "VERSION", global[0].Text)

	date := tree[2].Items
	require.Len(t, date, 2)
	assert.Equal(t, "Formats a date", date[0].Text)
	assert.Equal(t, "Parses a date", date[1].Text)

	assert.Equal(t, 8, Count(tree))
}

func TestGenerate_VisibilityFilter(t *testing.T) {
	assert.False(t, Visible(tu.Interface("I").Build()))
	assert.True(t, Visible(tu.Interface("I").Example("x").Build()))
	assert.False(t, Visible(tu.TypeAlias("T", nil).Build()))
	assert.True(t, Visible(tu.Class("C").Build()))
	assert.False(t, Visible(nil))
}

func TestGenerate_OrderIndependent(t *testing.T) {
	base, err := Marshal(Generate(fixtureNodes(), Options{}))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		nodes := fixtureNodes()
		rng.Shuffle(len(nodes), func(a, b int) { nodes[a], nodes[b] = nodes[b], nodes[a] })
		got, err := Marshal(Generate(nodes, Options{}))
		require.NoError(t, err)
		assert.Equal(t, string(base), string(got))
	}
}

func TestGenerate_CustomLinkAndCollapsed(t *testing.T) {
	nodes := tu.Nodes(tu.Function("a").Category("X"))
	tree := Generate(nodes, Options{
		Collapsed: true,
		Link:      func(n *docmodel.Node) string { return "/custom#" + n.Name },
	})
	require.Len(t, tree, 1)
	require.NotNil(t, tree[0].Collapsed)
	assert.True(t, *tree[0].Collapsed)
	assert.Equal(t, "/custom#a", tree[0].Items[0].Link)
}

func TestDefaultLink(t *testing.T) {
	n := &docmodel.Node{Name: "Café"}
	assert.Equal(t, "/cafe", DefaultLink("")(n))
	assert.Equal(t, "/docs/cafe", DefaultLink("/docs")(n))
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	data, err = Marshal([]*Item{{Text: "G", Items: []*Item{{Text: "<f>", Link: "/f"}}}})
	require.NoError(t, err)
	want := "[\n  {\n    \"text\": \"G\",\n    \"items\": [\n      {\n        \"text\": \"<f>\",\n        \"link\": \"/f\"\n      }\n    ]\n  }\n]\n"
	assert.Equal(t, want, string(data))
}

func TestWalk(t *testing.T) {
	var links []string
	Walk(Generate(fixtureNodes(), Options{}), func(it *Item) { links = append(links, it.Link) })
	assert.Len(t, links, 8)
	assert.Equal(t, "/point", links[0])
}
