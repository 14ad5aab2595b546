package pages

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/vitedoc/internal/docmodel"
	tu "git.home.luguber.info/inful/vitedoc/internal/testutil/testutils"
)

func TestModule_FunctionPage(t *testing.T) {
	n := tu.Function("formatDate").
		Module("date/format").
		Category("Date").
		Summary("Formats a date.").
		Param("value", tu.Ref("Date")).
		Returns(tu.Intrinsic("string")).
		Example("formatDate(new Date())").
		Build()

	got, err := Module([]*docmodel.Node{n}, Meta{})
	require.NoError(t, err)

	want := "---\n" +
		"description: Formats a date.\n" +
		"title: formatDate\n" +
		"---\n" +
		"\n" +
		"<a id=\"formatdate\"></a>\n" +
		"\n" +
		"# formatDate\n" +
		"\n" +
		"**Module:** `date/format`  \n" +
		"**Category:** Date\n" +
		"\n" +
		"<Badge type=\"info\" text=\"Function\" />\n" +
		"\n" +
		"## Overview\n" +
		"\n" +
		"Formats a date.\n" +
		"\n" +
		"## Signature\n" +
		"\n" +
		"```ts\n" +
		"function formatDate(value: Date): string\n" +
		"```\n" +
		"\n" +
		"## Parameters\n" +
		"\n" +
		"| Name | Type | Optional | Description |\n" +
		"| --- | --- | --- | --- |\n" +
		"| `value` | `Date` | No | - |\n" +
		"\n" +
		"## Returns\n" +
		"\n" +
		"`string`\n" +
		"\n" +
		"## Examples\n" +
		"\n" +
		"### Example 1\n" +
		"\n" +
		"```ts\n" +
		"formatDate(new Date())\n" +
		"```\n"
	assert.Equal(t, want, got)
}

func TestModule_SingleExampleIsNumbered(t *testing.T) {
	n := tu.Function("f").Example("a()").Build()
	got, err := Module([]*docmodel.Node{n}, Meta{})
	require.NoError(t, err)

	assert.Contains(t, got, "### Example 1\n\n```ts\na()\n```")
	assert.NotContains(t, got, "### Example\n")
}

func TestModule_ExamplesNumberedFromOne(t *testing.T) {
	n := tu.Function("f").
		Example("a()").
		Example("```js\nb()\n```").
		Example("c()").
		Build()
	got, err := Module([]*docmodel.Node{n}, Meta{})
	require.NoError(t, err)

	assert.Contains(t, got, "### Example 1\n\n```ts\na()\n```")
	assert.Contains(t, got, "### Example 2\n\n```js\nb()\n```")
	assert.Contains(t, got, "### Example 3\n\n```ts\nc()\n```")
	assert.NotContains(t, got, "Example 4")
}

func TestModule_OverloadsAreNumbered(t *testing.T) {
	n := tu.Function("parse").Param("s", tu.Intrinsic("string")).
		Overload().Param("n", tu.Intrinsic("number")).Returns(tu.Intrinsic("number")).
		Build()
	got, err := Module([]*docmodel.Node{n}, Meta{})
	require.NoError(t, err)
	assert.Contains(t, got, "## Signature 1\n\n```ts\nfunction parse(s: string): void\n```")
	assert.Contains(t, got, "## Signature 2\n\n```ts\nfunction parse(n: number): number\n```")
}

func TestModule_ClassPage(t *testing.T) {
	ctor := tu.Node("constructor", docmodel.KindConstructor)
	ctorNode := ctor.Build()
	ctorNode.Signatures = []*docmodel.Signature{{
		Name:       "new Point",
		Kind:       docmodel.KindConstructorSignature,
		Parameters: []*docmodel.Parameter{{Name: "lat", Type: tu.Intrinsic("number")}},
	}}

	lat := tu.Property("lat", tu.Intrinsic("number")).NodeComment().Summary("Latitude | degrees")
	label := tu.Property("label", tu.Intrinsic("string")).Optional()
	dist := tu.Method("distanceTo").Param("other", tu.Ref("Point")).Returns(tu.Intrinsic("number")).Summary("Distance in km.")

	n := tu.Class("Point").NodeComment().Summary("A geographic point.").Child(ctor, lat, label, dist).Build()

	got, err := Module([]*docmodel.Node{n}, Meta{})
	require.NoError(t, err)
	assert.Contains(t, got, "## Constructor\n\n```ts\nnew Point(lat: number)\n```")
	assert.Contains(t, got, "| `lat` | `number` | No | Latitude \\| degrees |")
	assert.Contains(t, got, "| `label` | `string` | Yes | - |")
	assert.Contains(t, got, "## Methods\n\n### distanceTo\n\n```ts\ndistanceTo(other: Point): number\n```\n\nDistance in km.\n")
	assert.Contains(t, got, `<Badge type="info" text="Class" />`)
}

func TestModule_InterfaceTypeAliasVariableEnum(t *testing.T) {
	iface := tu.Interface("Options").Child(
		tu.Property("baseUrl", tu.Intrinsic("string")).Optional().NodeComment().Summary("Link prefix"),
	).Build()
	alias := tu.TypeAlias("Id", &docmodel.Type{Type: "union", Types: []*docmodel.Type{tu.Intrinsic("string"), tu.Intrinsic("number")}}).Build()
	variable := tu.Variable("VERSION", tu.Intrinsic("string")).Build()
	variable.DefaultValue = `"1.0.0"`
	enum := tu.Node("Color", docmodel.KindEnum).Child(
		tu.Node("Red", docmodel.KindEnumMember),
	).Build()
	enum.Children[0].DefaultValue = `"red"`

	got, err := Module([]*docmodel.Node{variable, enum, iface, alias}, Meta{Title: "Types"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "---\ndescription: VERSION variable\ntitle: Types\n---\n"), got)
	assert.Contains(t, got, "| `baseUrl` | `string` | Yes | Link prefix |")
	assert.Contains(t, got, "## Type\n\n```ts\ntype Id = string | number\n```")
	assert.Contains(t, got, "## Type\n\n```ts\nconst VERSION: string = \"1.0.0\"\n```")
	assert.Contains(t, got, "| `Red` | `\"red\"` | Red enummember |")
	// Closing frontmatter delimiter plus one break between each pair of nodes.
	assert.Equal(t, 4, strings.Count(got, "\n---\n\n<a id="))
}

func TestModule_DeprecatedAndSince(t *testing.T) {
	n := tu.Class("Legacy").Tag("@deprecated", "Use Modern.").Tag("@since", "0.3.0").Build()
	got, err := Module([]*docmodel.Node{n}, Meta{})
	require.NoError(t, err)
	assert.Contains(t, got, "**Since:** 0.3.0\n")
	assert.Contains(t, got, `<Badge type="info" text="Class" /> <Badge type="warning" text="deprecated" />`)
	assert.Contains(t, got, "::: warning Deprecated\nUse Modern.\n:::")
}

func TestModule_EmptyNameAndDescriptionFallbacks(t *testing.T) {
	n := &docmodel.Node{Kind: docmodel.KindVariable}
	got, err := Module([]*docmodel.Node{nil, n}, Meta{})
	require.NoError(t, err)
	assert.Contains(t, got, "<a id=\"unknown\"></a>\n\n# unknown\n")
	assert.Contains(t, got, "const : unknown")
}

func TestModule_EmptyGroup(t *testing.T) {
	_, err := Module(nil, Meta{})
	require.ErrorIs(t, err, ErrEmptyGroup)
}

func TestModule_Deterministic(t *testing.T) {
	build := func() []*docmodel.Node {
		return tu.Nodes(
			tu.Function("b").Summary("B"),
			tu.Interface("I").Child(tu.Property("x", tu.Intrinsic("number"))),
		)
	}
	a, err := Module(build(), Meta{})
	require.NoError(t, err)
	b, err := Module(build(), Meta{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestIndex(t *testing.T) {
	groups := []IndexGroup{
		{Module: "geo", Entries: []IndexEntry{
			{Name: "distance", Kind: "Function", Link: "/api/distance"},
			{Name: "bearing", Kind: "Function", Link: "/api/distance#bearing"},
		}},
		{Module: "Global", Entries: []IndexEntry{{Name: "Arr[]", Kind: "TypeAlias", Link: "/api/arr"}}},
		{Module: "empty"},
	}
	got, err := Index(groups, Meta{Title: "API Documentation", Description: "Auto-generated API documentation"})
	require.NoError(t, err)

	want := "---\n" +
		"description: Auto-generated API documentation\n" +
		"title: API Documentation\n" +
		"---\n" +
		"\n" +
		"# API Documentation\n" +
		"\n" +
		"Auto-generated API documentation\n" +
		"\n" +
		"## Global\n" +
		"\n" +
		"- [Arr\\[\\]](/api/arr) <Badge type=\"info\" text=\"TypeAlias\" />\n" +
		"\n" +
		"## geo\n" +
		"\n" +
		"- [bearing](/api/distance#bearing) <Badge type=\"info\" text=\"Function\" />\n" +
		"- [distance](/api/distance) <Badge type=\"info\" text=\"Function\" />\n"
	assert.Equal(t, want, got)

	reversed := []IndexGroup{groups[2], groups[1], groups[0]}
	again, err := Index(reversed, Meta{Title: "API Documentation", Description: "Auto-generated API documentation"})
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestInlineCode(t *testing.T) {
	assert.Equal(t, "`a`", inlineCode("a"))
	assert.Equal(t, "``a`b``", inlineCode("a`b"))
	assert.Equal(t, "`` `x` ``", inlineCode("`x`"))
}
