package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_CollectsHeadingsAnchorsAndLinks(t *testing.T) {
	body := []byte(`<a id="formatdate"></a>

# formatDate

See [parseDate](/api/date#parsedate) and ![logo](/logo.png) or <https://example.com>.

---

<a id="parsedate"></a>

# parseDate

## Parameters
`)
	doc := Analyze(body)

	require.Len(t, doc.Headings, 3)
	assert.Equal(t, Heading{Level: 1, Text: "formatDate"}, doc.Headings[0])
	assert.Equal(t, Heading{Level: 2, Text: "Parameters"}, doc.Headings[2])

	assert.Equal(t, []string{"formatdate", "parsedate"}, doc.Anchors)
	assert.True(t, doc.HasAnchor("parsedate"))
	assert.False(t, doc.HasAnchor("missing"))

	require.Len(t, doc.Links, 3)
	assert.Equal(t, Link{Kind: LinkKindInline, Destination: "/api/date#parsedate"}, doc.Links[0])
	assert.Equal(t, LinkKindImage, doc.Links[1].Kind)
	assert.Equal(t, Link{Kind: LinkKindAuto, Destination: "https://example.com"}, doc.Links[2])
}

func TestAnalyze_Empty(t *testing.T) {
	doc := Analyze(nil)
	assert.Empty(t, doc.Headings)
	assert.Empty(t, doc.Anchors)
	assert.Empty(t, doc.Links)
}
