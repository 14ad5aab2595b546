package verify

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/vitedoc/internal/foundation/errors"
	"git.home.luguber.info/inful/vitedoc/internal/storage"
	tu "git.home.luguber.info/inful/vitedoc/internal/testutil/testutils"
	"git.home.luguber.info/inful/vitedoc/internal/vitepress"
)

func renderSample(t *testing.T, baseURL string) *storage.MockStore {
	t.Helper()
	store := storage.NewMockStore("docs/api")
	project := tu.Project("p",
		tu.Function("formatDate").Summary("Formats a date").Module("date"),
		tu.Function("parseDate").Module("date"),
		tu.Class("Point").Module("geo"),
		tu.Function("Foo").Module("a"),
		tu.Function("foo").Module("b"),
	)
	_, err := vitepress.New(vitepress.Options{BaseURL: baseURL}, store).Render(context.Background(), project)
	require.NoError(t, err)
	return store
}

func TestRun_RenderedOutputIsClean(t *testing.T) {
	for _, base := range []string{"/", "/api/"} {
		store := renderSample(t, base)
		res, err := Run(context.Background(), store, Options{BaseURL: base})
		require.NoError(t, err)
		assert.True(t, res.OK(), "%v", res.Problems)
		assert.NoError(t, res.Err())
		assert.Equal(t, 4, res.Documents)
		assert.Positive(t, res.Links)
	}
}

func TestRun_MissingDocument(t *testing.T) {
	store := renderSample(t, "/")
	require.NoError(t, store.Remove(context.Background(), "point.md"))

	res, err := Run(context.Background(), store, Options{})
	require.NoError(t, err)
	require.False(t, res.OK())
	for _, p := range res.Problems {
		assert.Equal(t, ProblemMissingDocument, p.Kind)
		assert.Equal(t, "/point", p.Link)
	}
	sources := map[string]bool{}
	for _, p := range res.Problems {
		sources[p.Source] = true
	}
	assert.True(t, sources["index.md"])
	assert.True(t, sources["../config/sidebar.json"])

	err = res.Err()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryVerify))
}

func TestRun_MissingAnchor(t *testing.T) {
	store := renderSample(t, "/")
	doc, ok := store.Get("formatdate.md")
	require.True(t, ok)
	require.NoError(t, store.Write(context.Background(), "formatdate.md",
		[]byte(strings.Replace(doc, `<a id="parsedate"></a>`, "", 1))))

	res, err := Run(context.Background(), store, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, res.Problems)
	for _, p := range res.Problems {
		assert.Equal(t, ProblemMissingAnchor, p.Kind)
		assert.Equal(t, "/formatdate#parsedate", p.Link)
	}
}

func TestRun_FrontMatterAndBase(t *testing.T) {
	store := storage.NewMockStore("docs/api")
	store.Seed("index.md", []byte("# Index\n\n- [x](/other/x)\n"))
	store.Seed("broken.md", []byte("---\ntitle: [unclosed\n---\n\nbody\n"))
	store.Seed("../config/sidebar.json", []byte(`[{"text":"G","items":[{"text":"x","link":"/other/x"}]}]`))

	res, err := Run(context.Background(), store, Options{BaseURL: "/api"})
	require.NoError(t, err)

	kinds := map[ProblemKind]int{}
	for _, p := range res.Problems {
		kinds[p.Kind]++
	}
	assert.Equal(t, 2, kinds[ProblemFrontMatter], "index without title and unparsable front matter")
	assert.Equal(t, 1, kinds[ProblemOutsideBase], "index links outside the base are not checked")
}

func TestRun_SidebarErrors(t *testing.T) {
	store := storage.NewMockStore("docs/api")
	store.Seed("index.md", []byte("---\ntitle: x\n---\n"))

	_, err := Run(context.Background(), store, Options{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))

	store.Seed("../config/sidebar.json", []byte("{"))
	_, err = Run(context.Background(), store, Options{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryVerify))
}
