// Package sidebar builds the VitePress sidebar tree (category → module →
// symbol) from documentation nodes.
package sidebar

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"git.home.luguber.info/inful/vitedoc/internal/comment"
	"git.home.luguber.info/inful/vitedoc/internal/docmodel"
	"git.home.luguber.info/inful/vitedoc/internal/slug"
)

// Item is one sidebar entry. Leaves carry Link; groups carry Items.
type Item struct {
	Text      string  `json:"text"`
	Link      string  `json:"link,omitempty"`
	Collapsed *bool   `json:"collapsed,omitempty"`
	Items     []*Item `json:"items,omitempty"`
}

// LinkFunc resolves the sidebar link of a node.
type LinkFunc func(n *docmodel.Node) string

// Options controls link generation and group presentation.
type Options struct {
	// BaseURL prefixes default links. Defaults to "/".
	BaseURL string
	// Link overrides the default BaseURL + slug link.
	Link LinkFunc
	// Collapsed emits "collapsed": true on every group.
	Collapsed bool
}

// DefaultLink returns BaseURL joined with the slug of the node name.
func DefaultLink(baseURL string) LinkFunc {
	if baseURL == "" {
		baseURL = "/"
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return func(n *docmodel.Node) string {
		return baseURL + slug.Generate(n.Name)
	}
}

type leaf struct {
	name string
	kind docmodel.Kind
	item *Item
}

type category struct {
	direct    []leaf
	subgroups map[string][]leaf
}

// Visible reports whether a node gets a sidebar entry. Interfaces and type
// aliases are listed only when they carry at least one example.
func Visible(n *docmodel.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case docmodel.KindInterface, docmodel.KindTypeAlias:
		return len(comment.Examples(n)) > 0
	default:
		return true
	}
}

// Generate groups nodes by category and module tag and returns the sorted tree.
// The result does not depend on the order of nodes.
func Generate(nodes []*docmodel.Node, opts Options) []*Item {
	link := opts.Link
	if link == nil {
		link = DefaultLink(opts.BaseURL)
	}

	categories := make(map[string]*category)
	for _, n := range nodes {
		if !Visible(n) {
			continue
		}
		fallback := comment.ModuleName(n)
		cat, ok := comment.Category(n)
		if !ok {
			cat = fallback
		}
		mod, ok := comment.ModuleTag(n)
		if !ok {
			mod = fallback
		}

		text, ok := comment.FunctionDescription(n)
		if !ok || text == "" {
			text = n.Name
		}
		l := leaf{name: n.Name, kind: n.Kind, item: &Item{Text: text, Link: link(n)}}

		c := categories[cat]
		if c == nil {
			c = &category{subgroups: make(map[string][]leaf)}
			categories[cat] = c
		}
		if mod == cat {
			c.direct = append(c.direct, l)
		} else {
			c.subgroups[mod] = append(c.subgroups[mod], l)
		}
	}

	out := make([]*Item, 0, len(categories))
	for _, name := range sortedKeys(categories) {
		c := categories[name]
		group := &Item{Text: name, Collapsed: collapsed(opts.Collapsed)}
		group.Items = append(group.Items, sortLeaves(c.direct)...)
		for _, sub := range sortedKeys(c.subgroups) {
			group.Items = append(group.Items, &Item{
				Text:      sub,
				Collapsed: collapsed(opts.Collapsed),
				Items:     sortLeaves(c.subgroups[sub]),
			})
		}
		out = append(out, group)
	}
	return out
}

// Marshal serializes the tree as indented JSON with a trailing newline.
func Marshal(items []*Item) ([]byte, error) {
	if items == nil {
		items = []*Item{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Count returns the number of leaf links in the tree.
func Count(items []*Item) int {
	total := 0
	for _, it := range items {
		if it.Link != "" {
			total++
		}
		total += Count(it.Items)
	}
	return total
}

// Walk calls fn for every leaf link in display order.
func Walk(items []*Item, fn func(it *Item)) {
	for _, it := range items {
		if it.Link != "" {
			fn(it)
		}
		Walk(it.Items, fn)
	}
}

func sortLeaves(leaves []leaf) []*Item {
	sort.SliceStable(leaves, func(i, j int) bool {
		a, b := leaves[i], leaves[j]
		if a.name != b.name {
			return a.name < b.name
		}
		if a.item.Text != b.item.Text {
			return a.item.Text < b.item.Text
		}
		if a.item.Link != b.item.Link {
			return a.item.Link < b.item.Link
		}
		return a.kind < b.kind
	})
	out := make([]*Item, len(leaves))
	for i, l := range leaves {
		out[i] = l.item
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func collapsed(on bool) *bool {
	if !on {
		return nil
	}
	v := true
	return &v
}
