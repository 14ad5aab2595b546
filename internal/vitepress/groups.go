package vitepress

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/vitedoc/internal/comment"
	"git.home.luguber.info/inful/vitedoc/internal/docmodel"
	"git.home.luguber.info/inful/vitedoc/internal/slug"
	"git.home.luguber.info/inful/vitedoc/internal/util/sets"
)

// Group is the set of nodes sharing a module key. Nodes are sorted by kind.
type Group struct {
	// Key is the first module path segment; empty for nodes without a module.
	Key   string
	Nodes []*docmodel.Node
	// File is the document name derived from the first sorted node.
	File string
}

// Name is the display name of the group.
func (g *Group) Name() string {
	if g.Key == "" {
		return comment.GlobalModule
	}
	return g.Key
}

// Document is one output file. Several groups share a document when their
// first nodes slug to the same name; later groups are appended.
type Document struct {
	File   string
	Groups []*Group
}

// Nodes returns the nodes of all groups in document order.
func (d *Document) Nodes() []*docmodel.Node {
	var out []*docmodel.Node
	for _, g := range d.Groups {
		out = append(out, g.Nodes...)
	}
	return out
}

// OutputFileSet holds the document names claimed by the current run.
type OutputFileSet struct {
	files sets.Set[string]
}

// NewOutputFileSet returns an empty set.
func NewOutputFileSet() *OutputFileSet {
	return &OutputFileSet{files: sets.New[string]()}
}

// Claim records name as produced by this run.
func (s *OutputFileSet) Claim(name string) { s.files.Add(name) }

// Has reports whether name was claimed.
func (s *OutputFileSet) Has(name string) bool { return s.files.Has(name) }

// Len returns the number of claimed names.
func (s *OutputFileSet) Len() int { return len(s.files) }

// Names returns the claimed names sorted.
func (s *OutputFileSet) Names() []string { return sets.Sorted(s.files) }

// GroupNodes partitions nodes by module key in first-occurrence order.
func GroupNodes(nodes []*docmodel.Node) []*Group {
	var groups []*Group
	byKey := make(map[string]*Group)
	for _, n := range nodes {
		if n == nil {
			continue
		}
		key := comment.ModuleKey(n)
		g, ok := byKey[key]
		if !ok {
			g = &Group{Key: key}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.Nodes = append(g.Nodes, n)
	}
	for _, g := range groups {
		SortByKind(g.Nodes)
		g.File = groupFile(g.Nodes[0].Name)
	}
	return groups
}

// groupFile names the document of a group led by name. IndexFile belongs to
// the index document, so a group slugging to it gets a numbered name.
func groupFile(name string) string {
	base := slug.Generate(name)
	if base+slug.Extension == IndexFile {
		base += "-1"
	}
	return base + slug.Extension
}

// SortByKind orders nodes by ascending kind value, then by name, so the
// result does not depend on input order.
func SortByKind(nodes []*docmodel.Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Kind != nodes[j].Kind {
			return nodes[i].Kind < nodes[j].Kind
		}
		return nodes[i].Name < nodes[j].Name
	})
}

// Documents merges groups that resolve to the same file, keeping the order
// of first occurrence.
func Documents(groups []*Group) []*Document {
	var docs []*Document
	byFile := make(map[string]*Document)
	for _, g := range groups {
		d, ok := byFile[g.File]
		if !ok {
			d = &Document{File: g.File}
			byFile[g.File] = d
			docs = append(docs, d)
		}
		d.Groups = append(d.Groups, g)
	}
	return docs
}

// linkTable maps every node to its link: the document URL plus an anchor
// for every node except the first one of the document.
type linkTable map[*docmodel.Node]string

func newLinkTable(baseURL string, docs []*Document) linkTable {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	links := make(linkTable)
	for _, d := range docs {
		page := baseURL + strings.TrimSuffix(d.File, slug.Extension)
		for i, n := range d.Nodes() {
			if i == 0 {
				links[n] = page
				continue
			}
			links[n] = page + "#" + slug.Anchor(n.Name)
		}
	}
	return links
}

func (lt linkTable) resolve(baseURL string) func(n *docmodel.Node) string {
	return func(n *docmodel.Node) string {
		if l, ok := lt[n]; ok {
			return l
		}
		return strings.TrimSuffix(baseURL, "/") + "/" + slug.Generate(n.Name)
	}
}
