package pages

import (
	"errors"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/vitedoc/internal/comment"
	"git.home.luguber.info/inful/vitedoc/internal/docmodel"
	"git.home.luguber.info/inful/vitedoc/internal/frontmatter"
	"git.home.luguber.info/inful/vitedoc/internal/slug"
)

// ErrEmptyGroup is returned by Module for a group without nodes.
var ErrEmptyGroup = errors.New("module group has no nodes")

const sectionBreak = "---"

// Meta carries document-level metadata. Empty fields are derived from the
// first node of the group.
type Meta struct {
	Title       string
	Description string
}

// Module renders one module group document. Nodes are rendered in the given
// order; callers sort them by kind beforehand.
func Module(nodes []*docmodel.Node, meta Meta) (string, error) {
	nodes = compact(nodes)
	if len(nodes) == 0 {
		return "", ErrEmptyGroup
	}
	first := nodes[0]
	if meta.Title == "" {
		meta.Title = first.Name
	}
	if meta.Description == "" {
		meta.Description = firstParagraph(comment.FullDescription(first))
	}

	w := &writer{}
	for i, n := range nodes {
		if i > 0 {
			w.block(sectionBreak)
		}
		renderNode(w, n)
	}

	return frontmatter.Build(map[string]any{
		"title":       meta.Title,
		"description": meta.Description,
	}, w.String())
}

func compact(nodes []*docmodel.Node) []*docmodel.Node {
	out := make([]*docmodel.Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func firstParagraph(s string) string {
	p, _, _ := strings.Cut(strings.TrimSpace(s), "\n\n")
	return strings.Join(strings.Fields(p), " ")
}

func renderNode(w *writer, n *docmodel.Node) {
	name := n.Name
	if name == "" {
		name = slug.Fallback
	}
	w.block(`<a id="` + slug.Anchor(n.Name) + `"></a>`)
	w.heading(1, name)
	renderAnnotations(w, n)

	badges := []string{badge("info", n.Kind.String())}
	if comment.IsDeprecated(n) {
		badges = append(badges, badge("warning", "deprecated"))
	}
	w.block(strings.Join(badges, " "))
	if note := comment.DeprecationNote(n); note != "" {
		w.block("::: warning Deprecated", note, ":::")
	}

	w.heading(2, "Overview")
	w.block(comment.FullDescription(n))

	switch n.Kind {
	case docmodel.KindFunction, docmodel.KindComponent:
		renderFunction(w, n)
	case docmodel.KindClass:
		renderClass(w, n)
	case docmodel.KindInterface:
		renderInterface(w, n)
	case docmodel.KindTypeAlias:
		renderTypeAlias(w, n)
	case docmodel.KindVariable:
		renderVariable(w, n)
	case docmodel.KindEnum:
		renderEnum(w, n)
	}

	renderExamples(w, comment.Examples(n))
}

func badge(kind, text string) string {
	return `<Badge type="` + kind + `" text="` + text + `" />`
}

func renderAnnotations(w *writer, n *docmodel.Node) {
	var lines []string
	if m, ok := comment.Module(n, ""); ok && m != "" {
		lines = append(lines, "**Module:** "+inlineCode(m))
	}
	if c, ok := comment.Category(n); ok && c != "" {
		lines = append(lines, "**Category:** "+c)
	}
	if t, ok := comment.ModuleTag(n); ok && t != "" {
		lines = append(lines, "**Tag:** "+inlineCode(t))
	}
	if v, ok := comment.Since(n); ok && v != "" {
		lines = append(lines, "**Since:** "+v)
	}
	if len(lines) == 0 {
		return
	}
	// Hard line breaks keep the annotations in one paragraph.
	for i := 0; i < len(lines)-1; i++ {
		lines[i] += "  "
	}
	w.block(lines...)
}

func renderExamples(w *writer, examples []string) {
	if len(examples) == 0 {
		return
	}
	w.heading(2, "Examples")
	for i, ex := range examples {
		w.heading(3, "Example "+strconv.Itoa(i+1))
		if strings.Contains(ex, "```") {
			w.block(strings.TrimRight(ex, "\n"))
		} else {
			w.code("ts", ex)
		}
	}
}
