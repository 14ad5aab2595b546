// Package markdown analyzes generated Markdown documents with goldmark.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// Analyze parses a Markdown body (frontmatter already removed) and collects
// headings, explicit anchors and links.
func Analyze(body []byte) *Document {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	doc := &Document{}
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.Heading:
			doc.Headings = append(doc.Headings, Heading{Level: node.Level, Text: plainText(node, body)})
		case *gmast.HTMLBlock:
			doc.Anchors = append(doc.Anchors, anchorsIn(linesOf(node, body))...)
		case *gmast.RawHTML:
			var buf bytes.Buffer
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				buf.Write(seg.Value(body))
			}
			doc.Anchors = append(doc.Anchors, anchorsIn(buf.Bytes())...)
		case *gmast.AutoLink:
			doc.Links = append(doc.Links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			doc.Links = append(doc.Links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			doc.Links = append(doc.Links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})
	return doc
}

func linesOf(n gmast.Node, src []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.Bytes()
}

// anchorsIn returns the id (or name) of every <a> start tag in raw HTML.
func anchorsIn(raw []byte) []string {
	var out []string
	z := html.NewTokenizer(bytes.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return out
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "a" {
				continue
			}
			if id := anchorAttr(tok); id != "" {
				out = append(out, id)
			}
		}
	}
}

func anchorAttr(tok html.Token) string {
	name := ""
	for _, attr := range tok.Attr {
		switch attr.Key {
		case "id":
			return attr.Val
		case "name":
			name = attr.Val
		}
	}
	return name
}

// plainText concatenates the text segments below n.
func plainText(n gmast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(src))
		case *gmast.String:
			buf.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return buf.String()
}
