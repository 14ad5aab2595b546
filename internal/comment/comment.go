// Package comment extracts semantic metadata (module, category, descriptions,
// examples) from the annotation trees of documentation nodes.
//
// Every lookup searches the node's own comment first and then each call
// signature's comment in declaration order. Missing annotations are normal:
// nothing here returns an error or panics on absent data.
package comment

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/vitedoc/internal/docmodel"
)

const (
	// DefaultModuleTag is the tag Module searches when none is given.
	DefaultModuleTag = "@memberof"
	// RawTag returns its content unmodified from Module.
	RawTag = "@func"
	// GlobalModule names the group of nodes without a module annotation.
	GlobalModule = "Global"

	functionTag    = "function"
	fullWidthStop  = "。"
	categoryTag    = "@category"
	moduleTag      = "@module"
	exampleTag     = "@example"
	deprecatedTag  = "@deprecated"
	sinceTag       = "@since"
	moduleSegments = "/"
)

var modulePattern = regexp.MustCompile(`module:(\S+)`)

// comments returns the node comment followed by every signature comment.
// Absent comments are returned as nil entries and are safe to query.
func comments(n *docmodel.Node) []*docmodel.Comment {
	if n == nil {
		return nil
	}
	out := make([]*docmodel.Comment, 0, 1+len(n.Signatures))
	out = append(out, n.Comment)
	for _, s := range n.Signatures {
		if s != nil {
			out = append(out, s.Comment)
		}
	}
	return out
}

func findFirst(n *docmodel.Node, tag string) (docmodel.Tag, bool) {
	for _, c := range comments(n) {
		if t, ok := c.FindFirst(tag); ok {
			return t, true
		}
	}
	return docmodel.Tag{}, false
}

// Module returns the module path declared by tag (DefaultModuleTag when empty).
// For RawTag the tag text is returned as is; otherwise the value of a
// "module:<path>" reference is extracted, falling back to the trimmed text.
func Module(n *docmodel.Node, tag string) (string, bool) {
	if tag == "" {
		tag = DefaultModuleTag
	}
	t, ok := findFirst(n, tag)
	if !ok {
		return "", false
	}
	text := t.Text()
	if tag == RawTag {
		return text, true
	}
	if m := modulePattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return strings.TrimSpace(text), true
}

// Category returns the text of the first @category tag.
func Category(n *docmodel.Node) (string, bool) {
	return tagText(n, categoryTag)
}

// ModuleTag returns the text of the first @module tag.
func ModuleTag(n *docmodel.Node) (string, bool) {
	return tagText(n, moduleTag)
}

// Since returns the version of the first @since tag.
func Since(n *docmodel.Node) (string, bool) {
	return tagText(n, sinceTag)
}

func tagText(n *docmodel.Node, tag string) (string, bool) {
	t, ok := findFirst(n, tag)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(t.Text()), true
}

// IsDeprecated reports a @deprecated block or modifier tag anywhere on the node.
func IsDeprecated(n *docmodel.Node) bool {
	for _, c := range comments(n) {
		if c.HasModifier(deprecatedTag) {
			return true
		}
		if _, ok := c.FindFirst(deprecatedTag); ok {
			return true
		}
	}
	return false
}

// DeprecationNote returns the text of the first @deprecated block tag.
func DeprecationNote(n *docmodel.Node) string {
	t, _ := tagText(n, deprecatedTag)
	return t
}

func isFunctionTag(tag string) bool {
	return strings.TrimPrefix(tag, "@") == functionTag
}

func cleanFunctionText(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), fullWidthStop)
}

// FunctionDescription returns the one-line description used for sidebar
// labels: a "function" tag on the node, else per signature its "function"
// tag or its summary.
func FunctionDescription(n *docmodel.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	if t, ok := n.Comment.FindFirstFunc(isFunctionTag); ok {
		return cleanFunctionText(t.Text()), true
	}
	for _, s := range n.Signatures {
		if s == nil || s.Comment == nil {
			continue
		}
		if t, ok := s.Comment.FindFirstFunc(isFunctionTag); ok {
			return cleanFunctionText(t.Text()), true
		}
		if summary := strings.TrimSpace(s.Comment.SummaryText()); summary != "" {
			return summary, true
		}
	}
	return "", false
}

// FullDescription returns the best available prose for the node. It never
// returns an empty string: the last resort is "{name} {kind}".
func FullDescription(n *docmodel.Node) string {
	if n == nil {
		return ""
	}
	if d, ok := FunctionDescription(n); ok && d != "" {
		return d
	}
	if d := joinDescription(n.Comment); d != "" {
		return d
	}
	for _, s := range n.Signatures {
		if s == nil || s.Comment == nil {
			continue
		}
		if d := joinDescription(s.Comment); d != "" {
			return d
		}
		break
	}
	return n.Name + " " + strings.ToLower(n.Kind.String())
}

func joinDescription(c *docmodel.Comment) string {
	short := strings.TrimSpace(c.SummaryText())
	long := strings.TrimSpace(c.RemarksText())
	switch {
	case short != "" && long != "":
		return short + "\n\n" + long
	case short != "":
		return short
	default:
		return long
	}
}

// ModuleKey is the first path segment of the node's module, or "" when the
// node declares none.
func ModuleKey(n *docmodel.Node) string {
	m, ok := Module(n, "")
	if !ok {
		return ""
	}
	key, _, _ := strings.Cut(m, moduleSegments)
	return strings.TrimSpace(key)
}

// ModuleName is ModuleKey with GlobalModule for nodes without a module.
func ModuleName(n *docmodel.Node) string {
	if key := ModuleKey(n); key != "" {
		return key
	}
	return GlobalModule
}

// Examples returns every @example text, node first then signatures.
func Examples(n *docmodel.Node) []string {
	var out []string
	for _, c := range comments(n) {
		for _, t := range c.FindAll(exampleTag) {
			if text := strings.TrimSpace(t.Text()); text != "" {
				out = append(out, text)
			}
		}
	}
	return out
}
