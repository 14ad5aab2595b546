package docmodel

import "strings"

// Part is one fragment of comment text. Kind is "text", "code" or
// "inline-tag" ({@link Foo} and friends, whose Text is the link label).
type Part struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	Tag  string `json:"tag,omitempty"`
}

// Tag is a block annotation such as @category, @example or @memberof.
// Tag names keep their leading '@' as emitted by TypeDoc.
type Tag struct {
	Tag     string `json:"tag"`
	Name    string `json:"name,omitempty"`
	Content []Part `json:"content"`
}

// Text returns the concatenated text content of the tag.
func (t Tag) Text() string { return partsText(t.Content) }

// Comment is the annotation tree attached to a Node or Signature.
// All methods are safe on a nil receiver, which behaves as an empty comment.
type Comment struct {
	Summary      []Part   `json:"summary,omitempty"`
	BlockTags    []Tag    `json:"blockTags,omitempty"`
	ModifierTags []string `json:"modifierTags,omitempty"`
}

// FindFirst returns the first block tag named tag.
func (c *Comment) FindFirst(tag string) (Tag, bool) {
	if c == nil {
		return Tag{}, false
	}
	for _, t := range c.BlockTags {
		if t.Tag == tag {
			return t, true
		}
	}
	return Tag{}, false
}

// FindFirstFunc returns the first block tag whose name satisfies match.
func (c *Comment) FindFirstFunc(match func(tag string) bool) (Tag, bool) {
	if c == nil {
		return Tag{}, false
	}
	for _, t := range c.BlockTags {
		if match(t.Tag) {
			return t, true
		}
	}
	return Tag{}, false
}

// FindAll returns every block tag named tag in declaration order.
func (c *Comment) FindAll(tag string) []Tag {
	if c == nil {
		return nil
	}
	var out []Tag
	for _, t := range c.BlockTags {
		if t.Tag == tag {
			out = append(out, t)
		}
	}
	return out
}

// HasModifier reports whether a modifier tag (e.g. @beta) is present.
func (c *Comment) HasModifier(tag string) bool {
	if c == nil {
		return false
	}
	for _, m := range c.ModifierTags {
		if m == tag {
			return true
		}
	}
	return false
}

// SummaryText is the short description.
func (c *Comment) SummaryText() string {
	if c == nil {
		return ""
	}
	return partsText(c.Summary)
}

// RemarksText is the long description, taken from the @remarks block.
func (c *Comment) RemarksText() string {
	t, ok := c.FindFirst("@remarks")
	if !ok {
		return ""
	}
	return t.Text()
}

// IsEmpty reports whether the comment carries no text and no tags.
func (c *Comment) IsEmpty() bool {
	return c == nil || (len(c.Summary) == 0 && len(c.BlockTags) == 0 && len(c.ModifierTags) == 0)
}

func partsText(parts []Part) string {
	if len(parts) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
