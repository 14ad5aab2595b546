package markdown

// LinkKind classifies a link-like construct found in a document.
type LinkKind string

const (
	LinkKindInline LinkKind = "inline"
	LinkKindImage  LinkKind = "image"
	LinkKindAuto   LinkKind = "auto"
)

// Link is one outgoing reference found in a document body.
type Link struct {
	Kind        LinkKind
	Destination string
}

// Heading is an ATX or setext heading.
type Heading struct {
	Level int
	Text  string
}

// Document is the analysis result of a generated Markdown body.
type Document struct {
	Headings []Heading
	// Anchors are explicit `<a id="...">` targets in declaration order.
	Anchors []string
	Links   []Link
}

// HasAnchor reports whether id is an explicit anchor of the document.
func (d *Document) HasAnchor(id string) bool {
	for _, a := range d.Anchors {
		if a == id {
			return true
		}
	}
	return false
}
