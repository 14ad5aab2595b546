package testutils

import (
	"sync/atomic"

	"git.home.luguber.info/inful/vitedoc/internal/docmodel"
)

// NodeBuilder provides a fluent interface for creating documentation nodes in tests.
type NodeBuilder struct {
	node *docmodel.Node
	// sig is the signature comment target for callable kinds.
	sig *docmodel.Signature
}

var nextID atomic.Int64

func newNode(name string, kind docmodel.Kind) *NodeBuilder {
	id := int(nextID.Add(1))
	return &NodeBuilder{node: &docmodel.Node{ID: id, Name: name, Kind: kind}}
}

// Function starts a function node with one call signature returning void.
func Function(name string) *NodeBuilder {
	b := newNode(name, docmodel.KindFunction)
	b.sig = &docmodel.Signature{
		Name: name,
		Kind: docmodel.KindCallSignature,
		Type: Intrinsic("void"),
	}
	b.node.Signatures = []*docmodel.Signature{b.sig}
	return b
}

// Class starts a class node.
func Class(name string) *NodeBuilder { return newNode(name, docmodel.KindClass) }

// Interface starts an interface node.
func Interface(name string) *NodeBuilder { return newNode(name, docmodel.KindInterface) }

// TypeAlias starts a type alias node of the given type.
func TypeAlias(name string, t *docmodel.Type) *NodeBuilder {
	b := newNode(name, docmodel.KindTypeAlias)
	b.node.Type = t
	return b
}

// Variable starts a variable node of the given type.
func Variable(name string, t *docmodel.Type) *NodeBuilder {
	b := newNode(name, docmodel.KindVariable)
	b.node.Type = t
	return b
}

// Property starts a property member node.
func Property(name string, t *docmodel.Type) *NodeBuilder {
	b := newNode(name, docmodel.KindProperty)
	b.node.Type = t
	return b
}

// Method starts a method member node with one call signature.
func Method(name string) *NodeBuilder {
	b := Function(name)
	b.node.Kind = docmodel.KindMethod
	return b
}

// Node starts a node of an arbitrary kind.
func Node(name string, kind docmodel.Kind) *NodeBuilder { return newNode(name, kind) }

// Summary sets the short description on the node (or its signature).
func (b *NodeBuilder) Summary(text string) *NodeBuilder {
	c := b.comment()
	c.Summary = []docmodel.Part{{Kind: "text", Text: text}}
	return b
}

// Remarks sets the long description.
func (b *NodeBuilder) Remarks(text string) *NodeBuilder {
	return b.Tag("@remarks", text)
}

// Tag appends a block tag to the node (or its signature).
func (b *NodeBuilder) Tag(tag, content string) *NodeBuilder {
	c := b.comment()
	c.BlockTags = append(c.BlockTags, docmodel.Tag{
		Tag:     tag,
		Content: []docmodel.Part{{Kind: "text", Text: content}},
	})
	return b
}

// Module sets the @memberof module:path tag.
func (b *NodeBuilder) Module(path string) *NodeBuilder {
	return b.Tag("@memberof", "module:"+path)
}

// Category sets the @category tag.
func (b *NodeBuilder) Category(name string) *NodeBuilder {
	return b.Tag("@category", name)
}

// Example appends an @example tag containing code.
func (b *NodeBuilder) Example(code string) *NodeBuilder {
	c := b.comment()
	c.BlockTags = append(c.BlockTags, docmodel.Tag{
		Tag:     "@example",
		Content: []docmodel.Part{{Kind: "code", Text: code}},
	})
	return b
}

// Modifier appends a modifier tag such as @deprecated.
func (b *NodeBuilder) Modifier(tag string) *NodeBuilder {
	c := b.comment()
	c.ModifierTags = append(c.ModifierTags, tag)
	return b
}

// NodeComment forces subsequent comment calls onto the node rather than its signature.
func (b *NodeBuilder) NodeComment() *NodeBuilder {
	b.sig = nil
	return b
}

// Param appends a signature parameter.
func (b *NodeBuilder) Param(name string, t *docmodel.Type) *NodeBuilder {
	if b.sig != nil {
		b.sig.Parameters = append(b.sig.Parameters, &docmodel.Parameter{Name: name, Type: t})
	}
	return b
}

// Returns sets the signature return type.
func (b *NodeBuilder) Returns(t *docmodel.Type) *NodeBuilder {
	if b.sig != nil {
		b.sig.Type = t
	}
	return b
}

// Overload appends another call signature; comment calls now target it.
func (b *NodeBuilder) Overload() *NodeBuilder {
	b.sig = &docmodel.Signature{Name: b.node.Name, Kind: docmodel.KindCallSignature, Type: Intrinsic("void")}
	b.node.Signatures = append(b.node.Signatures, b.sig)
	return b
}

// Child appends member nodes.
func (b *NodeBuilder) Child(children ...*NodeBuilder) *NodeBuilder {
	for _, c := range children {
		b.node.Children = append(b.node.Children, c.Build())
	}
	return b
}

// Optional marks the node optional.
func (b *NodeBuilder) Optional() *NodeBuilder {
	b.node.Flags.IsOptional = true
	return b
}

// Build returns the constructed node.
func (b *NodeBuilder) Build() *docmodel.Node {
	return b.node
}

func (b *NodeBuilder) comment() *docmodel.Comment {
	if b.sig != nil {
		if b.sig.Comment == nil {
			b.sig.Comment = &docmodel.Comment{}
		}
		return b.sig.Comment
	}
	if b.node.Comment == nil {
		b.node.Comment = &docmodel.Comment{}
	}
	return b.node.Comment
}

// Nodes builds every builder in order.
func Nodes(builders ...*NodeBuilder) []*docmodel.Node {
	out := make([]*docmodel.Node, len(builders))
	for i, b := range builders {
		out[i] = b.Build()
	}
	return out
}

// Project wraps nodes in a project.
func Project(name string, builders ...*NodeBuilder) *docmodel.Project {
	return &docmodel.Project{Name: name, Kind: docmodel.KindProject, Children: Nodes(builders...)}
}

// Intrinsic returns an intrinsic type such as string or void.
func Intrinsic(name string) *docmodel.Type {
	return &docmodel.Type{Type: "intrinsic", Name: name}
}

// Ref returns a reference type with optional type arguments.
func Ref(name string, args ...*docmodel.Type) *docmodel.Type {
	return &docmodel.Type{Type: "reference", Name: name, TypeArguments: args}
}
