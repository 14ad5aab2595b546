// Package docmodel is the read-only view of a TypeDoc reflection graph that
// vitedoc renders. It is decoded from `typedoc --json` output and never mutated.
package docmodel

// Flags carries TypeDoc reflection flags relevant for rendering.
type Flags struct {
	IsOptional  bool `json:"isOptional,omitempty"`
	IsStatic    bool `json:"isStatic,omitempty"`
	IsReadonly  bool `json:"isReadonly,omitempty"`
	IsPrivate   bool `json:"isPrivate,omitempty"`
	IsProtected bool `json:"isProtected,omitempty"`
	IsAbstract  bool `json:"isAbstract,omitempty"`
	IsRest      bool `json:"isRest,omitempty"`
}

// Node is one documented symbol (function, class, interface, type alias,
// variable, …) or one of its members.
type Node struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Kind         Kind         `json:"kind"`
	Flags        Flags        `json:"flags"`
	Comment      *Comment     `json:"comment,omitempty"`
	Children     []*Node      `json:"children,omitempty"`
	Signatures   []*Signature `json:"signatures,omitempty"`
	Type         *Type        `json:"type,omitempty"`
	DefaultValue string       `json:"defaultValue,omitempty"`
}

// Signature is a call, construct or index signature of a Node.
type Signature struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	Kind           Kind             `json:"kind"`
	Comment        *Comment         `json:"comment,omitempty"`
	Parameters     []*Parameter     `json:"parameters,omitempty"`
	TypeParameters []*TypeParameter `json:"typeParameters,omitempty"`
	Type           *Type            `json:"type,omitempty"`
}

// Parameter is a single signature parameter.
type Parameter struct {
	Name         string   `json:"name"`
	Flags        Flags    `json:"flags"`
	Comment      *Comment `json:"comment,omitempty"`
	Type         *Type    `json:"type,omitempty"`
	DefaultValue string   `json:"defaultValue,omitempty"`
}

// TypeParameter is a generic parameter with optional constraint and default.
type TypeParameter struct {
	Name       string `json:"name"`
	Constraint *Type  `json:"type,omitempty"`
	Default    *Type  `json:"default,omitempty"`
}

// SignatureComments returns the comments of all signatures in declaration order,
// skipping signatures without one.
func (n *Node) SignatureComments() []*Comment {
	if n == nil {
		return nil
	}
	var out []*Comment
	for _, s := range n.Signatures {
		if s != nil && s.Comment != nil {
			out = append(out, s.Comment)
		}
	}
	return out
}

// ChildrenOfKind returns the direct children with the given kind, in order.
func (n *Node) ChildrenOfKind(kinds ...Kind) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		for _, k := range kinds {
			if c.Kind == k {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
