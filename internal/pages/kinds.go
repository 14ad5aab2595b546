package pages

import (
	"strings"

	"git.home.luguber.info/inful/vitedoc/internal/comment"
	"git.home.luguber.info/inful/vitedoc/internal/docmodel"
)

var memberHeader = []string{"Name", "Type", "Optional", "Description"}

func renderFunction(w *writer, n *docmodel.Node) {
	sigs := signatures(n)
	for i, s := range sigs {
		w.heading(2, numbered("Signature", i, len(sigs)))
		w.code("ts", "function "+signatureText(n.Name, s))
		renderParameters(w, s)
		renderReturns(w, s)
	}
}

func renderClass(w *writer, n *docmodel.Node) {
	for _, ctor := range n.ChildrenOfKind(docmodel.KindConstructor) {
		sigs := signatures(ctor)
		for i, s := range sigs {
			w.heading(2, numbered("Constructor", i, len(sigs)))
			w.code("ts", "new "+n.Name+typeParameters(s.TypeParameters)+"("+docmodel.FormatParameters(s.Parameters)+")")
			renderParameters(w, s)
		}
	}
	renderProperties(w, n.ChildrenOfKind(docmodel.KindProperty, docmodel.KindAccessor))
	renderMethods(w, n.ChildrenOfKind(docmodel.KindMethod))
}

func renderInterface(w *writer, n *docmodel.Node) {
	renderProperties(w, n.ChildrenOfKind(docmodel.KindProperty, docmodel.KindAccessor))
	renderMethods(w, n.ChildrenOfKind(docmodel.KindMethod))
}

func renderTypeAlias(w *writer, n *docmodel.Node) {
	w.heading(2, "Type")
	w.code("ts", "type "+n.Name+" = "+n.Type.String())
	if n.Type != nil && n.Type.Type == "reflection" && n.Type.Declaration != nil {
		renderProperties(w, n.Type.Declaration.ChildrenOfKind(docmodel.KindProperty))
	}
}

func renderVariable(w *writer, n *docmodel.Node) {
	decl := "const " + n.Name + ": " + n.Type.String()
	if n.DefaultValue != "" {
		decl += " = " + n.DefaultValue
	}
	w.heading(2, "Type")
	w.code("ts", decl)
}

func renderEnum(w *writer, n *docmodel.Node) {
	members := n.ChildrenOfKind(docmodel.KindEnumMember)
	if len(members) == 0 {
		return
	}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		value := m.DefaultValue
		if value == "" && m.Type != nil {
			value = m.Type.String()
		}
		rows = append(rows, []string{inlineCode(m.Name), inlineCode(value), comment.FullDescription(m)})
	}
	w.heading(2, "Members")
	w.table([]string{"Name", "Value", "Description"}, rows)
}

func renderParameters(w *writer, s *docmodel.Signature) {
	if len(s.Parameters) == 0 {
		return
	}
	rows := make([][]string, 0, len(s.Parameters))
	for _, p := range s.Parameters {
		if p == nil {
			continue
		}
		typ := "any"
		if p.Type != nil {
			typ = p.Type.String()
		}
		desc := p.Comment.SummaryText()
		if p.DefaultValue != "" {
			desc = strings.TrimSpace(desc + " Default: " + inlineCode(p.DefaultValue))
		}
		name := p.Name
		if p.Flags.IsRest {
			name = "..." + name
		}
		rows = append(rows, []string{
			inlineCode(name),
			inlineCode(typ),
			yesNo(p.Flags.IsOptional || p.DefaultValue != ""),
			desc,
		})
	}
	w.heading(2, "Parameters")
	w.table(memberHeader, rows)
}

func renderReturns(w *writer, s *docmodel.Signature) {
	w.heading(2, "Returns")
	line := inlineCode(s.Type.String())
	if t, ok := s.Comment.FindFirst("@returns"); ok {
		if desc := strings.TrimSpace(t.Text()); desc != "" {
			line += " - " + desc
		}
	}
	w.block(line)
}

func renderProperties(w *writer, props []*docmodel.Node) {
	if len(props) == 0 {
		return
	}
	rows := make([][]string, 0, len(props))
	for _, p := range props {
		name := p.Name
		if p.Flags.IsReadonly {
			name = "readonly " + name
		}
		if p.Flags.IsStatic {
			name = "static " + name
		}
		rows = append(rows, []string{
			inlineCode(name),
			inlineCode(propertyType(p).String()),
			yesNo(p.Flags.IsOptional),
			p.Comment.SummaryText(),
		})
	}
	w.heading(2, "Properties")
	w.table(memberHeader, rows)
}

// propertyType resolves accessor types through their get signature.
func propertyType(p *docmodel.Node) *docmodel.Type {
	if p.Type != nil || len(p.Signatures) == 0 || p.Signatures[0] == nil {
		return p.Type
	}
	return p.Signatures[0].Type
}

func renderMethods(w *writer, methods []*docmodel.Node) {
	if len(methods) == 0 {
		return
	}
	w.heading(2, "Methods")
	for _, m := range methods {
		w.heading(3, m.Name)
		var lines []string
		for _, s := range signatures(m) {
			lines = append(lines, signatureText(m.Name, s))
		}
		if len(lines) > 0 {
			w.code("ts", strings.Join(lines, "\n"))
		}
		w.block(comment.FullDescription(m))
	}
}

func signatures(n *docmodel.Node) []*docmodel.Signature {
	out := make([]*docmodel.Signature, 0, len(n.Signatures))
	for _, s := range n.Signatures {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func signatureText(name string, s *docmodel.Signature) string {
	return name + typeParameters(s.TypeParameters) + "(" + docmodel.FormatParameters(s.Parameters) + "): " + s.Type.String()
}

func typeParameters(params []*docmodel.TypeParameter) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p == nil {
			continue
		}
		s := p.Name
		if p.Constraint != nil {
			s += " extends " + p.Constraint.String()
		}
		if p.Default != nil {
			s += " = " + p.Default.String()
		}
		parts = append(parts, s)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
