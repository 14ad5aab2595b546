package docmodel

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Type is TypeDoc's SomeType tagged union. Variant is selected by Type;
// only the fields of that variant are populated.
type Type struct {
	Type string `json:"type"`

	// intrinsic, reference, typeParameter, predicate, namedTupleMember
	Name string `json:"name,omitempty"`
	// reference
	TypeArguments []*Type `json:"typeArguments,omitempty"`
	// literal
	Value any `json:"value,omitempty"`
	// array, optional, rest, namedTupleMember
	ElementType *Type `json:"elementType,omitempty"`
	// union, intersection
	Types []*Type `json:"types,omitempty"`
	// tuple
	Elements []*Type `json:"elements,omitempty"`
	// reflection
	Declaration *Node `json:"declaration,omitempty"`
	// query
	QueryType *Type `json:"queryType,omitempty"`
	// typeOperator
	Operator       string `json:"operator,omitempty"`
	OperatorTarget *Type  `json:"-"`
	// indexedAccess
	ObjectType *Type `json:"objectType,omitempty"`
	IndexType  *Type `json:"indexType,omitempty"`
	// conditional
	CheckType   *Type `json:"checkType,omitempty"`
	ExtendsType *Type `json:"extendsType,omitempty"`
	TrueType    *Type `json:"trueType,omitempty"`
	FalseType   *Type `json:"falseType,omitempty"`
	// predicate
	Asserts    bool  `json:"asserts,omitempty"`
	TargetType *Type `json:"targetType,omitempty"`
	// namedTupleMember
	IsOptional bool `json:"isOptional,omitempty"`
	// templateLiteral
	Head string         `json:"head,omitempty"`
	Tail []TemplateSpan `json:"-"`
}

// TemplateSpan is one `${T}text` segment of a template literal type.
type TemplateSpan struct {
	Type *Type
	Text string
}

// UnmarshalJSON handles the fields whose JSON shape depends on the variant:
// "target" is a reflection id on references but a type on typeOperator, and
// template literal tails are [type, text] pairs. Named tuple members carry
// their type under "element".
func (t *Type) UnmarshalJSON(data []byte) error {
	type plain Type
	var aux struct {
		plain
		Target  json.RawMessage   `json:"target,omitempty"`
		Element *Type             `json:"element,omitempty"`
		Tail    []json.RawMessage `json:"tail,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = Type(aux.plain)
	if t.ElementType == nil && aux.Element != nil {
		t.ElementType = aux.Element
	}

	if t.Type == "typeOperator" && len(aux.Target) > 0 && aux.Target[0] == '{' {
		var target Type
		if err := json.Unmarshal(aux.Target, &target); err != nil {
			return fmt.Errorf("typeOperator target: %w", err)
		}
		t.OperatorTarget = &target
	}

	for _, raw := range aux.Tail {
		var pair []json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
			return fmt.Errorf("templateLiteral tail: expected [type, text] pair")
		}
		var span TemplateSpan
		if err := json.Unmarshal(pair[0], &span.Type); err != nil {
			return fmt.Errorf("templateLiteral tail type: %w", err)
		}
		if err := json.Unmarshal(pair[1], &span.Text); err != nil {
			return fmt.Errorf("templateLiteral tail text: %w", err)
		}
		t.Tail = append(t.Tail, span)
	}
	return nil
}

// String formats the type as a TypeScript type expression.
// A nil type formats as "unknown".
func (t *Type) String() string {
	if t == nil {
		return "unknown"
	}
	switch t.Type {
	case "intrinsic", "typeParameter", "unknown":
		return t.Name
	case "reference":
		if len(t.TypeArguments) == 0 {
			return t.Name
		}
		return t.Name + "<" + joinTypes(t.TypeArguments, ", ") + ">"
	case "array":
		return wrapComplex(t.ElementType) + "[]"
	case "union":
		return joinTypes(t.Types, " | ")
	case "intersection":
		return joinTypes(t.Types, " & ")
	case "literal":
		return formatLiteral(t.Value)
	case "tuple":
		return "[" + joinTypes(t.Elements, ", ") + "]"
	case "optional":
		return t.ElementType.String() + "?"
	case "rest":
		return "..." + t.ElementType.String()
	case "namedTupleMember":
		opt := ""
		if t.IsOptional {
			opt = "?"
		}
		return t.Name + opt + ": " + t.ElementType.String()
	case "query":
		return "typeof " + t.QueryType.String()
	case "typeOperator":
		return t.Operator + " " + t.OperatorTarget.String()
	case "indexedAccess":
		return t.ObjectType.String() + "[" + t.IndexType.String() + "]"
	case "conditional":
		return fmt.Sprintf("%s extends %s ? %s : %s",
			t.CheckType.String(), t.ExtendsType.String(), t.TrueType.String(), t.FalseType.String())
	case "predicate":
		prefix := ""
		if t.Asserts {
			prefix = "asserts "
		}
		if t.TargetType == nil {
			return prefix + t.Name
		}
		return prefix + t.Name + " is " + t.TargetType.String()
	case "templateLiteral":
		var b strings.Builder
		b.WriteString("`")
		b.WriteString(t.Head)
		for _, span := range t.Tail {
			b.WriteString("${")
			b.WriteString(span.Type.String())
			b.WriteString("}")
			b.WriteString(span.Text)
		}
		b.WriteString("`")
		return b.String()
	case "reflection":
		return formatDeclaration(t.Declaration)
	default:
		return "unknown"
	}
}

func joinTypes(types []*Type, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

// wrapComplex parenthesizes types that would bind incorrectly before a postfix [].
func wrapComplex(t *Type) string {
	s := t.String()
	if t == nil {
		return s
	}
	switch t.Type {
	case "union", "intersection", "conditional", "typeOperator":
		return "(" + s + ")"
	case "reflection":
		if t.Declaration != nil && len(t.Declaration.Signatures) > 0 {
			return "(" + s + ")"
		}
	}
	return s
}

func formatLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case map[string]any:
		// bigint literal: {"value": "123", "negative": false}
		s := fmt.Sprint(val["value"])
		if neg, _ := val["negative"].(bool); neg {
			s = "-" + s
		}
		return s + "n"
	default:
		return fmt.Sprint(val)
	}
}

// formatDeclaration renders an inline object type or function type.
func formatDeclaration(decl *Node) string {
	if decl == nil {
		return "object"
	}
	if len(decl.Signatures) > 0 && len(decl.Children) == 0 {
		sig := decl.Signatures[0]
		return "(" + FormatParameters(sig.Parameters) + ") => " + sig.Type.String()
	}
	if len(decl.Children) == 0 {
		return "{}"
	}
	members := make([]string, 0, len(decl.Children))
	for _, c := range decl.Children {
		if c == nil {
			continue
		}
		opt := ""
		if c.Flags.IsOptional {
			opt = "?"
		}
		members = append(members, c.Name+opt+": "+c.Type.String())
	}
	return "{ " + strings.Join(members, "; ") + " }"
}

// FormatParameters renders a parameter list as it appears between parentheses.
func FormatParameters(params []*Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p == nil {
			continue
		}
		var b strings.Builder
		if p.Flags.IsRest {
			b.WriteString("...")
		}
		b.WriteString(p.Name)
		if p.Flags.IsOptional || p.DefaultValue != "" {
			b.WriteString("?")
		}
		b.WriteString(": ")
		if p.Type == nil {
			b.WriteString("any")
		} else {
			b.WriteString(p.Type.String())
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ", ")
}
