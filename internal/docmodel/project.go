package docmodel

import (
	"encoding/json"
	"io"
	"os"

	"git.home.luguber.info/inful/vitedoc/internal/foundation/errors"
)

// Project is the root of a TypeDoc JSON document.
type Project struct {
	Name           string   `json:"name"`
	Kind           Kind     `json:"kind"`
	SchemaVersion  string   `json:"schemaVersion,omitempty"`
	PackageVersion string   `json:"packageVersion,omitempty"`
	Comment        *Comment `json:"comment,omitempty"`
	Children       []*Node  `json:"children,omitempty"`
}

// Symbols returns the documentable top-level nodes in declaration order.
// Module and namespace containers (emitted by TypeDoc for multi entry-point
// projects) are flattened in place. A nil project has no symbols.
func (p *Project) Symbols() []*Node {
	if p == nil {
		return nil
	}
	var out []*Node
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n == nil {
				continue
			}
			if n.Kind.IsContainer() {
				walk(n.Children)
				continue
			}
			out = append(out, n)
		}
	}
	walk(p.Children)
	return out
}

// DecodeProject reads a TypeDoc JSON document. A JSON null yields an empty project.
func DecodeProject(r io.Reader) (*Project, error) {
	var p *Project
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		if err == io.EOF {
			return &Project{}, nil
		}
		return nil, errors.WrapError(err, errors.CategoryInput, "failed to decode project JSON").Fatal().Build()
	}
	if p == nil {
		p = &Project{}
	}
	return p, nil
}

// LoadProject reads and decodes the TypeDoc JSON file at path.
func LoadProject(path string) (*Project, error) {
	// #nosec G304 - path is the user-supplied input file
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "project file not found").
				Fatal().WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryInput, "failed to open project file").
			Fatal().WithContext("path", path).Build()
	}
	defer func() { _ = f.Close() }()

	p, err := DecodeProject(f)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	return p, nil
}
