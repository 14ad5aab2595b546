// Package frontmatter reads and writes the YAML header block of generated
// Markdown documents.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
// Both LF and CRLF documents are accepted.
//
// If the document does not start with a delimiter, had is false and body is
// the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := newline(content)
	open := []byte(delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}

	closeSeq := []byte(nl + delimiter + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, nil
}

// Build assembles a document from frontmatter fields and a Markdown body.
// A blank line separates the closing delimiter from the body. With no fields
// the body is returned unchanged.
func Build(fields map[string]any, body string) (string, error) {
	if len(fields) == 0 {
		return body, nil
	}
	fm, err := SerializeYAML(fields)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	b.Grow(len(fm) + len(body) + 2*len(delimiter) + 3)
	b.WriteString(delimiter + "\n")
	b.Write(fm)
	b.WriteString(delimiter + "\n\n")
	b.WriteString(body)
	return b.String(), nil
}

// Parse decodes the frontmatter of a document into a map. Documents without
// frontmatter yield an empty map.
func Parse(content []byte) (map[string]any, []byte, error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return nil, nil, err
	}
	if !had || len(fm) == 0 {
		return map[string]any{}, body, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return nil, nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, body, nil
}

func newline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
