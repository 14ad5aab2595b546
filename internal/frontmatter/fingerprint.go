package frontmatter

import (
	"strings"

	"github.com/inful/mdfp"
)

// Fingerprint computes the canonical content fingerprint of a document.
// Any existing fingerprint field is excluded and the serialized frontmatter
// is hashed without its trailing newline.
func Fingerprint(content []byte) (string, error) {
	fields, body, err := Parse(content)
	if err != nil {
		return "", err
	}
	delete(fields, mdfp.FingerprintField)

	fm := ""
	if len(fields) > 0 {
		serialized, err := SerializeYAML(fields)
		if err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(string(serialized), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}
