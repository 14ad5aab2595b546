// Package slug maps symbol names to short, filesystem-safe identifiers.
//
// Names that transliterate cleanly to basic Latin (including diacritics such
// as "Café") become readable slugs. Anything else, including names written
// entirely in non-Latin scripts, falls back to a hashed slug that is stable
// across runs.
package slug

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxLength is the longest transliterated slug kept before hashing.
	MaxLength = 50
	// Fallback is returned for an empty name.
	Fallback = "unknown"
	// Extension is appended by FilePath.
	Extension = ".md"

	hashLength   = 8
	prefixLength = 10
)

// Generate returns the slug for name. The result is never empty and only
// contains [a-z0-9-].
func Generate(name string) string {
	if name == "" {
		return Fallback
	}
	s := transliterate(name)
	if s == "" || len(s) > MaxLength || !isSlug(s) {
		return hashed(name)
	}
	return s
}

// Anchor returns the in-page anchor for a symbol heading.
func Anchor(name string) string {
	return Generate(name)
}

// FilePath returns "{baseDir}/{slug}.md". It performs no I/O.
func FilePath(name, baseDir string) string {
	file := Generate(name) + Extension
	if baseDir == "" {
		return file
	}
	return strings.TrimRight(baseDir, "/") + "/" + file
}

// stripMarks decomposes s and drops combining marks (é -> e).
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func transliterate(name string) string {
	lower := strings.ToLower(stripMarks(name))

	var b strings.Builder
	b.Grow(len(lower))
	pendingHyphen := false
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingHyphen = true
		}
	}
	return b.String()
}

func isSlug(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}

func hashed(name string) string {
	sum := sha256.Sum256([]byte(name))
	hash := hex.EncodeToString(sum[:])[:hashLength]

	var prefix strings.Builder
	for _, r := range stripMarks(name) {
		if prefix.Len() == prefixLength {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			prefix.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			prefix.WriteRune(unicode.ToLower(r))
		}
	}
	if prefix.Len() == 0 {
		return hash
	}
	return prefix.String() + "-" + hash
}
