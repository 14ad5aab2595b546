package slug

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
	hashPattern = regexp.MustCompile(`^[a-f0-9]{8}$`)
)

func TestGenerate_Transliterates(t *testing.T) {
	cases := map[string]string{
		"MyClass":             "myclass",
		"Café":                "cafe",
		"Naïve":               "naive",
		"Résumé":              "resume",
		"my function":         "my-function",
		"  spaced   out  ":    "spaced-out",
		"a--b":                "a-b",
		"-leading-trailing-":  "leading-trailing",
		"useGeoLocation":      "usegeolocation",
		"foo_bar":             "foobar",
		"Point3D":             "point3d",
		"tabs\tand\nnewlines": "tabs-and-newlines",
	}
	for in, want := range cases {
		assert.Equal(t, want, Generate(in), "Generate(%q)", in)
	}
}

func TestGenerate_Empty(t *testing.T) {
	assert.Equal(t, "unknown", Generate(""))
}

func TestGenerate_HashesSymbolsAndNonLatin(t *testing.T) {
	for _, in := range []string{"@#$%^&*()", "函数名称", "関数", "   ", "---"} {
		got := Generate(in)
		assert.Regexp(t, hashPattern, got, "Generate(%q)", in)
	}
	assert.NotEqual(t, Generate("函数名称"), Generate("関数"))
}

func TestGenerate_TooLongUsesPrefixedHash(t *testing.T) {
	name := strings.Repeat("abcdefghij", 6)
	got := Generate(name)
	require.Regexp(t, regexp.MustCompile(`^abcdefghij-[a-f0-9]{8}$`), got)
}

func TestGenerate_PrefixIgnoresMarksAndSymbols(t *testing.T) {
	name := "Été_" + strings.Repeat("x", 60)
	got := Generate(name)
	assert.True(t, strings.HasPrefix(got, "etexxxxxxx-"), got)
	assert.Len(t, got, 19)
}

func TestGenerate_Properties(t *testing.T) {
	inputs := []string{
		"", "a", "MyClass", "Café", "函数名称", "@#$%^&*()", "with spaces here",
		strings.Repeat("long name ", 20), "😀 emoji", "İstanbul", "x/y/z", "Ölçü", "snake_case_name",
	}
	for _, in := range inputs {
		got := Generate(in)
		assert.NotEmpty(t, got, "Generate(%q)", in)
		assert.Regexp(t, slugPattern, got, "Generate(%q)", in)
		assert.LessOrEqual(t, len(got), MaxLength+9, "Generate(%q)", in)
		assert.Equal(t, got, Generate(in), "Generate(%q) not deterministic", in)
	}
}

func TestFilePath(t *testing.T) {
	assert.Equal(t, "./docs/api/myclass.md", FilePath("MyClass", "./docs/api"))
	assert.Equal(t, "./docs/api/myclass.md", FilePath("MyClass", "./docs/api/"))
	assert.Equal(t, "unknown.md", FilePath("", ""))
	assert.True(t, hashPattern.MatchString(strings.TrimSuffix(strings.TrimPrefix(FilePath("函数名称", "out"), "out/"), ".md")))
}

func TestAnchor(t *testing.T) {
	assert.Equal(t, Generate("Café Au Lait"), Anchor("Café Au Lait"))
}
