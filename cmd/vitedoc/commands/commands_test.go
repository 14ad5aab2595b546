package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/vitedoc/internal/config"
	"git.home.luguber.info/inful/vitedoc/internal/foundation/errors"
	"git.home.luguber.info/inful/vitedoc/internal/metrics"
	"git.home.luguber.info/inful/vitedoc/internal/slug"
	tu "git.home.luguber.info/inful/vitedoc/internal/testutil/testutils"
)

const fixture = "../../../internal/docmodel/testdata/project.json"

// run parses args and executes the selected command, capturing stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cli := &CLI{stderr: io.Discard}
	parser, err := kong.New(cli, kong.Name("vitedoc"), kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }))
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	var buf bytes.Buffer
	cli.Render.stdout = &buf
	cli.Verify.stdout = &buf
	cli.Slug.stdout = &buf
	cli.Init.stdout = &buf

	err = kctx.Run(&Global{}, cli)
	return buf.String(), err
}

func TestRenderThenVerify(t *testing.T) {
	dir := t.TempDir()
	input, err := filepath.Abs(fixture)
	require.NoError(t, err)
	outDir := filepath.Join(dir, "api")
	metricsFile := filepath.Join(dir, "metrics.prom")
	reportFile := filepath.Join(dir, "report.json")
	cfg := filepath.Join(dir, "missing.yaml")

	_, err = run(t, "--config", cfg, "render", input)
	require.Error(t, err, "an explicit missing config is an error")

	out, err := run(t, "--config", DefaultConfigPath, "render", input, "-o", outDir,
		"--metrics-file", metricsFile, "--report", reportFile)
	require.NoError(t, err)
	assert.Contains(t, out, "outcome=success")

	fa := tu.NewFileAssertions(t, dir)
	fa.AssertMarkdownFiles("api", "formatdate.md", "index.md", "point.md").
		AssertFileExists("config/sidebar.json").
		AssertFileContains("metrics.prom", "vitedoc_documents_total").
		AssertFileContains("report.json", `"mode": "full"`)

	out, err = run(t, "verify", "-o", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "0 problems")

	out, err = run(t, "render", input, "-o", outDir, "--incremental")
	require.NoError(t, err)
	assert.Contains(t, out, "written=0 skipped=4")

	require.NoError(t, os.Remove(filepath.Join(outDir, "point.md")))
	out, err = run(t, "verify", "-o", outDir, "--json")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryVerify))
	assert.Contains(t, out, `"missing_document"`)
}

func TestRender_MissingInput(t *testing.T) {
	_, err := run(t, "render", filepath.Join(t.TempDir(), "nope.json"), "-o", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestRender_InvalidOverride(t *testing.T) {
	_, err := run(t, "render", fixture, "-o", t.TempDir(), "--base-url", "relative")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestRender_UsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	input, err := filepath.Abs(fixture)
	require.NoError(t, err)
	cfgPath := filepath.Join(dir, "vitedoc.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[input]
path = "`+filepath.ToSlash(input)+`"

[output]
directory = "`+filepath.ToSlash(filepath.Join(dir, "out"))+`"

[site]
title = "Acme Reference"
base_url = "/reference/"
`), 0o600))

	_, err = run(t, "--config", cfgPath, "render")
	require.NoError(t, err)

	fa := tu.NewFileAssertions(t, dir)
	fa.AssertFileContains("out/index.md", "# Acme Reference").
		AssertFileContains("out/index.md", "(/reference/formatdate)")
}

func TestSlug(t *testing.T) {
	out, err := run(t, "slug", "Café", "MyClass", "--dir", "./docs/api")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Café\tcafe\t./docs/api/cafe.md", lines[0])
	assert.Equal(t, "MyClass\tmyclass\t"+slug.FilePath("MyClass", "./docs/api"), lines[1])
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "init", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")
	tu.NewFileAssertions(t, dir).AssertFileContains(DefaultConfigPath, "base_url: /api/")

	_, err = run(t, "init", "-o", dir)
	require.Error(t, err)
	_, err = run(t, "init", "-o", dir, "--force")
	require.NoError(t, err)
}

func TestNewRecorder(t *testing.T) {
	cfg := config.Default()
	rec, prom := newRecorder(cfg)
	assert.Equal(t, metrics.NoopRecorder{}, rec)
	assert.Nil(t, prom)

	cfg.Metrics.Textfile = filepath.Join(t.TempDir(), "vitedoc.prom")
	rec, prom = newRecorder(cfg)
	require.NotNil(t, prom)
	assert.Same(t, prom, rec)
}
