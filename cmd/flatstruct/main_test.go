package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	personYAML  = filepath.Join("..", "..", "descriptor", "testdata", "person.yaml")
	point2DYAML = filepath.Join("..", "..", "descriptor", "testdata", "point2d.yaml")
	brokenYAML  = filepath.Join("..", "..", "descriptor", "testdata", "broken.yaml")
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestCLI_Parse(t *testing.T) {
	var cli CLI

	parser, err := kong.New(&cli, kong.Name("flatstruct"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"-v", "gen", "--out", "out", "-f", "structure", "a.yaml", "./pkg/..."})
	require.NoError(t, err)

	assert.Equal(t, "gen <sources>", ctx.Command())
	assert.True(t, cli.Verbose)
	assert.Equal(t, "structure", cli.Gen.Flavor)
	assert.Equal(t, "flatstructs", cli.Gen.Package)
	assert.Equal(t, []string{"a.yaml", "./pkg/..."}, cli.Gen.Sources)

	_, err = parser.Parse([]string{"gen", "--out", "out", "--flavor", "record", "a.yaml"})
	assert.Error(t, err)
}

func TestGenCmd_Run(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer

	cmd := &GenCmd{Out: dir, Package: "models", Flavor: "value", Sources: []string{personYAML, point2DYAML}}
	require.NoError(t, cmd.Run(discard(), &out))
	assert.Equal(t, "wrote 2 files to "+dir+"\n", out.String())

	content, err := os.ReadFile(filepath.Join(dir, "value_of_person.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "package models")

	_, err = os.Stat(filepath.Join(dir, "value_of_point2d.go"))
	assert.NoError(t, err)
}

func TestGenCmd_RunFailsOnBrokenDescriptor(t *testing.T) {
	dir := t.TempDir()

	cmd := &GenCmd{Out: dir, Package: "models", Flavor: "value", Sources: []string{brokenYAML}}
	require.Error(t, cmd.Run(discard(), io.Discard))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCheckCmd_Run(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, (&CheckCmd{Sources: []string{personYAML, point2DYAML}}).Run(discard(), &out))
	assert.Contains(t, out.String(), "info: ")
	assert.Contains(t, out.String(), "[untagged-method]")
	assert.Contains(t, out.String(), "2 descriptors ok")

	out.Reset()

	err := (&CheckCmd{Sources: []string{personYAML, brokenYAML}}).Run(discard(), &out)
	require.EqualError(t, err, "1 of 2 descriptors have errors")
	assert.Contains(t, out.String(), "error: ")
	assert.Contains(t, out.String(), "[duplicate-field]")
}

func TestDescribeCmd_Run(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, (&DescribeCmd{Flavor: "value", Sources: []string{personYAML}}).Run(discard(), &out))
	assert.Equal(t, `example.Value_of_Person (example.Person)
  fields:
    0 name string volatile
    1 age int32 volatile
  methods:
    SetName(name *string)
    GetName() *string
    SetAge(age int32)
    GetAge() int32
    Equal(other any) bool
    Hash() int32
    String() string
`, out.String())
}

func TestLoadSources_Errors(t *testing.T) {
	_, err := loadSources(discard(), nil)
	assert.Error(t, err)

	_, err = loadSources(discard(), []string{filepath.Join("testdata", "missing.yaml")})
	assert.Error(t, err)
}

func TestVersionCmd_Run(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, (&VersionCmd{}).Run(&out))
	assert.NotEmpty(t, strings.TrimSpace(out.String()))
	assert.Equal(t, "0.1.0", strings.TrimSpace(embeddedVersion))
}
