package gen

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"text/template"

	"github.com/go-playground/validator/v10"

	"flatstruct/descriptor"
	"flatstruct/internal/common"
	"flatstruct/synth"
)

//go:embed templates/*.go.tmpl
var templateFS embed.FS

var structTemplate = template.Must(template.ParseFS(templateFS, "templates/struct.go.tmpl"))

// Import paths of the packages generated code depends on.
const (
	valuehashPath = "flatstruct/valuehash"
	volatilePath  = "flatstruct/volatile"
)

// Config holds configuration for code generation.
type Config struct {
	// PackageName is the name of the generated package.
	PackageName string `validate:"required"`
	// ImportPath is the import path of the generated package. Interfaces
	// declared in that package are referenced without a qualifier.
	ImportPath string
	// Flavor selects the synthesizer.
	Flavor string `validate:"oneof=structure value"`
	// DebugDir, when set, receives the unformatted source of files that fail
	// to format.
	DebugDir string
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		PackageName: "flatstructs",
		Flavor:      "value",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Synthesizer returns the synthesizer named by c.Flavor.
func (c Config) Synthesizer() (synth.Synthesizer, error) {
	switch c.Flavor {
	case "structure":
		return synth.Structure(), nil
	case "value":
		return synth.Value(), nil
	default:
		return nil, fmt.Errorf("unknown flavor %q", c.Flavor)
	}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "value_of_person.go").
	Filename string
	// TypeName is the Go type the file declares.
	TypeName string
	// Content is the formatted Go source code.
	Content []byte
}

// Generator renders descriptors into Go source.
type Generator struct {
	config    Config
	formatter Formatter
}

func NewGenerator(config Config) *Generator {
	return &Generator{config: config, formatter: NewGoimportsFormatter()}
}

// WithFormatter replaces the goimports formatter.
func (g *Generator) WithFormatter(f Formatter) *Generator {
	g.formatter = f
	return g
}

// Generate renders one file per descriptor. Synthesis errors are returned as
// *synth.Error exactly as the runtime factory would report them.
func (g *Generator) Generate(descriptors ...*descriptor.Descriptor) ([]GeneratedFile, error) {
	if err := validate.Struct(g.config); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}

	s, err := g.config.Synthesizer()
	if err != nil {
		return nil, err
	}

	files := make([]GeneratedFile, 0, len(descriptors))
	seen := make(map[string]string)

	for _, d := range descriptors {
		file, err := g.generate(s, d)
		if err != nil {
			return nil, err
		}

		if prev, ok := seen[file.TypeName]; ok {
			return nil, &synth.Error{
				Kind:       synth.ErrSynthesisFailure,
				Descriptor: d.QualifiedName(),
				Detail:     fmt.Sprintf("type %s is also generated for %s", file.TypeName, prev),
			}
		}

		seen[file.TypeName] = d.QualifiedName()
		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) generate(s synth.Synthesizer, d *descriptor.Descriptor) (*GeneratedFile, error) {
	if err := synth.ValidateDescriptor(d); err != nil {
		return nil, err
	}

	typeName := common.LastSegment(synth.DeriveName(s, d))
	b := newSourceBuilder(typeName, d)

	if _, err := synth.Synthesize(s, d, b); err != nil {
		return nil, err
	}

	if err := b.check(); err != nil {
		return nil, &synth.Error{Kind: synth.ErrSynthesisFailure, Descriptor: d.QualifiedName(), Err: err}
	}

	data := g.fileData(d, b)
	filename := strings.ToLower(typeName) + ".go"

	var buf bytes.Buffer
	if err := structTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := g.formatter.Format(filename, buf.Bytes())
	if err != nil {
		_ = writeDebugUnformatted(g.config.DebugDir, filename, buf.Bytes())

		return nil, &synth.Error{
			Kind:       synth.ErrSynthesisFailure,
			Descriptor: d.QualifiedName(),
			Detail:     "formatting generated source",
			Err:        err,
		}
	}

	return &GeneratedFile{Filename: filename, TypeName: typeName, Content: formatted}, nil
}

// fileData holds all data needed for the struct template.
type fileData struct {
	Package    string
	Imports    []importSpec
	Assertion  string
	Descriptor string
	Type       string
	Receiver   string
	Monitor    bool
	Fields     []fieldData
	Methods    []methodData
}

type importSpec struct {
	Alias string
	Path  string
}

type fieldData struct {
	Name string
	Type string
}

type methodData struct {
	Signature string
	Body      string
}

func (g *Generator) fileData(d *descriptor.Descriptor, b *sourceBuilder) *fileData {
	data := &fileData{
		Package:    g.config.PackageName,
		Descriptor: d.QualifiedName(),
		Type:       b.typeName,
		Receiver:   b.receiver,
		Monitor:    b.monitor(),
		Fields:     b.fieldData(),
		Methods:    b.methodData(),
	}

	var imports []importSpec

	if assertion, spec, ok := g.assertion(d); ok {
		data.Assertion = assertion
		if spec.Path != "" {
			imports = append(imports, spec)
		}
	}

	text := data.source()
	for _, pkg := range []importSpec{
		{Path: "fmt"},
		{Path: "strings"},
		{Path: "sync"},
		{Path: "time"},
		{Path: valuehashPath},
		{Path: volatilePath},
	} {
		if usesPackage(text, common.PkgAlias(pkg.Path)) {
			imports = append(imports, pkg)
		}
	}

	slices.SortFunc(imports, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})
	data.Imports = imports

	return data
}

// assertion returns the interface the generated type can be asserted
// against: only Go interfaces whose every method is an accessor qualify.
func (g *Generator) assertion(d *descriptor.Descriptor) (string, importSpec, bool) {
	if d.ImportPath == "" {
		return "", importSpec{}, false
	}

	for _, m := range d.Methods {
		if !m.Tagged() {
			return "", importSpec{}, false
		}
	}

	if d.ImportPath == g.config.ImportPath {
		return d.Name, importSpec{}, true
	}

	alias := common.PkgAlias(d.ImportPath)
	if alias == g.config.PackageName || slices.Contains(runtimePackages, alias) {
		alias += "contract"
	}

	return alias + "." + d.Name, importSpec{Alias: alias, Path: d.ImportPath}, true
}

// usesPackage reports whether text refers to a package-qualified name of pkg.
// Selectors such as p.fmt.Load() do not count.
func usesPackage(text, pkg string) bool {
	re := regexp.MustCompile(`(^|[^.\w])` + regexp.QuoteMeta(pkg) + `\.`)
	return re.MatchString(text)
}

// source is the code a file declares, for import detection.
func (d *fileData) source() string {
	var sb strings.Builder

	if d.Monitor {
		sb.WriteString("sync.Mutex\n")
	}

	for _, f := range d.Fields {
		sb.WriteString(f.Type)
		sb.WriteString("\n")
	}

	for _, m := range d.Methods {
		sb.WriteString(m.Signature)
		sb.WriteString("\n")
		sb.WriteString(m.Body)
		sb.WriteString("\n")
	}

	return sb.String()
}
