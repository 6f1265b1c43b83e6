package gen

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"
)

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

type goimportsFormatter struct {
	options *imports.Options
}

// NewGoimportsFormatter creates a formatter backed by goimports. Imports are
// sorted and grouped but never added or removed: the generator already
// lists exactly what a file uses.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{
		options: &imports.Options{
			Comments:   true,
			TabIndent:  true,
			TabWidth:   8,
			FormatOnly: true,
		},
	}
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, f.options)
}

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. It is best-effort.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(outDir, debugName), content, filePerm)
}
