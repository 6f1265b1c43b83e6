package descriptor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML document form: a versioned list of descriptors.
type File struct {
	Version     string        `yaml:"version"`
	Descriptors []*Descriptor `yaml:"descriptors"`
}

// LoadFile loads and parses a YAML descriptor file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, d := range f.Descriptors {
		d.Origin = path
	}

	return f, nil
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse descriptor YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	for _, d := range f.Descriptors {
		if d == nil {
			continue
		}

		for i := range d.Fields {
			fd := &d.Fields[i]
			if fd.Const == "" {
				if name, ok := fd.Value.(string); ok {
					fd.Const = name
				}
			}
		}
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal descriptors: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write descriptor file %s: %w", path, err)
	}

	return nil
}
