package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"flatstruct/descriptor"
	"flatstruct/internal/common"
)

// loadSources reads descriptors from YAML files and Go package patterns, in
// argument order. Package patterns are loaded together.
func loadSources(logger *slog.Logger, sources []string) ([]*descriptor.Descriptor, error) {
	if common.IsEmpty(sources) {
		return nil, fmt.Errorf("no sources given")
	}

	var (
		out      []*descriptor.Descriptor
		patterns []string
	)

	for _, src := range sources {
		switch strings.ToLower(filepath.Ext(src)) {
		case ".yaml", ".yml":
			f, err := descriptor.LoadFile(src)
			if err != nil {
				return nil, err
			}

			logger.Debug("loaded descriptor file", slog.String("file", src), slog.Int("descriptors", len(f.Descriptors)))
			out = append(out, f.Descriptors...)
		default:
			patterns = append(patterns, src)
		}
	}

	if !common.IsEmpty(patterns) {
		ds, err := descriptor.LoadPackages(patterns...)
		if err != nil {
			return nil, err
		}

		logger.Debug("loaded packages", slog.Any("patterns", patterns), slog.Int("descriptors", len(ds)))
		out = append(out, ds...)
	}

	if _, ok := common.First(out); !ok {
		return nil, fmt.Errorf("no descriptors found in %s", strings.Join(sources, ", "))
	}

	return out, nil
}
