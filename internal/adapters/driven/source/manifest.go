package source

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest validation errors.
var (
	ErrNoSources              = errors.New("at least one source is required")
	ErrSourceMissingURLOrFile = errors.New("either url or file is required")
	ErrSourceMissingName      = errors.New("name is required")
	ErrNoEnabledSources       = errors.New("at least one source must be enabled")
)

// Manifest lists catalog directory sources to ingest in one command.
type Manifest struct {
	Sources []ManifestSource `yaml:"sources"`
}

// ManifestSource describes one directory source.
type ManifestSource struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	File     string `yaml:"file"`
	Language string `yaml:"language"`
	Enabled  bool   `yaml:"enabled"`
}

// IsLocalFile returns true if this source uses a local file.
func (s *ManifestSource) IsLocalFile() bool {
	return s.File != ""
}

// LoadManifest reads and validates a YAML sources manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for structural problems.
func (m *Manifest) Validate() error {
	if len(m.Sources) == 0 {
		return ErrNoSources
	}
	enabled := 0
	for i := range m.Sources {
		s := &m.Sources[i]
		if s.Name == "" {
			return fmt.Errorf("source %d: %w", i, ErrSourceMissingName)
		}
		if s.URL == "" && s.File == "" {
			return fmt.Errorf("source %q: %w", s.Name, ErrSourceMissingURLOrFile)
		}
		if s.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return ErrNoEnabledSources
	}
	return nil
}

// Enabled returns the enabled sources in manifest order.
func (m *Manifest) Enabled() []ManifestSource {
	var out []ManifestSource
	for _, s := range m.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}
