// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scriptdoc/pkg/types"
)

// Manifest is the on-disk index of the documents produced by a run. Site
// generators read it to build navigation without rescanning the folders.
type Manifest struct {
	Generated time.Time        `yaml:"generated"`
	Outputs   []ManifestOutput `yaml:"outputs"`
}

// ManifestOutput lists the documents of one output kind.
type ManifestOutput struct {
	Kind    string          `yaml:"kind"`
	Dir     string          `yaml:"dir"`
	Entries []ManifestEntry `yaml:"entries"`
}

// ManifestEntry is one document.
type ManifestEntry struct {
	Index  int    `yaml:"index"`
	Title  string `yaml:"title"`
	Source string `yaml:"source"`
	Path   string `yaml:"path"`
}

// NewManifest groups convs by the output kinds configured in cfg.
func NewManifest(cfg types.Config, convs []types.Conversion) Manifest {
	m := Manifest{Generated: time.Now().UTC()}
	for _, o := range cfg.Outputs() {
		mo := ManifestOutput{Kind: o.Kind, Dir: o.Dir, Entries: []ManifestEntry{}}
		for _, c := range convs {
			if c.Kind != o.Kind {
				continue
			}
			mo.Entries = append(mo.Entries, ManifestEntry{
				Index:  c.Index,
				Title:  c.Title,
				Source: c.Source,
				Path:   c.Dest,
			})
		}
		m.Outputs = append(m.Outputs, mo)
	}
	return m
}

// WriteManifest saves m as YAML at path.
func WriteManifest(fs afero.Fs, path string, m Manifest) error {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling index: %w", err)
	}
	if err := writeAtomic(fs, path, data); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(fs afero.Fs, path string) (Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading index: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing index: %w", err)
	}
	return m, nil
}
