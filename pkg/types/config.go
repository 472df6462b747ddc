// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scriptdoc pipeline:
// the configuration read from the property file and the per-file
// conversion records reported by a batch run.
package types

// InputConfig selects the scripts to convert.
type InputConfig struct {
	// Dir is the directory scanned for scripts (default ".").
	Dir string `mapstructure:"dir" yaml:"dir"`

	// Suffix filters file names, e.g. ".go" or ".jsh" (default ".go").
	Suffix string `mapstructure:"suffix" yaml:"suffix"`
}

// CommentConfig holds the literals that mark prose and section lines.
type CommentConfig struct {
	// Marker starts a prose line (default "// ").
	Marker string `mapstructure:"marker" yaml:"marker"`

	// Sigil follows Marker on a section line (default "#").
	Sigil string `mapstructure:"sigil" yaml:"sigil"`
}

// KernelConfig describes the notebook kernel.
type KernelConfig struct {
	Name        string `mapstructure:"name" yaml:"name"`
	DisplayName string `mapstructure:"display_name" yaml:"display_name"`
	Language    string `mapstructure:"language" yaml:"language"`
	Version     string `mapstructure:"version" yaml:"version,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `mapstructure:"level" yaml:"level"`
}

// Output pairs an output kind with its destination folder.
type Output struct {
	Kind string `yaml:"kind"`
	Dir  string `yaml:"dir"`
}

// Config is the complete scriptdoc configuration. The Markdown, Notebook
// and Slideshow folders double as switches: a kind is produced only when
// its folder is configured.
type Config struct {
	Input   InputConfig   `mapstructure:"input" yaml:"input"`
	Comment CommentConfig `mapstructure:"comment" yaml:"comment"`
	Kernel  KernelConfig  `mapstructure:"kernel" yaml:"kernel"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`

	// Language tags Markdown code fences (default "go").
	Language string `mapstructure:"language" yaml:"language"`

	Markdown  string `mapstructure:"markdown" yaml:"markdown,omitempty"`
	Notebook  string `mapstructure:"notebook" yaml:"notebook,omitempty"`
	Slideshow string `mapstructure:"slideshow" yaml:"slideshow,omitempty"`

	// Jobs bounds the number of files converted in parallel.
	Jobs int `mapstructure:"jobs" yaml:"jobs"`

	// Cache is the path of the incremental build database. Empty disables
	// the cache.
	Cache string `mapstructure:"cache" yaml:"cache,omitempty"`

	// Index is the path of the YAML index manifest. Empty disables it.
	Index string `mapstructure:"index" yaml:"index,omitempty"`
}

// Outputs lists the configured output kinds in markdown, notebook,
// slideshow order.
func (c Config) Outputs() []Output {
	var outs []Output
	for _, o := range []Output{
		{Kind: "markdown", Dir: c.Markdown},
		{Kind: "notebook", Dir: c.Notebook},
		{Kind: "slideshow", Dir: c.Slideshow},
	} {
		if o.Dir != "" {
			outs = append(outs, o)
		}
	}
	return outs
}
