// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the scriptdoc configuration with viper. Settings come
// from a property file (or any other format viper reads), SCRIPTDOC_*
// environment variables and built-in defaults. The environment overrides
// the file and the file overrides the defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/scriptdoc/internal/transform"
	"github.com/pdiddy/scriptdoc/pkg/types"
)

const (
	// Name is the base name of the configuration file.
	Name = "scriptdoc"
	// EnvPrefix prefixes environment overrides, e.g. SCRIPTDOC_MARKDOWN.
	EnvPrefix = "SCRIPTDOC"
)

var (
	// ErrNoOutputs is returned when no output kind has a destination folder.
	ErrNoOutputs = errors.New("no output configured: set at least one of markdown, notebook, slideshow")
	// ErrEmptyDir is returned when an output kind is present with an empty folder.
	ErrEmptyDir = errors.New("output folder is empty")
	// ErrJobs is returned for a non-positive jobs setting.
	ErrJobs = errors.New("jobs must be at least 1")
)

// New returns a viper instance with the defaults, the environment binding
// and the properties codec installed.
func New() *viper.Viper {
	v := viper.NewWithOptions(viper.WithCodecRegistry(codecRegistry()))

	v.SetDefault("input.dir", ".")
	v.SetDefault("input.suffix", ".go")
	v.SetDefault("comment.marker", transform.DefaultSyntax.Marker)
	v.SetDefault("comment.sigil", transform.DefaultSyntax.Sigil)
	v.SetDefault("language", "go")
	v.SetDefault("kernel.name", "gophernotes")
	v.SetDefault("kernel.display_name", "Go")
	v.SetDefault("kernel.language", "go")
	v.SetDefault("kernel.version", "")
	v.SetDefault("jobs", runtime.NumCPU())
	v.SetDefault("cache", "")
	v.SetDefault("index", "")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"markdown", "notebook", "slideshow"} {
		// Output keys have no default, bind them so the environment alone
		// can enable a kind.
		_ = v.BindEnv(key)
	}
	return v
}

// ReadFile reads the configuration file into v. An explicit path must
// exist. Without one, scriptdoc.properties (or .yaml, .json, .toml) is
// looked up in dir and then in ~/.config/scriptdoc; finding none is not an
// error. It returns the path of the file used, if any.
func ReadFile(v *viper.Viper, path, dir string) (string, error) {
	if path == "" {
		path = find(dir)
		if path == "" {
			return "", nil
		}
	}
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		v.SetConfigType(ext)
	}
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("reading config %s: %w", path, err)
	}
	return path, nil
}

func find(dir string) string {
	dirs := []string{dir}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", Name))
	}
	for _, d := range dirs {
		for _, ext := range []string{"properties", "yaml", "yml", "json", "toml"} {
			p := filepath.Join(d, Name+"."+ext)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p
			}
		}
	}
	return ""
}

// Decode decodes v into a Config without validating it.
func Decode(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	cfg, err := Decode(v)
	if err != nil {
		return types.Config{}, err
	}
	for _, key := range []string{"markdown", "notebook", "slideshow"} {
		if v.IsSet(key) && strings.TrimSpace(v.GetString(key)) == "" {
			return types.Config{}, fmt.Errorf("%w: %s", ErrEmptyDir, key)
		}
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that must hold before any file is processed.
func Validate(cfg types.Config) error {
	if len(cfg.Outputs()) == 0 {
		return ErrNoOutputs
	}
	if cfg.Jobs < 1 {
		return fmt.Errorf("%w: %d", ErrJobs, cfg.Jobs)
	}
	if _, err := transform.NewSyntax(cfg.Comment.Marker, cfg.Comment.Sigil); err != nil {
		return fmt.Errorf("invalid comment syntax: %w", err)
	}
	return nil
}
