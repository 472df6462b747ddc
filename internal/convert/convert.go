// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs annotated scripts through the transformer and the
// renderers and writes the resulting documents. A Pipeline converts every
// script of the input directory into every configured output kind and
// prints an index listing of the written documents.
package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/scriptdoc/internal/render"
	"github.com/pdiddy/scriptdoc/internal/transform"
)

// Options controls how a single script is converted.
type Options struct {
	Syntax transform.Syntax
	Render render.Options
}

// DefaultOptions converts Go scripts with "// " comments.
func DefaultOptions() Options {
	return Options{Syntax: transform.DefaultSyntax, Render: render.DefaultOptions()}
}

// Convert renders script content as kind. The returned document is complete;
// nothing is produced for a script that could not be read to its end.
func Convert(content []byte, kind render.Kind, opts Options) ([]byte, error) {
	r, err := render.New(kind, opts.Render)
	if err != nil {
		return nil, err
	}
	if err := transform.TransformReader(opts.Syntax, bytes.NewReader(content), r); err != nil {
		return nil, err
	}
	return r.Bytes()
}

// ConvertFile reads source from fs and renders it as kind.
func ConvertFile(fs afero.Fs, source string, kind render.Kind, opts Options) ([]byte, error) {
	content, err := afero.ReadFile(fs, source)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	out, err := Convert(content, kind, opts)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", source, err)
	}
	return out, nil
}

// ListInputs returns the regular files in dir whose names end with suffix,
// sorted by path. Subdirectories are not descended into.
func ListInputs(fs afero.Fs, dir, suffix string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.Mode().IsRegular() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// OutputName replaces the extension of the base name of source with ext.
func OutputName(source, ext string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

// ShortName strips the ordering prefix of a file name: everything up to and
// including the first '-'. "03-generics.md" becomes "generics.md".
func ShortName(filename string) string {
	if _, after, ok := strings.Cut(filename, "-"); ok {
		return after
	}
	return filename
}
