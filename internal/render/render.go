// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns transformer events into Markdown pages and notebook
// documents. A renderer is created per converted file, driven by a
// transform.Stream and then asked for its Bytes.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/scriptdoc/internal/transform"
)

// Kind names an output format.
type Kind string

const (
	KindMarkdown  Kind = "markdown"
	KindNotebook  Kind = "notebook"
	KindSlideshow Kind = "slideshow"
)

// Kinds returns every supported output kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindMarkdown, KindNotebook, KindSlideshow}
}

// ErrUnknownKind is returned for an output kind that has no renderer.
var ErrUnknownKind = errors.New("unknown output kind")

// ParseKind maps a name such as "Notebook" to its Kind.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Extension returns the file extension, including the dot, of files of
// this kind.
func (k Kind) Extension() string {
	if k == KindMarkdown {
		return ".md"
	}
	return ".ipynb"
}

// Renderer consumes the events of one document and produces its bytes.
type Renderer interface {
	transform.Handler

	// Bytes returns the rendered document. Notebook renderers return an
	// error until the end-of-document event was received.
	Bytes() ([]byte, error)
}

// Kernel describes the notebook kernel written into notebook metadata.
type Kernel struct {
	Name          string
	DisplayName   string
	Language      string
	Version       string
	FileExtension string
	MimeType      string
}

// Options configures the renderers.
type Options struct {
	// Language tags Markdown code fences (e.g. "go").
	Language string
	// Kernel is written into notebook metadata.
	Kernel Kernel
}

// DefaultOptions renders Go scripts for the gophernotes kernel.
func DefaultOptions() Options {
	return Options{
		Language: "go",
		Kernel: Kernel{
			Name:          "gophernotes",
			DisplayName:   "Go",
			Language:      "go",
			FileExtension: ".go",
			MimeType:      "text/x-go",
		},
	}
}

// New returns a fresh renderer for kind.
func New(kind Kind, opts Options) (Renderer, error) {
	switch kind {
	case KindMarkdown:
		return NewMarkdown(opts), nil
	case KindNotebook:
		return NewNotebook(opts), nil
	case KindSlideshow:
		return NewSlideshow(opts), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
