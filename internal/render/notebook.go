// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/scriptdoc/internal/transform"
)

const (
	nbformat      = 4
	nbformatMinor = 4
)

// ErrUnfinished is returned by Bytes before the document was closed.
var ErrUnfinished = errors.New("notebook document not finished")

// Cell types in notebook documents.
const (
	cellCode     = "code"
	cellMarkdown = "markdown"
)

type slideshowMeta struct {
	SlideType string `json:"slide_type"`
}

type cellMeta struct {
	Slideshow *slideshowMeta `json:"slideshow,omitempty"`
}

type codeCell struct {
	CellType       string   `json:"cell_type"`
	ExecutionCount *int     `json:"execution_count"`
	Metadata       cellMeta `json:"metadata"`
	Outputs        []any    `json:"outputs"`
	Source         []string `json:"source"`
}

type markdownCell struct {
	CellType string   `json:"cell_type"`
	Metadata cellMeta `json:"metadata"`
	Source   []string `json:"source"`
}

type kernelSpec struct {
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
	Name        string `json:"name"`
}

type languageInfo struct {
	FileExtension string `json:"file_extension,omitempty"`
	MimeType      string `json:"mimetype,omitempty"`
	Name          string `json:"name"`
	Version       string `json:"version,omitempty"`
}

type riseMeta struct {
	Scroll     bool   `json:"scroll"`
	Transition string `json:"transition"`
}

type notebookMeta struct {
	CellToolbar  string       `json:"celltoolbar,omitempty"`
	KernelSpec   kernelSpec   `json:"kernelspec"`
	LanguageInfo languageInfo `json:"language_info"`
	Rise         *riseMeta    `json:"rise,omitempty"`
}

type notebookDoc struct {
	Cells         []any        `json:"cells"`
	Metadata      notebookMeta `json:"metadata"`
	NBFormat      int          `json:"nbformat"`
	NBFormatMinor int          `json:"nbformat_minor"`
}

// Notebook renders each run as one notebook cell: code runs become code
// cells and text runs become markdown cells. A text run opened by a section
// starts with the section heading.
type Notebook struct {
	transform.NopHandler

	kernel Kernel
	slides bool

	cells   []any
	buf     []string
	open    bool
	heading *string
	slide   bool

	out []byte
	err error
}

// NewNotebook returns a plain notebook renderer.
func NewNotebook(opts Options) *Notebook {
	return &Notebook{kernel: opts.Kernel}
}

// NewSlideshow returns a notebook renderer for slide presentations. Every
// section starts a new slide, code cells carry no trailing newline and the
// notebook advertises the slideshow cell toolbar.
func NewSlideshow(opts Options) *Notebook {
	return &Notebook{kernel: opts.Kernel, slides: true}
}

func (n *Notebook) StartDocument() {
	n.cells = []any{}
	n.out, n.err = nil, nil
}

func (n *Notebook) StartSection(title string) {
	n.heading = &title
	n.slide = n.slides
}

func (n *Notebook) StartText() {
	n.reset()
	if n.heading != nil {
		n.buf = append(n.buf, *n.heading+"\n")
		n.heading = nil
	}
}

func (n *Notebook) EndText() {
	cell := markdownCell{CellType: cellMarkdown, Source: n.drain()}
	if n.slide {
		cell.Metadata.Slideshow = &slideshowMeta{SlideType: "slide"}
		n.slide = false
	}
	n.cells = append(n.cells, cell)
}

func (n *Notebook) StartCode() {
	n.reset()
}

func (n *Notebook) EndCode() {
	src := n.drain()
	if n.slides && len(src) > 0 {
		last := len(src) - 1
		src[last] = strings.TrimSuffix(src[last], "\n")
	}
	n.cells = append(n.cells, codeCell{
		CellType: cellCode,
		Outputs:  []any{},
		Source:   src,
	})
}

// Line buffers text for the open cell. Blank lines between runs belong to
// no cell and are dropped.
func (n *Notebook) Line(_ transform.Kind, text string) {
	if !n.open {
		return
	}
	n.buf = append(n.buf, text+"\n")
}

func (n *Notebook) reset() {
	n.buf = []string{}
	n.open = true
}

func (n *Notebook) drain() []string {
	src := n.buf
	if src == nil {
		src = []string{}
	}
	n.buf = nil
	n.open = false
	return src
}

func (n *Notebook) EndDocument() {
	doc := notebookDoc{
		Cells: n.cells,
		Metadata: notebookMeta{
			KernelSpec: kernelSpec{
				DisplayName: n.kernel.DisplayName,
				Language:    n.kernel.Language,
				Name:        n.kernel.Name,
			},
			LanguageInfo: languageInfo{
				FileExtension: n.kernel.FileExtension,
				MimeType:      n.kernel.MimeType,
				Name:          n.kernel.Language,
				Version:       n.kernel.Version,
			},
		},
		NBFormat:      nbformat,
		NBFormatMinor: nbformatMinor,
	}
	if doc.Cells == nil {
		doc.Cells = []any{}
	}
	if n.slides {
		doc.Metadata.CellToolbar = "Slideshow"
		doc.Metadata.Rise = &riseMeta{Scroll: true, Transition: "none"}
	}

	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(doc); err != nil {
		n.err = fmt.Errorf("encoding notebook: %w", err)
		return
	}
	n.out = b.Bytes()
}

// Bytes returns the notebook JSON.
func (n *Notebook) Bytes() ([]byte, error) {
	if n.err != nil {
		return nil, n.err
	}
	if n.out == nil {
		return nil, ErrUnfinished
	}
	return n.out, nil
}
