// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/scriptdoc/internal/transform"
)

const fence = "```"

// Markdown renders prose as Markdown text and code runs as fenced code
// blocks. Section headings are written as ordinary lines; any heading
// markup is the author's own.
type Markdown struct {
	transform.NopHandler

	lang string
	b    strings.Builder
}

// NewMarkdown returns a Markdown renderer that tags fences with
// opts.Language.
func NewMarkdown(opts Options) *Markdown {
	return &Markdown{lang: opts.Language}
}

func (m *Markdown) StartSection(title string) {
	m.writeLine(title)
}

func (m *Markdown) StartCode() {
	m.writeLine(fence + m.lang)
}

func (m *Markdown) EndCode() {
	m.writeLine(fence)
}

func (m *Markdown) Line(_ transform.Kind, text string) {
	m.writeLine(text)
}

func (m *Markdown) writeLine(s string) {
	m.b.WriteString(s)
	m.b.WriteByte('\n')
}

// Bytes returns the Markdown written so far.
func (m *Markdown) Bytes() ([]byte, error) {
	return []byte(m.b.String()), nil
}
