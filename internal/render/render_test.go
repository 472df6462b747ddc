// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scriptdoc/internal/transform"
)

func renderLines(t *testing.T, kind Kind, lines ...string) []byte {
	t.Helper()
	r, err := New(kind, DefaultOptions())
	require.NoError(t, err)
	transform.Transform(lines, r)
	out, err := r.Bytes()
	require.NoError(t, err)
	return out
}

// notebookJSON is the subset of the notebook document the tests inspect.
type notebookJSON struct {
	Cells []struct {
		CellType       string          `json:"cell_type"`
		ExecutionCount json.RawMessage `json:"execution_count"`
		Outputs        []any           `json:"outputs"`
		Metadata       struct {
			Slideshow *struct {
				SlideType string `json:"slide_type"`
			} `json:"slideshow"`
		} `json:"metadata"`
		Source []string `json:"source"`
	} `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
}

func decodeNotebook(t *testing.T, data []byte) notebookJSON {
	t.Helper()
	var nb notebookJSON
	require.NoError(t, json.Unmarshal(data, &nb))
	return nb
}

func TestMarkdown_Scenario(t *testing.T) {
	out := renderLines(t, KindMarkdown, "// Title", "", "// # Intro", "// Hello", "x = 1", "")
	assert.Equal(t, "# Intro\nHello\n```go\nx = 1\n```\n\n", string(out))
}

func TestMarkdown_FencesBalanced(t *testing.T) {
	inputs := [][]string{
		{"a", "b", "", "c", "// t", "d"},
		{"// # S", "x", "// # T", "", "y"},
		{"x"},
		{"// only prose", "", "// more"},
	}
	for _, lines := range inputs {
		out := string(renderLines(t, KindMarkdown, lines...))
		opening := strings.Count(out, "```go\n")
		total := strings.Count(out, "```")
		assert.Equal(t, total, 2*opening, "unbalanced fences in %q", out)
	}
}

func TestMarkdown_ProseWithBlankLines(t *testing.T) {
	out := renderLines(t, KindMarkdown, "x := 1", "// First paragraph.", "", "// Second paragraph.", "y := 2")
	want := "```go\nx := 1\n```\nFirst paragraph.\n\nSecond paragraph.\n```go\ny := 2\n```\n"
	assert.Equal(t, want, string(out))
}

func TestMarkdown_CustomLanguage(t *testing.T) {
	m := NewMarkdown(Options{Language: "java"})
	transform.Transform([]string{"var x = 1;"}, m)
	out, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "```java\nvar x = 1;\n```\n", string(out))
}

func TestNotebook_Cells(t *testing.T) {
	out := renderLines(t, KindNotebook,
		"// Title", "",
		"// # Intro",
		"// Hello",
		"",
		"// world",
		"x := 1",
		"y := 2",
		"",
		"z := 3",
	)
	nb := decodeNotebook(t, out)

	require.Len(t, nb.Cells, 3)

	assert.Equal(t, "markdown", nb.Cells[0].CellType)
	assert.Equal(t, []string{"# Intro\n", "Hello\n", "\n", "world\n"}, nb.Cells[0].Source)
	assert.Nil(t, nb.Cells[0].Metadata.Slideshow)

	assert.Equal(t, "code", nb.Cells[1].CellType)
	assert.Equal(t, "null", string(nb.Cells[1].ExecutionCount))
	assert.NotNil(t, nb.Cells[1].Outputs)
	assert.Empty(t, nb.Cells[1].Outputs)
	assert.Equal(t, []string{"x := 1\n", "y := 2\n"}, nb.Cells[1].Source)

	assert.Equal(t, []string{"z := 3\n"}, nb.Cells[2].Source)

	assert.Equal(t, 4, nb.NBFormat)
	assert.Equal(t, 4, nb.NBFormatMinor)
	kernel, ok := nb.Metadata["kernelspec"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gophernotes", kernel["name"])
	assert.NotContains(t, nb.Metadata, "celltoolbar")
}

func TestNotebook_EscapesQuotes(t *testing.T) {
	out := renderLines(t, KindNotebook, `fmt.Println("hi \ there")`)

	assert.Contains(t, string(out), `"fmt.Println(\"hi \\ there\")\n"`)
	nb := decodeNotebook(t, out)
	require.Len(t, nb.Cells, 1)
	assert.Equal(t, []string{"fmt.Println(\"hi \\ there\")\n"}, nb.Cells[0].Source)
}

func TestNotebook_NoHTMLEscaping(t *testing.T) {
	out := renderLines(t, KindNotebook, "if a < b && c > d {")
	assert.Contains(t, string(out), "if a < b && c > d {")
}

func TestNotebook_EmptySections(t *testing.T) {
	nb := decodeNotebook(t, renderLines(t, KindNotebook, "// # One", "// # Two", "body"))

	require.Len(t, nb.Cells, 3)
	assert.Equal(t, []string{"# One\n"}, nb.Cells[0].Source)
	assert.Equal(t, []string{"# Two\n"}, nb.Cells[1].Source)
	assert.Equal(t, "code", nb.Cells[2].CellType)
	assert.Equal(t, []string{"body\n"}, nb.Cells[2].Source)
}

func TestNotebook_EmptyDocument(t *testing.T) {
	nb := decodeNotebook(t, renderLines(t, KindNotebook))
	assert.NotNil(t, nb.Cells)
	assert.Empty(t, nb.Cells)
}

func TestNotebook_UnfinishedDocument(t *testing.T) {
	n := NewNotebook(DefaultOptions())
	n.StartDocument()
	_, err := n.Bytes()
	assert.ErrorIs(t, err, ErrUnfinished)
}

func TestSlideshow(t *testing.T) {
	nb := decodeNotebook(t, renderLines(t, KindSlideshow,
		"// # First",
		"// intro",
		"a := 1",
		"b := 2",
		"// more prose",
		"// # Second",
		"c := 3",
	))

	require.Len(t, nb.Cells, 5)

	require.NotNil(t, nb.Cells[0].Metadata.Slideshow)
	assert.Equal(t, "slide", nb.Cells[0].Metadata.Slideshow.SlideType)
	assert.Equal(t, []string{"# First\n", "intro\n"}, nb.Cells[0].Source)

	assert.Equal(t, []string{"a := 1\n", "b := 2"}, nb.Cells[1].Source)

	assert.Equal(t, "markdown", nb.Cells[2].CellType)
	assert.Nil(t, nb.Cells[2].Metadata.Slideshow, "prose after code does not start a slide")
	assert.Equal(t, []string{"more prose\n"}, nb.Cells[2].Source)

	require.NotNil(t, nb.Cells[3].Metadata.Slideshow)
	assert.Equal(t, []string{"# Second\n"}, nb.Cells[3].Source)

	assert.Equal(t, []string{"c := 3"}, nb.Cells[4].Source)

	assert.Equal(t, "Slideshow", nb.Metadata["celltoolbar"])
	assert.Contains(t, nb.Metadata, "rise")
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Notebook ")
	require.NoError(t, err)
	assert.Equal(t, KindNotebook, k)

	_, err = ParseKind("pdf")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = New(Kind("pdf"), DefaultOptions())
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKind_Extension(t *testing.T) {
	assert.Equal(t, ".md", KindMarkdown.Extension())
	assert.Equal(t, ".ipynb", KindNotebook.Extension())
	assert.Equal(t, ".ipynb", KindSlideshow.Extension())
}
