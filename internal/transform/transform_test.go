// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(lines ...string) []string {
	var r Recorder
	Transform(lines, &r)
	return r.Events
}

func TestTransform_Events(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "empty document",
			lines: nil,
			want:  []string{"start-document", "end-document"},
		},
		{
			name:  "leading header and blank dropped",
			lines: []string{"// Title", "", "// # Intro", "// Hello", "x = 1", ""},
			want: []string{
				"start-document",
				`start-section "# Intro"`,
				"start-text",
				`line text "Hello"`,
				"end-text",
				"start-code",
				`line code "x = 1"`,
				"end-code",
				`line blank ""`,
				"end-section",
				"end-document",
			},
		},
		{
			name:  "consecutive sections",
			lines: []string{"// # One", "// # Two", "body"},
			want: []string{
				"start-document",
				`start-section "# One"`,
				"start-text",
				"end-text",
				"end-section",
				`start-section "# Two"`,
				"start-text",
				"end-text",
				"start-code",
				`line code "body"`,
				"end-code",
				"end-section",
				"end-document",
			},
		},
		{
			name:  "section closes previous section",
			lines: []string{"x", "// # A", "// a", "// # B", "// b"},
			want: []string{
				"start-document",
				"start-code",
				`line code "x"`,
				"end-code",
				`start-section "# A"`,
				"start-text",
				`line text "a"`,
				"end-text",
				"end-section",
				`start-section "# B"`,
				"start-text",
				`line text "b"`,
				"end-text",
				"end-section",
				"end-document",
			},
		},
		{
			name:  "blank inside text run extends it",
			lines: []string{"x", "// one", "", "// two"},
			want: []string{
				"start-document",
				"start-code",
				`line code "x"`,
				"end-code",
				"start-text",
				`line text "one"`,
				`line blank ""`,
				`line text "two"`,
				"end-text",
				"end-document",
			},
		},
		{
			name:  "blank after text run before code",
			lines: []string{"x", "// one", "", "y"},
			want: []string{
				"start-document",
				"start-code",
				`line code "x"`,
				"end-code",
				"start-text",
				`line text "one"`,
				"end-text",
				`line blank ""`,
				"start-code",
				`line code "y"`,
				"end-code",
				"end-document",
			},
		},
		{
			name:  "blank splits code runs",
			lines: []string{"a", "", "b"},
			want: []string{
				"start-document",
				"start-code",
				`line code "a"`,
				"end-code",
				`line blank ""`,
				"start-code",
				`line code "b"`,
				"end-code",
				"end-document",
			},
		},
		{
			name:  "header followed directly by code",
			lines: []string{"// Title", "// subtitle", "a"},
			want: []string{
				"start-document",
				"start-code",
				`line code "a"`,
				"end-code",
				"end-document",
			},
		},
		{
			name:  "leading blank disables header stripping",
			lines: []string{"", "// kept"},
			want: []string{
				"start-document",
				`line blank ""`,
				"start-text",
				`line text "kept"`,
				"end-text",
				"end-document",
			},
		},
		{
			name:  "blank right after a section heading",
			lines: []string{"a", "// # S", "", "b"},
			want: []string{
				"start-document",
				"start-code",
				`line code "a"`,
				"end-code",
				`start-section "# S"`,
				"start-text",
				"end-text",
				`line blank ""`,
				"start-code",
				`line code "b"`,
				"end-code",
				"end-section",
				"end-document",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, record(tt.lines...))
		})
	}
}

func TestTransform_LeadingHeaderLeavesNoTrace(t *testing.T) {
	header := []string{"// Secret title", "// by someone", "", "   "}
	body := []string{"x := 1", "// note", "y := 2"}

	events := record(append(header, body...)...)
	joined := strings.Join(events, "\n")
	assert.NotContains(t, joined, "Secret title")
	assert.NotContains(t, joined, "by someone")
	assert.NotContains(t, joined, `line blank "   "`)
	assert.Equal(t, "start-code", events[1])
}

func TestTransform_Balanced(t *testing.T) {
	inputs := [][]string{
		{"// # A", "", "", "// t", "c", "", "// # B"},
		{"c", "// t", "// # S", "c", "c", "", "", "// u"},
		{"// h", "// # S", "// # T", "", "// x"},
		{"", "", ""},
	}

	for i, lines := range inputs {
		var runs, sections int
		var r Recorder
		Transform(lines, &r)
		for _, e := range r.Events {
			switch {
			case e == "start-text", e == "start-code":
				runs++
			case e == "end-text", e == "end-code":
				runs--
			case strings.HasPrefix(e, "start-section"):
				sections++
			case e == "end-section":
				sections--
			}
			require.GreaterOrEqual(t, runs, 0, "input %d", i)
			require.LessOrEqual(t, runs, 1, "input %d: more than one run open", i)
			require.LessOrEqual(t, sections, 1, "input %d: more than one section open", i)
		}
		assert.Zero(t, runs, "input %d", i)
		assert.Zero(t, sections, "input %d", i)
	}
}

func TestStream_CloseTwice(t *testing.T) {
	var r Recorder
	s := NewStream(DefaultSyntax, &r)
	s.Feed("x")
	s.Close()
	s.Close()
	assert.Equal(t, []string{"start-document", "start-code", `line code "x"`, "end-code", "end-document"}, r.Events)
}

func TestTransformReader(t *testing.T) {
	var r Recorder
	err := TransformReader(DefaultSyntax, strings.NewReader("// T\r\n\r\nx\r\n"), &r)
	require.NoError(t, err)
	assert.Equal(t, []string{"start-document", "start-code", `line code "x"`, "end-code", "end-document"}, r.Events)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestTransformReader_Error(t *testing.T) {
	var r Recorder
	err := TransformReader(DefaultSyntax, failingReader{}, &r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
	assert.NotContains(t, r.Events, "end-document")
}

type countingHandler struct {
	NopHandler
	lines int
}

func (c *countingHandler) Line(Kind, string) { c.lines++ }

func TestNopHandler_Embedding(t *testing.T) {
	var h countingHandler
	Transform([]string{"a", "", "// b", "// # c"}, &h)
	assert.Equal(t, 3, h.lines)
}
