// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want Kind
	}{
		{"// # Intro", Section},
		{"// #", Section},
		{"// ## Deeper", Section},
		{"// hello", Text},
		{"// ", Text},
		{"", Blank},
		{"   ", Blank},
		{"\t \t", Blank},
		{"//no space", Code},
		{"//", Code},
		{"x := 1", Code},
		{"  // indented comment", Code},
		{"#// not a comment", Code},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := Classify(tt.line)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Classify(tt.line), "classification must be deterministic")
		})
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "# Intro", Clean(Section, "// # Intro"))
	assert.Equal(t, "hello", Clean(Text, "// hello"))
	assert.Equal(t, "", Clean(Text, "// "))
	assert.Equal(t, "  x := 1", Clean(Code, "  x := 1"))
	assert.Equal(t, "   ", Clean(Blank, "   "))
}

func TestSyntax_Custom(t *testing.T) {
	s, err := NewSyntax("-- ", "=")
	require.NoError(t, err)

	assert.Equal(t, Section, s.Classify("-- = Title"))
	assert.Equal(t, Text, s.Classify("-- prose"))
	assert.Equal(t, Code, s.Classify("// not ours"))
	assert.Equal(t, "= Title", s.Clean(Section, "-- = Title"))
}

func TestNewSyntax_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		marker string
		sigil  string
		want   error
	}{
		{"empty marker", "", "#", ErrMarker},
		{"blank marker", "  ", "#", ErrMarker},
		{"marker without trailing space", "//", "#", ErrMarker},
		{"empty sigil", "// ", "", ErrSigil},
		{"sigil with space", "// ", "# ", ErrSigil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSyntax(tt.marker, tt.sigil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "blank", Blank.String())
	assert.Equal(t, "text", Text.String())
	assert.Equal(t, "section", Section.String())
	assert.Equal(t, "code", Code.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
