// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a single input line.
type Kind int

const (
	// Blank is an empty or whitespace-only line.
	Blank Kind = iota
	// Text is a prose comment line.
	Text
	// Section is a comment line that opens a titled section.
	Section
	// Code is any other line.
	Code
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Text:
		return "text"
	case Section:
		return "section"
	case Code:
		return "code"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Syntax holds the literal prefixes that mark comment lines. A text line
// starts with Marker; a section line starts with Marker followed by Sigil.
type Syntax struct {
	Marker string
	Sigil  string
}

// DefaultSyntax recognizes "// " prose and "// #" section headers.
var DefaultSyntax = Syntax{Marker: "// ", Sigil: "#"}

var (
	// ErrMarker is returned for a comment marker that is empty or does not
	// end with a space.
	ErrMarker = errors.New("comment marker must be non-empty and end with a space")
	// ErrSigil is returned for an empty or whitespace section sigil.
	ErrSigil = errors.New("section sigil must be non-empty and contain no whitespace")
)

// NewSyntax validates marker and sigil and returns the corresponding Syntax.
// The section prefix is always a strict extension of the text prefix.
func NewSyntax(marker, sigil string) (Syntax, error) {
	if strings.TrimSpace(marker) == "" || !strings.HasSuffix(marker, " ") {
		return Syntax{}, fmt.Errorf("%w: %q", ErrMarker, marker)
	}
	if sigil == "" || strings.ContainsAny(sigil, " \t") {
		return Syntax{}, fmt.Errorf("%w: %q", ErrSigil, sigil)
	}
	return Syntax{Marker: marker, Sigil: sigil}, nil
}

// Classify returns the kind of line. Every string maps to exactly one kind.
func (s Syntax) Classify(line string) Kind {
	switch {
	case strings.HasPrefix(line, s.Marker+s.Sigil):
		return Section
	case strings.HasPrefix(line, s.Marker):
		return Text
	case strings.TrimSpace(line) == "":
		return Blank
	}
	return Code
}

// Clean strips the comment marker from text and section lines. Blank and
// code lines are returned unchanged.
func (s Syntax) Clean(kind Kind, line string) string {
	switch kind {
	case Text, Section:
		return strings.TrimPrefix(line, s.Marker)
	}
	return line
}

// Classify classifies line with DefaultSyntax.
func Classify(line string) Kind {
	return DefaultSyntax.Classify(line)
}

// Clean cleans line with DefaultSyntax.
func Clean(kind Kind, line string) string {
	return DefaultSyntax.Clean(kind, line)
}
