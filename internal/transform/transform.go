// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform classifies the lines of an annotated script and turns
// them into a stream of document, section, run and line events.
//
// A script mixes prose comments ("// text"), section headers ("// # Title"),
// blank lines and code. The Stream groups consecutive prose lines into text
// runs and consecutive code lines into code runs, wraps the text run that
// follows a section header into a section, and drops the leading title
// comment block of the file.
package transform

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type headerPhase int

const (
	headerStart headerPhase = iota // nothing seen yet
	headerText                     // dropping the leading comment lines
	headerBlank                    // dropping the blank lines after them
	headerDone
)

// Stream is a single-pass transformer. Feed it lines in order, then Close
// it. A Stream must not be reused after Close.
type Stream struct {
	syntax Syntax
	h      Handler

	started bool
	closed  bool
	header  headerPhase
	run     Kind // Blank when no run is open
	section bool

	// pending holds blank lines seen inside a text run. They extend the run
	// when more text follows and are emitted after the run otherwise.
	pending []string
}

// NewStream returns a Stream that classifies with syntax and reports to h.
func NewStream(syntax Syntax, h Handler) *Stream {
	return &Stream{syntax: syntax, h: h, run: Blank}
}

func (s *Stream) begin() {
	if !s.started {
		s.started = true
		s.h.StartDocument()
	}
}

// Feed processes one line. Trailing carriage returns are ignored.
func (s *Stream) Feed(line string) {
	s.begin()
	line = strings.TrimSuffix(line, "\r")
	kind := s.syntax.Classify(line)

	if s.skipHeader(kind) {
		return
	}

	switch kind {
	case Blank:
		switch s.run {
		case Code:
			s.closeRun()
			s.h.Line(Blank, line)
		case Text:
			s.pending = append(s.pending, line)
		default:
			s.h.Line(Blank, line)
		}

	case Section:
		s.closeRun()
		if s.section {
			s.h.EndSection()
		}
		s.section = true
		s.h.StartSection(s.syntax.Clean(Section, line))
		s.h.StartText()
		s.run = Text

	case Text:
		if s.run == Code {
			s.closeRun()
		}
		if s.run == Text {
			s.flushPending()
		} else {
			s.h.StartText()
			s.run = Text
		}
		s.h.Line(Text, s.syntax.Clean(Text, line))

	case Code:
		if s.run == Text {
			s.closeRun()
		}
		if s.run != Code {
			s.h.StartCode()
			s.run = Code
		}
		s.h.Line(Code, line)
	}
}

// skipHeader reports whether the line belongs to the leading title block:
// the prose lines at the very start of the file and the blank lines that
// directly follow them.
func (s *Stream) skipHeader(kind Kind) bool {
	switch s.header {
	case headerStart:
		if kind == Text {
			s.header = headerText
			return true
		}
	case headerText:
		if kind == Text {
			return true
		}
		if kind == Blank {
			s.header = headerBlank
			return true
		}
	case headerBlank:
		if kind == Blank {
			return true
		}
	case headerDone:
		return false
	}
	s.header = headerDone
	return false
}

func (s *Stream) closeRun() {
	switch s.run {
	case Text:
		s.h.EndText()
	case Code:
		s.h.EndCode()
	}
	s.run = Blank
	s.flushPending()
}

func (s *Stream) flushPending() {
	for _, line := range s.pending {
		s.h.Line(Blank, line)
	}
	s.pending = s.pending[:0]
}

// Close ends the document: it closes any open run and section and emits
// the end-of-document event. Calling Close more than once has no effect.
func (s *Stream) Close() {
	if s.closed {
		return
	}
	s.begin()
	s.closed = true
	s.closeRun()
	if s.section {
		s.section = false
		s.h.EndSection()
	}
	s.h.EndDocument()
}

// Transform runs lines through a Stream using DefaultSyntax.
func Transform(lines []string, h Handler) {
	TransformWith(DefaultSyntax, lines, h)
}

// TransformWith runs lines through a Stream using syntax.
func TransformWith(syntax Syntax, lines []string, h Handler) {
	s := NewStream(syntax, h)
	for _, line := range lines {
		s.Feed(line)
	}
	s.Close()
}

// TransformReader reads newline-delimited text from r and runs it through a
// Stream. The document is closed only when r was read completely; a read
// error is returned without emitting the end-of-document event.
func TransformReader(syntax Syntax, r io.Reader, h Handler) error {
	s := NewStream(syntax, h)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		s.Feed(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	s.Close()
	return nil
}
