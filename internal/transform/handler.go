// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import "fmt"

// Handler receives the events produced by a Stream. Events arrive in a
// well-nested order: a text or code run is always closed before a section
// closes, and at most one run and one section are open at a time.
type Handler interface {
	StartDocument()
	EndDocument()

	// StartSection opens a section. title is the cleaned section line.
	StartSection(title string)
	EndSection()

	StartText()
	EndText()
	StartCode()
	EndCode()

	// Line delivers one cleaned line. Blank lines may arrive while no run
	// is open.
	Line(kind Kind, text string)
}

// NopHandler implements every Handler hook as a no-op. Embed it to
// override only the hooks a handler needs.
type NopHandler struct{}

func (NopHandler) StartDocument()      {}
func (NopHandler) EndDocument()        {}
func (NopHandler) StartSection(string) {}
func (NopHandler) EndSection()         {}
func (NopHandler) StartText()          {}
func (NopHandler) EndText()            {}
func (NopHandler) StartCode()          {}
func (NopHandler) EndCode()            {}
func (NopHandler) Line(Kind, string)   {}

// Recorder captures events as short strings, one per event, for
// debugging and tests.
type Recorder struct {
	Events []string
}

func (r *Recorder) add(format string, args ...any) {
	r.Events = append(r.Events, fmt.Sprintf(format, args...))
}

func (r *Recorder) StartDocument()            { r.add("start-document") }
func (r *Recorder) EndDocument()              { r.add("end-document") }
func (r *Recorder) StartSection(title string) { r.add("start-section %q", title) }
func (r *Recorder) EndSection()               { r.add("end-section") }
func (r *Recorder) StartText()                { r.add("start-text") }
func (r *Recorder) EndText()                  { r.add("end-text") }
func (r *Recorder) StartCode()                { r.add("start-code") }
func (r *Recorder) EndCode()                  { r.add("end-code") }

func (r *Recorder) Line(kind Kind, text string) {
	r.add("line %s %q", kind, text)
}
