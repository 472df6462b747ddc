// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates what a batch run did with one script for one
// output kind.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
)

// Conversion records the outcome of converting one script into one output
// kind.
type Conversion struct {
	// Index is the position of the script in the sorted listing.
	Index int `json:"index" yaml:"index"`

	// Kind is the output kind (markdown, notebook, slideshow).
	Kind string `json:"kind" yaml:"kind"`

	// Source is the path of the script.
	Source string `json:"source" yaml:"source"`

	// Dest is the path of the written document.
	Dest string `json:"dest" yaml:"dest"`

	// Title is the display name used in the index listing.
	Title string `json:"title" yaml:"title"`

	// Status tells whether the document was written or left unchanged.
	Status ConversionStatus `json:"status" yaml:"status"`
}
