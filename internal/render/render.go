package render

import (
	"fmt"
	"io"
	"strings"
)

// Type is the output document format.
type Type int

const (
	CUnknown Type = iota // Unknown renderer type
	CText                // CText is the plain text renderer
	CHTML                // CHTML is the HTML renderer
)

var typeNames = []string{"unknown", "text", "html"}

var Descriptions = map[Type]string{
	CText: "Plain text format",
	CHTML: "HTML format",
}

// Renderer writes a document in one concrete output format.
type Renderer interface {
	// Document writes the document to the writer.
	Document(w io.Writer, doc Document) error
	// Extension returns the file extension for the renderer.
	Extension() string
}

var converters = map[Type]func() Renderer{}

func (e Type) String() string {
	if int(e) < 0 || len(typeNames) <= int(e) {
		return typeNames[CUnknown]
	}
	return typeNames[e]
}

// Set implements flag.Value.
func (e *Type) Set(v string) error {
	for i, name := range typeNames {
		if strings.EqualFold(name, v) && Type(i) != CUnknown {
			*e = Type(i)
			return nil
		}
	}
	return fmt.Errorf("unknown format: %s", v)
}

// NewRenderer returns a fresh renderer instance for the type.
func (e Type) NewRenderer() (Renderer, bool) {
	fn, ok := converters[e]
	if !ok {
		return nil, false
	}
	return fn(), true
}
