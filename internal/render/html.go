package render

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

func init() {
	converters[CHTML] = NewHTML
}

// HTML renders the document through a markdown pipeline: headings become
// heading elements, info lines are emphasized, and the inline <br/> markup
// of the block text passes through untouched.
type HTML struct {
	md goldmark.Markdown
}

func NewHTML() Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, emoji.Emoji),
		goldmark.WithRendererOptions(
			ghtml.WithHardWraps(),
			ghtml.WithXHTML(),
			ghtml.WithUnsafe(),
		),
	)
	return &HTML{md: md}
}

func (h *HTML) Extension() string { return ".html" }

func (h *HTML) Document(w io.Writer, doc Document) error {
	var sb strings.Builder
	sb.WriteString("# " + doc.Kind.Title() + "\n\n")
	for _, b := range doc.Blocks {
		switch b.Style {
		case SDateHeading:
			sb.WriteString("## " + b.Text + "\n\n")
		case SConvoHeading:
			sb.WriteString("### " + b.Text + "\n\n")
		case SMsgInfo:
			sb.WriteString("**" + b.Text + "**\n\n")
		default:
			sb.WriteString(b.Text + "\n\n")
		}
	}
	return h.md.Convert([]byte(sb.String()), w)
}
