package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/enescakir/emoji"
)

func init() {
	converters[CText] = NewText
}

// Text renders the document as plain text: the inline HTML markup of the
// block text is folded back to whitespace and emoji shortcodes are replaced
// with their unicode forms.
type Text struct{}

func NewText() Renderer { return &Text{} }

func (*Text) Extension() string { return ".txt" }

var plainRepl = strings.NewReplacer(
	"<br/>", "\n",
	"&nbsp;", " ",
)

func (*Text) Document(w io.Writer, doc Document) error {
	buf := bufio.NewWriter(w)

	underline := func(s, c string) {
		buf.WriteString(s + "\n" + strings.Repeat(c, len(s)) + "\n\n")
	}
	underline(doc.Kind.Title(), "=")
	for _, b := range doc.Blocks {
		text := emoji.Parse(plainRepl.Replace(b.Text))
		switch b.Style {
		case SDateHeading:
			underline(text, "=")
		case SConvoHeading:
			underline(text, "-")
		case SMsgInfo:
			buf.WriteString(text + "\n")
		default:
			buf.WriteString(text + "\n")
		}
	}
	return buf.Flush()
}
