// Package render turns assembled conversation buckets into styled block
// sequences and writes them out in one of the supported document formats.
package render

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/harrisonmb/slackexport/internal/convo"
	"github.com/harrisonmb/slackexport/internal/message"
	"github.com/harrisonmb/slackexport/internal/structures"
)

// Style classifies a block for the output formatter.
type Style int

const (
	SDateHeading Style = iota
	SConvoHeading
	SMsgInfo
	SMsgBody
)

// Block is one styled line of the output document.
type Block struct {
	Style Style
	Text  string
}

// Document is the full block sequence for one conversation kind.
type Document struct {
	Kind   convo.Kind
	Blocks []Block
}

const childIndent = "&nbsp;&nbsp;&nbsp;&nbsp; "

// Build flattens the date buckets of one kind into the document block
// sequence: a heading per date, a heading per conversation, then an info
// line and a body line per message.
func Build(kind convo.Kind, buckets []*convo.DateBucket) Document {
	doc := Document{Kind: kind}
	for _, bucket := range buckets {
		doc.Blocks = append(doc.Blocks, Block{SDateHeading, bucket.Date + " - " + kind.Title()})
		for _, c := range bucket.Conversations {
			doc.Blocks = append(doc.Blocks, Block{SConvoHeading, conversationHeading(c)})
			for _, m := range c.Messages() {
				doc.Blocks = append(doc.Blocks,
					Block{SMsgInfo, infoLine(m)},
					Block{SMsgBody, bodyLine(m)},
				)
			}
		}
	}
	return doc
}

// conversationHeading names the conversation: its participants for direct
// message kinds, the channel name otherwise, followed by the time of its
// first message.
func conversationHeading(c *convo.Conversation) string {
	name := c.ID
	if c.Kind.DirectLike() {
		var names []string
		for _, p := range c.Participants() {
			names = append(names, p.Display())
		}
		collate.New(language.English, collate.Loose).SortStrings(names)
		name = strings.Join(names, ", ")
	}
	return "Conversation between: " + name + " @ " + c.Time
}

// infoLine describes the sender and timing of one message, prefixed with
// the edit/delete/original markers in effect and indented when the message
// is a thread reply.
func infoLine(m *message.Message) string {
	var sb strings.Builder
	if m.IsThreadChild() {
		sb.WriteString(childIndent + "[THREAD RES.] ")
	}
	if m.IsDeleted() {
		sb.WriteString("[DELETED] ")
	} else if m.IsEdited() {
		sb.WriteString("[EDITED] ")
	}
	if m.IsOriginal() {
		sb.WriteString("[ORIGINAL] ")
	}
	sb.WriteString(structures.NVL(m.SenderName(), m.SenderHandle(), "Unknown"))
	if contact := structures.NVL(m.SenderEmail(), m.SenderHandle()); contact != "" {
		sb.WriteString(", " + contact)
	}
	sb.WriteString(", " + string(m.SenderStatus()))
	sb.WriteString(", " + m.Clock() + ", " + m.TZ())
	return sb.String()
}

func bodyLine(m *message.Message) string {
	body := "» " + m.Text() + "<br/><br/>"
	if m.IsThreadChild() {
		body = childIndent + body
	}
	return body
}
