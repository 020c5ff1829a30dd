package message

import (
	"html"
	"regexp"

	"github.com/rusq/slack"

	"github.com/harrisonmb/slackexport/internal/identity"
	"github.com/harrisonmb/slackexport/internal/structures"
)

// NoText is the placeholder for records with an empty or absent text body.
const NoText = "[NO TEXT]"

const fileAttached = "<br/> » [FILE ATTACHED]"

// Text returns the display text of the message: the primary body with
// file/attachment annotations appended, mention tokens rewritten to
// human-readable form, and, when a target-user filter is in effect, the
// reaction credit.
func (m *Message) Text() string {
	return m.text.get(func() string {
		r := m.raw
		text := structures.FirstNonEmpty(
			r.text,
			r.Original.text,
			r.Wrapped.text,
		)
		if text == "" {
			text = NoText
		}
		if r.firstFile() != nil || r.Original.firstFile() != nil {
			text += m.fileAnnotation()
		}
		if len(r.Attachments) > 0 {
			text += attachmentAnnotation(r.Attachments[0])
		}
		text = html.UnescapeString(rewriteMentions(text, m.conv.Roster()))
		if target, ok := m.conv.Target(); ok && m.reactedBy(target) {
			text += "<br/> » [Emoji Reaction added by @" + target.Display() + "]"
		}
		return text
	})
}

// fileAnnotation names the first attached file when a name, title or ID is
// discoverable in any record shape, and credits the uploader when the file
// carries the uploader ID.
func (m *Message) fileAnnotation() string {
	r := m.raw
	name := structures.FirstNonEmpty(
		func() string { return fileName(r.firstFile()) },
		func() string { return fileName(r.Original.firstFile()) },
		func() string { return fileName(r.Wrapped.firstFile()) },
	)
	ann := fileAttached
	if name != "" {
		ann += "-[" + name + "]"
	}
	if f := r.firstFile(); f != nil && f.User != "" {
		uploader := m.conv.Roster().Resolve(identity.Hints{ID: f.User})
		ann += "-[File originally posted by @" + uploader.Display() + "]"
	}
	return ann
}

func fileName(f *slack.File) string {
	if f == nil {
		return ""
	}
	return structures.NVL(f.Name, f.Title, f.ID)
}

func attachmentAnnotation(a slack.Attachment) string {
	ann := fileAttached
	if s := structures.NVL(a.Fallback, a.ImageURL); s != "" {
		ann += "-[" + s + "]"
	}
	return ann
}

// reactedBy reports whether the given user reacted to the message.
func (m *Message) reactedBy(target identity.Identity) bool {
	for _, reaction := range m.raw.Reactions {
		for _, uid := range reaction.Users {
			if uid == target.ID {
				return true
			}
		}
	}
	return false
}

// Slack encodes mentions, links and commands as <...> tokens, documented at
// https://api.slack.com/reference/surfaces/formatting#retrieving-messages.
var (
	reUserMention = regexp.MustCompile(`<@([A-Z0-9]+)(?:\|[^>]*)?>`)
	reLink        = regexp.MustCompile(`<(https?://[^|>]+)(?:\|([^>]*))?>`)
	reMailto      = regexp.MustCompile(`<mailto:([^|>]+)(?:\|([^>]*))?>`)
	reUserGroup   = regexp.MustCompile(`<!subteam\^[A-Z0-9]+(?:\|@?([^>]*))?>`)
	reSpecial     = regexp.MustCompile(`<!([a-z][a-z_]*)(?:\|[^>]*)?>`)
)

// rewriteMentions rewrites all inline mention tokens to human-readable form,
// resolving embedded user IDs through the roster.
func rewriteMentions(text string, roster identity.Roster) string {
	text = reUserMention.ReplaceAllStringFunc(text, func(tok string) string {
		id := reUserMention.FindStringSubmatch(tok)[1]
		if who := roster.Resolve(identity.Hints{ID: id}); who.Name != "" {
			return "@" + who.Name
		}
		return tok
	})
	text = reLink.ReplaceAllStringFunc(text, func(tok string) string {
		mm := reLink.FindStringSubmatch(tok)
		return structures.NVL(mm[2], mm[1])
	})
	text = reMailto.ReplaceAllStringFunc(text, func(tok string) string {
		mm := reMailto.FindStringSubmatch(tok)
		return structures.NVL(mm[2], mm[1])
	})
	text = reUserGroup.ReplaceAllStringFunc(text, func(tok string) string {
		if label := reUserGroup.FindStringSubmatch(tok)[1]; label != "" {
			return "@" + label
		}
		return tok
	})
	text = reSpecial.ReplaceAllString(text, "@$1")
	return text
}
