// Package message derives normalized message views from raw export records.
//
// Export files are fragmented and inconsistent: the sender may be identified
// by any of half a dozen fields, the payload of an edited or deleted message
// hides in a nested sub-record, and thread linkage is timestamp-only.  Every
// derived field is an explicit fallback chain over those shapes, ending in a
// defined placeholder, so one malformed record never aborts an export.
package message

import (
	"time"

	"github.com/harrisonmb/slackexport/internal/identity"
	"github.com/harrisonmb/slackexport/internal/structures"
)

// Context is the owning conversation as seen by the normalizer.  The
// participant set evolves while the conversation is being assembled, which is
// why derived fields are memoized per message instance and not globally.
type Context interface {
	// Participants returns the current participant set.
	Participants() []identity.Identity
	// Roster returns the archive user roster.
	Roster() identity.Roster
	// Target returns the requested target user, if an activity filter is
	// set.
	Target() (identity.Identity, bool)
	// Location returns the time zone documents are rendered in.
	Location() *time.Location
}

// Message is the normalized view over one raw record within one
// conversation.  All derived fields are computed on first access and cached
// for the life of the record.
type Message struct {
	raw  *RawRecord
	conv Context

	senderID     memo[string]
	recordID     memo[string]
	senderHandle memo[string]
	senderName   memo[string]
	senderEmail  memo[string]
	senderStatus memo[identity.Status]
	text         memo[string]
	slackTS      memo[string]
	datetime     memo[time.Time]
	inThread     memo[bool]
	threadTS     memo[string]
	anchorHint   memo[string]
}

// New creates a normalized view over the raw record within the conversation
// context.
func New(raw *RawRecord, conv Context) *Message {
	return &Message{raw: raw, conv: conv}
}

// SenderHandle returns the sender's login name, when any record shape
// carries one.
func (m *Message) SenderHandle() string {
	return m.senderHandle.get(func() string {
		r := m.raw
		return structures.FirstNonEmpty(
			r.profileHandle,
			r.username,
			r.Original.username,
			r.Wrapped.username,
		)
	})
}

// SenderID returns the sender's user or bot ID.  Participants are searched
// first by handle; the raw record fields are the fallback.
func (m *Message) SenderID() string {
	return m.senderID.get(func() string {
		if handle := m.SenderHandle(); handle != "" {
			for _, p := range m.conv.Participants() {
				if p.Handle == handle {
					return p.ID
				}
			}
		}
		return m.RecordSenderID()
	})
}

// RecordSenderID returns the sender's user or bot ID as carried by the
// record itself, without consulting the participant set.  Participant
// repair compares this against the participant entries.
func (m *Message) RecordSenderID() string {
	return m.recordID.get(func() string {
		r := m.raw
		return structures.FirstNonEmpty(
			r.user,
			r.botID,
			r.Original.user,
			r.Original.botID,
			r.Wrapped.user,
			r.Wrapped.botID,
		)
	})
}

// SenderName returns the sender's full name, preferring the resolved
// participant entry over profile sidecars and login names.
func (m *Message) SenderName() string {
	return m.senderName.get(func() string {
		id := m.SenderID()
		if id != "" {
			for _, p := range m.conv.Participants() {
				if p.ID == id && p.Name != "" {
					return p.Name
				}
			}
		}
		if name := structures.NVL(m.raw.realName(), m.raw.Original.realName()); name != "" {
			return name
		}
		// a bare username is better than nothing; promote it to a full
		// name if a participant goes by it.
		for _, username := range []string{m.raw.username(), m.raw.Original.username()} {
			if username == "" {
				continue
			}
			for _, p := range m.conv.Participants() {
				if p.Handle == username && p.Name != "" {
					return p.Name
				}
			}
			return username
		}
		return ""
	})
}

// SenderEmail returns the sender's email, if the sender resolves to a
// participant that has one.
func (m *Message) SenderEmail() string {
	return m.senderEmail.get(func() string {
		id := m.SenderID()
		for _, p := range m.conv.Participants() {
			if p.ID == id {
				return p.Email
			}
		}
		return ""
	})
}

// SenderStatus returns the workspace standing of the sender.
func (m *Message) SenderStatus() identity.Status {
	return m.senderStatus.get(func() identity.Status {
		for _, p := range m.conv.Participants() {
			if (m.SenderID() != "" && m.SenderID() == p.ID) ||
				(m.SenderName() != "" && m.SenderName() == p.Name) ||
				(m.SenderHandle() != "" && m.SenderHandle() == p.Handle) {
				return p.Status
			}
		}
		return m.conv.Roster().Resolve(m.SenderHints()).Status
	})
}

// SenderHints returns the partial sender fields for the resolver.
func (m *Message) SenderHints() identity.Hints {
	return identity.Hints{ID: m.SenderID(), Handle: m.SenderHandle()}
}

// SlackTS returns the effective slack timestamp of the message.  Selection
// priority is original over edited over raw, so that edit and deletion
// wrappers sort at the original posting time.
func (m *Message) SlackTS() string {
	return m.slackTS.get(func() string {
		if m.IsOriginal() {
			if ts := m.raw.Original.ts(); ts != "" {
				return ts
			}
		}
		if m.IsEdited() {
			if ts := m.EditedTS(); ts != "" {
				return ts
			}
		}
		if ts := m.raw.Wrapped.ts(); ts != "" {
			return ts
		}
		return m.raw.Timestamp
	})
}

// Datetime returns the effective timestamp in the conversation's time zone.
// A record with no parseable timestamp yields the zero time.
func (m *Message) Datetime() time.Time {
	return m.datetime.get(func() time.Time {
		ts, err := structures.ParseSlackTS(m.SlackTS())
		if err != nil {
			return time.Time{}
		}
		return ts.In(m.conv.Location())
	})
}

// Date returns the formatted date of the message.
func (m *Message) Date() string {
	if m.Datetime().IsZero() {
		return ""
	}
	return m.Datetime().Format("2006-01-02")
}

// Clock returns the formatted wall-clock time of the message.
func (m *Message) Clock() string {
	if m.Datetime().IsZero() {
		return ""
	}
	return m.Datetime().Format("15:04:05")
}

// TZ returns the abbreviated time zone of the message.
func (m *Message) TZ() string {
	if m.Datetime().IsZero() {
		return ""
	}
	return m.Datetime().Format("MST")
}

// InThread reports whether the record belongs to a thread.
func (m *Message) InThread() bool {
	return m.inThread.get(func() bool {
		return m.raw.ReplyCount > 0 ||
			m.raw.ThreadTimestamp != "" ||
			m.raw.Wrapped.threadTS() != ""
	})
}

// ThreadTS returns the thread root timestamp, empty when not in a thread.
func (m *Message) ThreadTS() string {
	return m.threadTS.get(func() string {
		return structures.NVL(m.raw.ThreadTimestamp, m.raw.Wrapped.threadTS())
	})
}

// IsThreadParent reports whether this message starts a thread: its own
// effective timestamp equals the thread root timestamp.
func (m *Message) IsThreadParent() bool {
	return m.InThread() && m.SlackTS() == m.ThreadTS()
}

// IsThreadChild reports whether this message is a reply within a thread.
func (m *Message) IsThreadChild() bool {
	return m.InThread() && !m.IsThreadParent()
}

// AnchorHint returns the sender ID of the thread parent, when the record
// carries it.  When it does not, the assembler resolves the anchor with a
// full pass over the conversation's sorted messages.
func (m *Message) AnchorHint() string {
	return m.anchorHint.get(func() string {
		if !m.IsThreadChild() {
			return ""
		}
		return structures.FirstNonEmpty(
			m.raw.parentUserID,
			m.raw.Wrapped.parentUserID,
			m.raw.Original.parentUserID,
			m.raw.Root.user,
		)
	})
}

// IsEdited reports whether the record carries an edit marker.
func (m *Message) IsEdited() bool {
	return m.raw.Edited != nil || (m.raw.Wrapped != nil && m.raw.Wrapped.Edited != nil) || m.raw.EditedBy != ""
}

// EditedTS returns the edit timestamp, empty when not edited.
func (m *Message) EditedTS() string {
	return structures.NVL(m.raw.editedTS(), m.raw.Wrapped.editedTS())
}

// EditedBy returns the ID of the editing actor.
func (m *Message) EditedBy() string {
	return structures.NVL(m.raw.editedUser(), m.raw.EditedBy)
}

// IsDeleted reports whether the record is a deletion marker.
func (m *Message) IsDeleted() bool {
	return m.raw.DeletedBy != "" || m.raw.DeletedTimestamp != ""
}

// DeletedTS returns the deletion timestamp, empty when not deleted.
func (m *Message) DeletedTS() string {
	return m.raw.DeletedTimestamp
}

// DeletedBy returns the ID of the deleting actor.
func (m *Message) DeletedBy() string {
	return m.raw.DeletedBy
}

// IsOriginal reports whether the record wraps the original payload of an
// edited or deleted message.
func (m *Message) IsOriginal() bool {
	return m.raw.Original != nil
}
