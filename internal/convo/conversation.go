package convo

import (
	"sort"
	"time"

	"github.com/harrisonmb/slackexport/internal/identity"
	"github.com/harrisonmb/slackexport/internal/message"
)

// Conversation is one logical channel or direct-message exchange on one
// calendar date.  The participant set is mutated only during Assemble and
// is read-only afterwards.
type Conversation struct {
	Kind Kind
	ID   string
	Date string
	Time string // clock and zone of the earliest emitted message

	participants []identity.Identity
	messages     []*message.Message

	roster identity.Roster
	target *identity.Identity
	loc    *time.Location
}

var _ message.Context = (*Conversation)(nil)

func (c *Conversation) Participants() []identity.Identity { return c.participants }
func (c *Conversation) Roster() identity.Roster           { return c.roster }
func (c *Conversation) Location() *time.Location          { return c.loc }

func (c *Conversation) Target() (identity.Identity, bool) {
	if c.target == nil {
		return identity.Identity{}, false
	}
	return *c.target, true
}

// Messages returns the conversation's messages in display order.
func (c *Conversation) Messages() []*message.Message { return c.messages }

// Assemble normalizes the raw records of one conversation on one date and
// arranges them for display: chronological, with each thread parent
// immediately followed by its replies.  The participant set is seeded from
// the membership member ids and repaired as each message is normalized.
func Assemble(kind Kind, id, date string, records []message.RawRecord, members []string, roster identity.Roster, target *identity.Identity, loc *time.Location) *Conversation {
	if loc == nil {
		loc = time.Local
	}
	c := &Conversation{
		Kind:   kind,
		ID:     id,
		Date:   date,
		roster: roster,
		target: target,
		loc:    loc,
	}
	c.participants = roster.ResolveAll(members)

	msgs := make([]*message.Message, 0, len(records))
	for i := range records {
		m := message.New(&records[i], c)
		c.repairParticipants(m)
		msgs = append(msgs, m)
	}
	// Slack timestamps are fixed-width decimal strings, so the lexical
	// order is the chronological order.
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].SlackTS() < msgs[j].SlackTS()
	})
	c.messages = relinearize(msgs)
	if len(c.messages) > 0 {
		first := c.messages[0]
		c.Time = first.Clock() + ", " + first.TZ()
	}
	return c
}

// repairParticipants reconciles the participant set with the sender of one
// message.  Stale entries (same id but no display name, same handle under a
// different id, or a bot-id collision) are dropped, and a freshly resolved
// identity is appended when the sender is not already represented.
func (c *Conversation) repairParticipants(m *message.Message) {
	id := m.RecordSenderID()
	if id == "" {
		return
	}
	handle := m.SenderHandle()

	known := false
	stale := false
	kept := c.participants[:0]
	for _, p := range c.participants {
		switch {
		case p.ID == id && p.Name == "",
			handle != "" && p.Handle == handle && p.ID != id,
			p.BotID != "" && p.BotID == id && p.ID != id:
			stale = true
		default:
			if p.ID == id || (p.BotID != "" && p.BotID == id) {
				known = true
			}
			kept = append(kept, p)
		}
	}
	c.participants = kept
	if known && !stale {
		return
	}
	who := c.roster.Resolve(identity.Hints{ID: id, Handle: handle})
	if who.Name == "" {
		who.Name = m.SenderName()
	}
	for _, p := range c.participants {
		if p.Same(who) {
			return
		}
	}
	c.participants = append(c.participants, who)
}

// relinearize walks the time-sorted list and produces the display order:
// each thread parent is emitted immediately followed by its replies, a
// reply whose parent was never seen in this conversation surfaces
// standalone, and no reply is emitted twice.
func relinearize(msgs []*message.Message) []*message.Message {
	parentSenders := make(map[string]bool)
	parentByTS := make(map[string]string)
	for _, m := range msgs {
		if !m.IsThreadParent() {
			continue
		}
		parentSenders[m.SenderID()] = true
		if _, ok := parentByTS[m.SlackTS()]; !ok {
			parentByTS[m.SlackTS()] = m.SenderID()
		}
	}
	anchor := func(m *message.Message) string {
		if h := m.AnchorHint(); h != "" {
			return h
		}
		return parentByTS[m.ThreadTS()]
	}

	out := make([]*message.Message, 0, len(msgs))
	emitted := make(map[*message.Message]bool)
	for _, m := range msgs {
		if emitted[m] {
			continue
		}
		switch {
		case m.IsThreadParent():
			emitted[m] = true
			out = append(out, m)
			for _, child := range msgs {
				if emitted[child] || !child.IsThreadChild() {
					continue
				}
				if child.ThreadTS() == m.SlackTS() {
					emitted[child] = true
					out = append(out, child)
				}
			}
		case m.IsThreadChild():
			emitted[m] = true
			if a := anchor(m); a != "" && parentSenders[a] {
				// the reply already appears under its parent
				continue
			}
			out = append(out, m)
		default:
			emitted[m] = true
			out = append(out, m)
		}
	}
	return out
}

// DateBucket holds every conversation of one kind that has messages on one
// date, ordered by each conversation's earliest message time.
type DateBucket struct {
	Date          string
	Conversations []*Conversation
}

// Sort orders the bucket's conversations by their derived time.
func (b *DateBucket) Sort() {
	sort.SliceStable(b.Conversations, func(i, j int) bool {
		return b.Conversations[i].Time < b.Conversations[j].Time
	})
}
