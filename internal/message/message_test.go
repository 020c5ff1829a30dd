package message

import (
	"testing"
	"time"

	"github.com/rusq/slack"
	"github.com/stretchr/testify/assert"

	"github.com/harrisonmb/slackexport/internal/identity"
)

// testConv is a minimal Context for normalizer tests.
type testConv struct {
	parts  []identity.Identity
	roster identity.Roster
	target *identity.Identity
}

func (c *testConv) Participants() []identity.Identity { return c.parts }
func (c *testConv) Roster() identity.Roster           { return c.roster }
func (c *testConv) Location() *time.Location          { return time.UTC }

func (c *testConv) Target() (identity.Identity, bool) {
	if c.target == nil {
		return identity.Identity{}, false
	}
	return *c.target, true
}

var annA = identity.Identity{ID: "U1", Handle: "ann.a", Name: "Ann A", Email: "a@x.com", Status: identity.StatusInternal}

var testUsers = identity.Roster{
	{ID: "U1", Name: "ann.a", Profile: slack.UserProfile{Email: "a@x.com", RealName: "Ann A"}},
	{ID: "U2", Name: "bob", Profile: slack.UserProfile{Email: "b@x.com", RealName: "Bob B"}},
}

func TestMessage_sender(t *testing.T) {
	tests := []struct {
		name       string
		raw        *RawRecord
		conv       *testConv
		wantID     string
		wantName   string
		wantStatus identity.Status
	}{
		{
			"known roster user",
			&RawRecord{Msg: slack.Msg{User: "U1", Text: "hi"}},
			&testConv{parts: []identity.Identity{annA}, roster: testUsers},
			"U1", "Ann A", identity.StatusInternal,
		},
		{
			"participant handle match wins",
			&RawRecord{
				Msg:         slack.Msg{User: "UWRONG"},
				UserProfile: &RawUserProfile{Name: "ann.a"},
			},
			&testConv{parts: []identity.Identity{annA}, roster: testUsers},
			"U1", "Ann A", identity.StatusInternal,
		},
		{
			"bot id fallback",
			&RawRecord{Msg: slack.Msg{BotID: "B9"}},
			&testConv{roster: testUsers},
			"B9", "", identity.StatusExternal,
		},
		{
			"nested original sender",
			&RawRecord{Original: &RawRecord{Msg: slack.Msg{User: "U2", Text: "old"}}},
			&testConv{roster: testUsers},
			"U2", "", identity.StatusExternal,
		},
		{
			"nested thread-message sender",
			&RawRecord{Wrapped: &RawRecord{Msg: slack.Msg{User: "U2"}}},
			&testConv{roster: testUsers},
			"U2", "", identity.StatusExternal,
		},
		{
			"profile real name when not a participant",
			&RawRecord{
				Msg:         slack.Msg{User: "U9"},
				UserProfile: &RawUserProfile{RealName: "Xena X", Name: "xena"},
			},
			&testConv{roster: testUsers},
			"U9", "Xena X", identity.StatusExternal,
		},
		{
			"no sender at all",
			&RawRecord{Msg: slack.Msg{Text: "orphan"}},
			&testConv{roster: testUsers},
			"", "", identity.StatusExternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.raw, tt.conv)
			assert.Equal(t, tt.wantID, m.SenderID())
			assert.Equal(t, tt.wantName, m.SenderName())
			assert.Equal(t, tt.wantStatus, m.SenderStatus())
		})
	}
}

func TestMessage_effectiveTimestamp(t *testing.T) {
	tests := []struct {
		name string
		raw  *RawRecord
		want string
	}{
		{
			"plain ts",
			&RawRecord{Msg: slack.Msg{Timestamp: "1638497751.040300"}},
			"1638497751.040300",
		},
		{
			"edited beats raw",
			&RawRecord{Msg: slack.Msg{
				Timestamp: "1638497751.040300",
				Edited:    &slack.Edited{Timestamp: "1638497800.000100"},
			}},
			"1638497800.000100",
		},
		{
			"original beats edited",
			&RawRecord{
				Msg: slack.Msg{
					Timestamp: "1638497751.040300",
					Edited:    &slack.Edited{Timestamp: "1638497800.000100"},
				},
				Original: &RawRecord{Msg: slack.Msg{Timestamp: "1638490000.000000"}},
			},
			"1638490000.000000",
		},
		{
			"wrapped thread message ts",
			&RawRecord{Wrapped: &RawRecord{Msg: slack.Msg{Timestamp: "1638497760.000000"}}},
			"1638497760.000000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.raw, &testConv{})
			assert.Equal(t, tt.want, m.SlackTS())
		})
	}
}

func TestMessage_threading(t *testing.T) {
	parent := New(&RawRecord{Msg: slack.Msg{
		Timestamp:       "100.000000",
		ThreadTimestamp: "100.000000",
		ReplyCount:      2,
	}}, &testConv{})
	assert.True(t, parent.InThread())
	assert.True(t, parent.IsThreadParent())
	assert.False(t, parent.IsThreadChild())

	child := New(&RawRecord{Msg: slack.Msg{
		Timestamp:       "101.000000",
		ThreadTimestamp: "100.000000",
		ParentUserId:    "U1",
	}}, &testConv{})
	assert.True(t, child.InThread())
	assert.False(t, child.IsThreadParent())
	assert.True(t, child.IsThreadChild())
	assert.Equal(t, "U1", child.AnchorHint())

	wrapped := New(&RawRecord{Wrapped: &RawRecord{Msg: slack.Msg{
		Timestamp:       "102.000000",
		ThreadTimestamp: "100.000000",
	}}}, &testConv{})
	assert.True(t, wrapped.InThread())
	assert.True(t, wrapped.IsThreadChild())
	assert.Equal(t, "100.000000", wrapped.ThreadTS())

	plain := New(&RawRecord{Msg: slack.Msg{Timestamp: "103.000000"}}, &testConv{})
	assert.False(t, plain.InThread())
	assert.Empty(t, plain.AnchorHint())
}

func TestMessage_editDeleteOriginal(t *testing.T) {
	edited := New(&RawRecord{Msg: slack.Msg{
		Edited: &slack.Edited{User: "U2", Timestamp: "200.000000"},
	}}, &testConv{})
	assert.True(t, edited.IsEdited())
	assert.Equal(t, "U2", edited.EditedBy())
	assert.Equal(t, "200.000000", edited.EditedTS())

	deleted := New(&RawRecord{
		Msg:       slack.Msg{DeletedTimestamp: "300.000000"},
		DeletedBy: "U1",
	}, &testConv{})
	assert.True(t, deleted.IsDeleted())
	assert.Equal(t, "U1", deleted.DeletedBy())
	assert.Equal(t, "300.000000", deleted.DeletedTS())

	original := New(&RawRecord{Original: &RawRecord{Msg: slack.Msg{Text: "before"}}}, &testConv{})
	assert.True(t, original.IsOriginal())

	plain := New(&RawRecord{Msg: slack.Msg{Text: "hi"}}, &testConv{})
	assert.False(t, plain.IsEdited())
	assert.False(t, plain.IsDeleted())
	assert.False(t, plain.IsOriginal())
}

// normalizing the same record twice must yield identical values.
func TestMessage_idempotent(t *testing.T) {
	raw := &RawRecord{Msg: slack.Msg{
		User:            "U1",
		Text:            "hello <@U2>",
		Timestamp:       "1638497751.040300",
		ThreadTimestamp: "1638497751.040300",
		ReplyCount:      1,
	}}
	conv := &testConv{parts: []identity.Identity{annA}, roster: testUsers}
	m := New(raw, conv)

	first := []any{m.SenderID(), m.SenderName(), m.Text(), m.SlackTS(), m.IsThreadParent()}
	second := []any{m.SenderID(), m.SenderName(), m.Text(), m.SlackTS(), m.IsThreadParent()}
	assert.Equal(t, first, second)
}
