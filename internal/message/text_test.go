package message

import (
	"testing"

	"github.com/rusq/slack"
	"github.com/stretchr/testify/assert"

	"github.com/harrisonmb/slackexport/internal/identity"
)

func TestMessage_Text(t *testing.T) {
	tests := []struct {
		name string
		raw  *RawRecord
		conv *testConv
		want string
	}{
		{
			"plain text",
			&RawRecord{Msg: slack.Msg{User: "U1", Text: "hi"}},
			&testConv{roster: testUsers},
			"hi",
		},
		{
			"empty text becomes placeholder",
			&RawRecord{Msg: slack.Msg{}},
			&testConv{roster: testUsers},
			"[NO TEXT]",
		},
		{
			"empty text with named file",
			&RawRecord{Msg: slack.Msg{
				Text:  "",
				Files: []slack.File{{Name: "f.png"}},
			}},
			&testConv{roster: testUsers},
			"[NO TEXT]<br/> » [FILE ATTACHED]-[f.png]",
		},
		{
			"file title fallback",
			&RawRecord{Msg: slack.Msg{
				Text:  "look",
				Files: []slack.File{{Title: "screenshot"}},
			}},
			&testConv{roster: testUsers},
			"look<br/> » [FILE ATTACHED]-[screenshot]",
		},
		{
			"file with uploader credit",
			&RawRecord{Msg: slack.Msg{
				Text:  "fyi",
				Files: []slack.File{{Name: "doc.pdf", User: "U2"}},
			}},
			&testConv{roster: testUsers},
			"fyi<br/> » [FILE ATTACHED]-[doc.pdf]-[File originally posted by @Bob B]",
		},
		{
			"nameless file",
			&RawRecord{Msg: slack.Msg{
				Text:  "x",
				Files: []slack.File{{}},
			}},
			&testConv{roster: testUsers},
			"x<br/> » [FILE ATTACHED]",
		},
		{
			"attachment fallback",
			&RawRecord{Msg: slack.Msg{
				Text:        "see",
				Attachments: []slack.Attachment{{Fallback: "report q3"}},
			}},
			&testConv{roster: testUsers},
			"see<br/> » [FILE ATTACHED]-[report q3]",
		},
		{
			"original text",
			&RawRecord{Original: &RawRecord{Msg: slack.Msg{Text: "before edit"}}},
			&testConv{roster: testUsers},
			"before edit",
		},
		{
			"wrapped text",
			&RawRecord{Wrapped: &RawRecord{Msg: slack.Msg{Text: "thread reply"}}},
			&testConv{roster: testUsers},
			"thread reply",
		},
		{
			"escaped characters are unescaped",
			&RawRecord{Msg: slack.Msg{Text: "a &lt; b &amp;&amp; c &gt; d"}},
			&testConv{roster: testUsers},
			"a < b && c > d",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.raw, tt.conv).Text())
		})
	}
}

func TestMessage_Text_reactionCredit(t *testing.T) {
	raw := &RawRecord{Msg: slack.Msg{
		Text: "funny",
		Reactions: []slack.ItemReaction{
			{Name: "joy", Users: []string{"U2", "U1"}},
		},
	}}

	ann := annA
	withTarget := &testConv{roster: testUsers, target: &ann}
	assert.Equal(t, "funny<br/> » [Emoji Reaction added by @Ann A]",
		New(raw, withTarget).Text())

	// no filter, no credit
	assert.Equal(t, "funny", New(raw, &testConv{roster: testUsers}).Text())

	// filter set, but the target did not react
	bob := identity.Identity{ID: "U404", Name: "Nobody"}
	assert.Equal(t, "funny", New(raw, &testConv{roster: testUsers, target: &bob}).Text())
}

func Test_rewriteMentions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"user mention", "hey <@U1> look", "hey @Ann A look"},
		{"unknown user keeps token", "hey <@U404>", "hey <@U404>"},
		{"bare url", "see <https://example.com/page>", "see https://example.com/page"},
		{"labelled url", "see <https://example.com|example>", "see example"},
		{"mailto", "write <mailto:a@x.com|a@x.com>", "write a@x.com"},
		{"user group", "ping <!subteam^S123|@eng-team>", "ping @eng-team"},
		{"here", "<!here> attention", "@here attention"},
		{"channel", "<!channel> all", "@channel all"},
		{"no tokens", "plain text", "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rewriteMentions(tt.text, testUsers))
		})
	}
}
