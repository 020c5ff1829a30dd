package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rusq/fsadapter"
	"github.com/rusq/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonmb/slackexport/internal/convo"
	"github.com/harrisonmb/slackexport/internal/identity"
	"github.com/harrisonmb/slackexport/internal/message"
)

var renderRoster = identity.Roster{
	{ID: "U1", Name: "ann.a", Profile: slack.UserProfile{Email: "a@x.com", RealName: "Ann A"}},
	{ID: "U2", Name: "bob", Profile: slack.UserProfile{Email: "b@x.com", RealName: "Bob B"}},
}

func testBuckets(t *testing.T, kind convo.Kind) []*convo.DateBucket {
	t.Helper()
	records := []message.RawRecord{
		{Msg: slack.Msg{User: "U1", Text: "hello", Timestamp: "1696156800.000100", ThreadTimestamp: "1696156800.000100", ReplyCount: 1}},
		{Msg: slack.Msg{User: "U2", Text: "reply", Timestamp: "1696156860.000200", ThreadTimestamp: "1696156800.000100"}},
	}
	c := convo.Assemble(kind, "general", "2023-10-01", records, []string{"U1", "U2"}, renderRoster, nil, time.UTC)
	return []*convo.DateBucket{{Date: "2023-10-01", Conversations: []*convo.Conversation{c}}}
}

func TestBuild(t *testing.T) {
	doc := Build(convo.KindChannels, testBuckets(t, convo.KindChannels))

	require.Len(t, doc.Blocks, 6)
	assert.Equal(t, SDateHeading, doc.Blocks[0].Style)
	assert.Equal(t, "2023-10-01 - Public Channel Conversations", doc.Blocks[0].Text)
	assert.Equal(t, SConvoHeading, doc.Blocks[1].Style)
	assert.Equal(t, "Conversation between: general @ 12:00:00, UTC", doc.Blocks[1].Text)

	assert.Equal(t, SMsgInfo, doc.Blocks[2].Style)
	assert.Equal(t, "Ann A, a@x.com, Internal User, 12:00:00, UTC", doc.Blocks[2].Text)
	assert.Equal(t, SMsgBody, doc.Blocks[3].Style)
	assert.Equal(t, "» hello<br/><br/>", doc.Blocks[3].Text)

	// the reply is indented and marked
	assert.Equal(t, "&nbsp;&nbsp;&nbsp;&nbsp; [THREAD RES.] Bob B, b@x.com, Internal User, 12:01:00, UTC", doc.Blocks[4].Text)
	assert.Equal(t, "&nbsp;&nbsp;&nbsp;&nbsp; » reply<br/><br/>", doc.Blocks[5].Text)
}

func TestBuild_directHeading(t *testing.T) {
	doc := Build(convo.KindDMs, testBuckets(t, convo.KindDMs))
	assert.Equal(t, "2023-10-01 - Direct Message Conversations", doc.Blocks[0].Text)
	assert.Equal(t, "Conversation between: Ann A, Bob B @ 12:00:00, UTC", doc.Blocks[1].Text)
}

func TestText_Document(t *testing.T) {
	doc := Document{
		Kind: convo.KindChannels,
		Blocks: []Block{
			{SDateHeading, "2023-10-01 - Public Channel Conversations"},
			{SConvoHeading, "Conversation between: general @ 12:00:00, UTC"},
			{SMsgInfo, "Ann A, a@x.com, Internal User, 12:00:00, UTC"},
			{SMsgBody, "» hello :wave:<br/><br/>"},
		},
	}
	var buf bytes.Buffer
	r := NewText()
	require.NoError(t, r.Document(&buf, doc))

	out := buf.String()
	assert.Contains(t, out, "2023-10-01 - Public Channel Conversations\n====")
	assert.Contains(t, out, "Ann A, a@x.com, Internal User, 12:00:00, UTC\n")
	assert.Contains(t, out, "» hello \U0001F44B\n")
	assert.NotContains(t, out, "<br/>")
	assert.NotContains(t, out, "&nbsp;")
}

func TestHTML_Document(t *testing.T) {
	doc := Build(convo.KindChannels, testBuckets(t, convo.KindChannels))
	var buf bytes.Buffer
	r := NewHTML()
	require.NoError(t, r.Document(&buf, doc))

	out := buf.String()
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<h2")
	assert.Contains(t, out, "<strong>")
	assert.Contains(t, out, "<br/>")
}

func TestType_Set(t *testing.T) {
	var typ Type
	require.NoError(t, typ.Set("HTML"))
	assert.Equal(t, CHTML, typ)
	require.NoError(t, typ.Set("text"))
	assert.Equal(t, CText, typ)
	assert.Error(t, typ.Set("docx"))
	assert.Error(t, typ.Set("unknown"))
}

func TestWriteDocuments(t *testing.T) {
	dir := t.TempDir()
	fsa := fsadapter.NewDirectory(dir)
	defer fsa.Close()

	docs := []Document{
		Build(convo.KindChannels, testBuckets(t, convo.KindChannels)),
		Build(convo.KindDMs, testBuckets(t, convo.KindDMs)),
	}
	require.NoError(t, WriteDocuments(fsa, CText, docs))

	for _, name := range []string{"channels.txt", "dms.txt"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(data), "hello"))
	}

	assert.Error(t, WriteDocuments(fsa, CUnknown, docs))
}
