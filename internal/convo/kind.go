// Package convo assembles normalized messages into per-day conversations,
// repairing the participant set and producing the final display ordering
// with thread replies placed directly under their parents.
package convo

// Kind is the conversation category, matching the subdirectory layout and
// membership files of an export archive.
type Kind string

const (
	KindDMs      Kind = "dms"
	KindMPIMs    Kind = "mpims"
	KindGroups   Kind = "groups"
	KindChannels Kind = "channels"
)

// Kinds returns all conversation kinds in display order.
func Kinds() []Kind {
	return []Kind{KindDMs, KindMPIMs, KindGroups, KindChannels}
}

// MembershipFile returns the name of the archive file that carries the
// membership metadata for the kind.
func (k Kind) MembershipFile() string {
	return string(k) + ".json"
}

// Title returns the human-readable name of the kind used in document
// headings.
func (k Kind) Title() string {
	switch k {
	case KindDMs:
		return "Direct Message Conversations"
	case KindMPIMs:
		return "Multi-Party Direct Message Conversations"
	case KindGroups:
		return "Private Channel Conversations"
	case KindChannels:
		return "Public Channel Conversations"
	}
	return string(k)
}

// DirectLike reports whether membership, rather than a channel name,
// identifies the conversations of this kind.
func (k Kind) DirectLike() bool {
	return k == KindDMs || k == KindMPIMs
}

func (k Kind) String() string { return string(k) }
