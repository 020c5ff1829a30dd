package message

import (
	"github.com/rusq/slack"
)

// RawRecord is one message event as found in an export file.  On top of the
// fields the slack library knows about, export records may wrap the payload
// of the affected message in "original", "message" or "root" sub-records
// (edits, thread replies and deletion markers each use a different nesting),
// and may carry flat "edited_by"/"deleted_by" markers.  A RawRecord is
// immutable once decoded.
type RawRecord struct {
	slack.Msg

	UserProfile *RawUserProfile `json:"user_profile,omitempty"`
	Original    *RawRecord      `json:"original,omitempty"`
	Wrapped     *RawRecord      `json:"message,omitempty"`
	Root        *RawRecord      `json:"root,omitempty"`
	EditedBy    string          `json:"edited_by,omitempty"`
	DeletedBy   string          `json:"deleted_by,omitempty"`
}

// RawUserProfile is the sender profile sidecar attached to export records.
// Export messages are more saturated than API ones and often carry it even
// when the sender is not in the roster anymore.
type RawUserProfile struct {
	RealName    string `json:"real_name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Name        string `json:"name,omitempty"`
	Team        string `json:"team,omitempty"`
}

// realName returns the profile real name of a possibly nil record.
func (r *RawRecord) realName() string {
	if r == nil || r.UserProfile == nil {
		return ""
	}
	return r.UserProfile.RealName
}

// profileHandle returns the profile login name of a possibly nil record.
func (r *RawRecord) profileHandle() string {
	if r == nil || r.UserProfile == nil {
		return ""
	}
	return r.UserProfile.Name
}

// user, botID, username, text, ts and threadTS are nil-safe field accessors
// used by the fallback chains.

func (r *RawRecord) user() string {
	if r == nil {
		return ""
	}
	return r.User
}

func (r *RawRecord) botID() string {
	if r == nil {
		return ""
	}
	return r.BotID
}

func (r *RawRecord) username() string {
	if r == nil {
		return ""
	}
	return r.Username
}

func (r *RawRecord) text() string {
	if r == nil {
		return ""
	}
	return r.Text
}

func (r *RawRecord) ts() string {
	if r == nil {
		return ""
	}
	return r.Timestamp
}

func (r *RawRecord) threadTS() string {
	if r == nil {
		return ""
	}
	return r.ThreadTimestamp
}

func (r *RawRecord) parentUserID() string {
	if r == nil {
		return ""
	}
	return r.ParentUserId
}

func (r *RawRecord) editedTS() string {
	if r == nil || r.Edited == nil {
		return ""
	}
	return r.Edited.Timestamp
}

func (r *RawRecord) editedUser() string {
	if r == nil || r.Edited == nil {
		return ""
	}
	return r.Edited.User
}

// firstFile returns the first attached file of a possibly nil record.
func (r *RawRecord) firstFile() *slack.File {
	if r == nil || len(r.Files) == 0 {
		return nil
	}
	return &r.Files[0]
}
