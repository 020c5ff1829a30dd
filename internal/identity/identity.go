// Package identity resolves message senders against the archive roster.
//
// Identities are derived values: once resolved they are never mutated, and
// two Identity values constructed from different hint sets may describe the
// same person or bot.  Equality is therefore structural (see [Identity.Same]),
// never pointer-based.
package identity

import (
	"strings"

	"github.com/rusq/slack"

	"github.com/harrisonmb/slackexport/internal/structures"
)

// Status is the workspace standing of an identity.
type Status string

const (
	StatusInternal Status = "Internal User"
	StatusExternal Status = "External User"
	StatusApp      Status = "App"
)

// SlackbotID is the reserved ID of the built-in system bot.  It resolves to a
// fixed identity regardless of the roster contents.
const SlackbotID = "USLACKBOT"

const slackbotName = "Slackbot"

// Identity is a resolved member of the workspace, or a synthetic placeholder
// for an external or unknown sender.
type Identity struct {
	ID     string
	Handle string // the login name, i.e. "ann.a"
	Name   string // the full ("real") name, i.e. "Ann A"
	Email  string // lowercase, may be empty
	BotID  string // may be empty
	Bot    bool
	Status Status
}

// Hints is the set of partial fields a raw record may carry about its sender.
// Any subset may be populated.
type Hints struct {
	ID     string
	Handle string
	Email  string
	BotID  string
}

// Display returns the best human-readable name for the identity.
func (id Identity) Display() string {
	return structures.NVL(id.Name, id.Handle, id.ID)
}

// Same reports whether two identities describe the same underlying person or
// bot.  The comparison is structural, by ID, handle or bot ID.
func (id Identity) Same(other Identity) bool {
	switch {
	case id.ID != "" && id.ID == other.ID:
		return true
	case id.Handle != "" && id.Handle == other.Handle:
		return true
	case id.BotID != "" && id.BotID == other.BotID:
		return true
	}
	return false
}

// Zero reports whether the identity carries no identifying fields at all.
func (id Identity) Zero() bool {
	return id.ID == "" && id.Handle == "" && id.BotID == "" && id.Email == ""
}

// Roster is the list of known workspace users, in archive order.
type Roster []slack.User

// Resolve returns the best-effort identity for the given hints.  Matching
// precedence: exact ID, exact handle, case-insensitive email, bot ID.  Within
// each precedence level the first matching roster entry wins, so resolution
// is stable and independent of hint ordering.  If nothing matches, a
// synthetic identity is constructed from the hints with the "External User"
// status.
func (r Roster) Resolve(h Hints) Identity {
	if h.ID == SlackbotID {
		return Identity{
			ID:     SlackbotID,
			Handle: slackbotName,
			Name:   slackbotName,
			Bot:    true,
			Status: StatusApp,
		}
	}
	email := strings.ToLower(h.Email)
	matchers := []func(u *slack.User) bool{
		func(u *slack.User) bool { return h.ID != "" && u.ID == h.ID },
		func(u *slack.User) bool { return h.Handle != "" && u.Name == h.Handle },
		func(u *slack.User) bool { return email != "" && strings.ToLower(u.Profile.Email) == email },
		func(u *slack.User) bool { return h.BotID != "" && u.Profile.BotID == h.BotID },
	}
	for _, match := range matchers {
		for i := range r {
			if match(&r[i]) {
				return fromUser(&r[i])
			}
		}
	}
	return synthetic(h)
}

// ResolveEmail finds the roster entry with the given email address
// (case-insensitive).  Unlike Resolve it does not fabricate a placeholder:
// the second return value is false when the email is not in the roster.
func (r Roster) ResolveEmail(email string) (Identity, bool) {
	email = strings.ToLower(email)
	for i := range r {
		if strings.ToLower(r[i].Profile.Email) == email {
			return fromUser(&r[i]), true
		}
	}
	return Identity{}, false
}

// ResolveAll resolves a list of user IDs, preserving order.
func (r Roster) ResolveAll(ids []string) []Identity {
	out := make([]Identity, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.Resolve(Hints{ID: id}))
	}
	return out
}

func fromUser(u *slack.User) Identity {
	status := StatusInternal
	if u.IsBot {
		status = StatusApp
	}
	return Identity{
		ID:     u.ID,
		Handle: u.Name,
		Name:   structures.NVL(u.Profile.RealName, u.RealName, u.Name),
		Email:  strings.ToLower(u.Profile.Email),
		BotID:  u.Profile.BotID,
		Bot:    u.IsBot,
		Status: status,
	}
}

func synthetic(h Hints) Identity {
	return Identity{
		ID:     h.ID,
		Handle: h.Handle,
		Name:   h.Handle,
		Email:  strings.ToLower(h.Email),
		BotID:  h.BotID,
		Status: StatusExternal,
	}
}
