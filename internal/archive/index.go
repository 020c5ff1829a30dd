package archive

import (
	"bytes"
	"fmt"
	"slices"
	"sort"

	"github.com/harrisonmb/slackexport/internal/convo"
	"github.com/harrisonmb/slackexport/internal/identity"
)

// Index is the assembled export scope: the resolved target user, if one was
// requested, and the date-ordered conversation buckets of every kind that
// had matching content.
type Index struct {
	Target  *identity.Identity
	Buckets map[convo.Kind][]*convo.DateBucket
}

// BuildIndex resolves the selection parameters against the container and
// assembles every conversation in scope.
//
// A user filter without a channel filter selects all conversation kinds; a
// channel filter, or no filter at all, restricts the scope to channel and
// group kinds.  Direct-message kinds are filtered by membership, channel
// kinds by a cheap text containment scan for the target's id.
func (a *Archive) BuildIndex(p Params) (*Index, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var target *identity.Identity
	if p.Email != "" {
		who, ok := a.roster.ResolveEmail(p.Email)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, p.Email)
		}
		target = &who
	}

	entries, err := a.indexEntries()
	if err != nil {
		return nil, err
	}
	start, end, err := a.resolveRange(p)
	if err != nil {
		return nil, err
	}

	kinds := convo.Kinds()
	if p.Channel != "" || p.Email == "" {
		kinds = []convo.Kind{convo.KindGroups, convo.KindChannels}
	}
	if p.Channel != "" {
		if err := a.checkChannel(p.Channel); err != nil {
			return nil, err
		}
	}

	idx := &Index{Target: target, Buckets: make(map[convo.Kind][]*convo.DateBucket)}
	matched := false
	for _, kind := range kinds {
		ms, err := a.kindMemberships(kind)
		if err != nil {
			return nil, err
		}
		byDir := make(map[string]Membership, len(ms))
		for _, m := range ms {
			if p.Channel != "" && m.Name != p.Channel && m.ID != p.Channel {
				continue
			}
			if target != nil && kind.DirectLike() && !slices.Contains(m.Members, target.ID) {
				continue
			}
			byDir[m.Dir()] = m
		}

		var selected []entry
		for _, e := range entries {
			if _, ok := byDir[e.dir]; !ok {
				continue
			}
			if start != "" && (e.date < start || end < e.date) {
				continue
			}
			if target != nil && !kind.DirectLike() {
				data, err := a.readFile(e.path)
				if err != nil {
					return nil, err
				}
				if !bytes.Contains(data, []byte(target.ID)) {
					continue
				}
			}
			selected = append(selected, e)
		}
		if len(selected) == 0 {
			continue
		}
		matched = true

		buckets, err := a.assembleKind(kind, selected, byDir, target, p)
		if err != nil {
			return nil, err
		}
		idx.Buckets[kind] = buckets
	}
	if target != nil && !matched {
		return nil, fmt.Errorf("%w: %s", ErrUserNotActive, p.Email)
	}
	return idx, nil
}

// assembleKind groups the selected entries by date and assembles one
// conversation per entry, producing date-sorted buckets with the
// conversations of each date ordered by their first message time.
func (a *Archive) assembleKind(kind convo.Kind, selected []entry, byDir map[string]Membership, target *identity.Identity, p Params) ([]*convo.DateBucket, error) {
	byDate := make(map[string][]entry)
	var dates []string
	for _, e := range selected {
		if _, ok := byDate[e.date]; !ok {
			dates = append(dates, e.date)
		}
		byDate[e.date] = append(byDate[e.date], e)
	}
	sort.Strings(dates)

	buckets := make([]*convo.DateBucket, 0, len(dates))
	for _, date := range dates {
		bucket := &convo.DateBucket{Date: date}
		for _, e := range byDate[date] {
			records, err := a.records(e.path)
			if err != nil {
				return nil, err
			}
			c := convo.Assemble(kind, e.dir, date, records, byDir[e.dir].Members, a.roster, target, p.location())
			if len(c.Messages()) == 0 {
				continue
			}
			bucket.Conversations = append(bucket.Conversations, c)
		}
		if len(bucket.Conversations) == 0 {
			continue
		}
		bucket.Sort()
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

// resolveRange validates the requested date range against the archive's
// available dates and returns it as a pair of date strings, empty when no
// range was requested.
func (a *Archive) resolveRange(p Params) (start, end string, err error) {
	if p.Start.IsZero() && p.End.IsZero() {
		return "", "", nil
	}
	dates, err := a.AvailableDates()
	if err != nil {
		return "", "", err
	}
	if len(dates) == 0 {
		return "", "", fmt.Errorf("%w: archive has no dated message files", ErrDateOutOfRange)
	}
	start, end = dates[0], dates[len(dates)-1]
	if !p.Start.IsZero() {
		start = p.Start.Format(dateLayout)
	}
	if !p.End.IsZero() {
		end = p.End.Format(dateLayout)
	}
	if start < dates[0] || dates[len(dates)-1] < end {
		return "", "", fmt.Errorf("%w: %s to %s, archive covers %s to %s",
			ErrDateOutOfRange, start, end, dates[0], dates[len(dates)-1])
	}
	return start, end, nil
}

// checkChannel verifies that the requested channel or group exists in the
// archive's membership metadata.
func (a *Archive) checkChannel(channel string) error {
	for _, kind := range []convo.Kind{convo.KindGroups, convo.KindChannels} {
		ms, err := a.kindMemberships(kind)
		if err != nil {
			return err
		}
		for _, m := range ms {
			if m.Name == channel || m.ID == channel {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s", ErrChannelNotFound, channel)
}
