// Package archive navigates a bulk export container: it loads the user
// roster, indexes the per-conversation message files by kind and date, and
// builds the conversation sets that feed the document renderer.
package archive

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/rusq/slack"

	"github.com/harrisonmb/slackexport/internal/convo"
	"github.com/harrisonmb/slackexport/internal/identity"
	"github.com/harrisonmb/slackexport/internal/message"
	"github.com/harrisonmb/slackexport/internal/structures"
)

const rosterFile = "users.json"

// dateLayout is the naming convention of the per-date message files.
const dateLayout = "2006-01-02"

var ErrNoRoster = errors.New("users.json missing or unreadable")

// Archive is the navigable view over one export container.  It owns the
// roster, caches every file it reads, and lazily indexes the message file
// entries and the per-kind membership metadata.
type Archive struct {
	fsys fs.FS

	roster identity.Roster

	files       map[string][]byte
	entries     []entry
	memberships map[convo.Kind][]Membership
}

// entry is one message file in the container: <conversation-dir>/<date>.json.
type entry struct {
	path string
	dir  string
	date string
}

// Membership is the per-conversation slice of the kind metadata files that
// the navigator cares about: who is in the conversation and what directory
// its message files live under.
type Membership struct {
	ID      string
	Name    string
	Members []string
}

// Dir returns the container directory holding the conversation's message
// files.
func (m Membership) Dir() string {
	return structures.NVL(m.Name, m.ID)
}

// dm is a direct-message entry of dms.json.
type dm struct {
	ID      string   `json:"id"`
	Members []string `json:"members"`
}

// OpenLocation opens the archive at location, which is either a ZIP file or
// an unpacked export directory.  The returned closer releases the container
// handle.
func OpenLocation(location string) (*Archive, func() error, error) {
	fi, err := os.Stat(location)
	if err != nil {
		return nil, nil, err
	}
	var (
		fsys    fs.FS
		closeFn = func() error { return nil }
	)
	if fi.IsDir() {
		fsys = os.DirFS(location)
	} else {
		f, err := zip.OpenReader(location)
		if err != nil {
			return nil, nil, fmt.Errorf("%s is neither a directory nor a zip file: %w", location, err)
		}
		fsys, closeFn = f, f.Close
	}
	a, err := Open(fsys)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return a, closeFn, nil
}

// Open loads the roster of the export container rooted at fsys.  Everything
// else is read on demand.
func Open(fsys fs.FS) (*Archive, error) {
	a := &Archive{
		fsys:        fsys,
		files:       make(map[string][]byte),
		memberships: make(map[convo.Kind][]Membership),
	}
	users, err := unmarshal[[]slack.User](a, rosterFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoRoster, err)
	}
	a.roster = identity.Roster(users)
	return a, nil
}

// Roster returns the user roster of the archive.
func (a *Archive) Roster() identity.Roster { return a.roster }

// readFile reads the named file once, serving repeats from the cache.
func (a *Archive) readFile(name string) ([]byte, error) {
	if data, ok := a.files[name]; ok {
		return data, nil
	}
	data, err := fs.ReadFile(a.fsys, name)
	if err != nil {
		return nil, err
	}
	a.files[name] = data
	return data, nil
}

// unmarshal decodes the named cached file into T.
func unmarshal[T any](a *Archive, name string) (T, error) {
	var v T
	data, err := a.readFile(name)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// indexEntries enumerates the two-segment message file paths of the
// container.  Top-level metadata files do not match the pattern and are
// skipped; so are subdirectory files not named after a date.
func (a *Archive) indexEntries() ([]entry, error) {
	if a.entries != nil {
		return a.entries, nil
	}
	names, err := fs.Glob(a.fsys, "*/*.json")
	if err != nil {
		return nil, err
	}
	entries := make([]entry, 0, len(names))
	for _, name := range names {
		date := strings.TrimSuffix(path.Base(name), ".json")
		if _, err := time.Parse(dateLayout, date); err != nil {
			slog.Debug("skipping non-date file", "path", name)
			continue
		}
		entries = append(entries, entry{path: name, dir: path.Dir(name), date: date})
	}
	a.entries = entries
	return entries, nil
}

// AvailableDates returns the sorted distinct dates covered by the archive.
func (a *Archive) AvailableDates() ([]string, error) {
	entries, err := a.indexEntries()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(entries))
	var dates []string
	for _, e := range entries {
		if !seen[e.date] {
			seen[e.date] = true
			dates = append(dates, e.date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// kindMemberships loads the membership metadata file of the kind.  A kind
// absent from the container is not an error, the export simply has no
// conversations of that kind.
func (a *Archive) kindMemberships(kind convo.Kind) ([]Membership, error) {
	if ms, ok := a.memberships[kind]; ok {
		return ms, nil
	}
	var ms []Membership
	if kind == convo.KindDMs {
		dms, err := unmarshal[[]dm](a, kind.MembershipFile())
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		for _, d := range dms {
			ms = append(ms, Membership{ID: d.ID, Members: d.Members})
		}
	} else {
		chans, err := unmarshal[[]slack.Channel](a, kind.MembershipFile())
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		for _, ch := range chans {
			ms = append(ms, Membership{ID: ch.ID, Name: ch.Name, Members: ch.Members})
		}
	}
	a.memberships[kind] = ms
	return ms, nil
}

// Conversations returns the conversations of the kind as recorded in the
// archive's membership metadata.
func (a *Archive) Conversations(kind convo.Kind) ([]Membership, error) {
	return a.kindMemberships(kind)
}

// records decodes the message records of one entry.
func (a *Archive) records(path string) ([]message.RawRecord, error) {
	return unmarshal[[]message.RawRecord](a, path)
}
