// Package export implements the main command: it opens an export archive,
// builds the conversation index for the requested scope, and writes the
// rendered documents to the output location.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rusq/fsadapter"
	"github.com/schollz/progressbar/v3"

	"github.com/harrisonmb/slackexport/cmd/slackexport/internal/cfg"
	"github.com/harrisonmb/slackexport/cmd/slackexport/internal/golang/base"
	"github.com/harrisonmb/slackexport/internal/archive"
	"github.com/harrisonmb/slackexport/internal/convo"
	"github.com/harrisonmb/slackexport/internal/render"
)

var CmdExport = &base.Command{
	UsageLine: "slackexport export [flags] <archive>",
	Short:     "renders an export archive into readable documents",
	Long:      `
Export renders a Slack export archive (a ZIP file or an unpacked directory)
into one document per conversation kind.

Without any filters it renders the public and private channels.  With -user,
it renders everything the user took part in, including direct messages.  Use
-dates to narrow the export to an inclusive date range, and -channel to pick
a single channel or group.
`,
	PrintFlags: true,
}

var exportFlags struct {
	user    string
	channel string
	dates   string
}

func init() {
	CmdExport.Run = runExport
	CmdExport.Flag.StringVar(&exportFlags.user, "user", "", "`email` of the user whose activity to export")
	CmdExport.Flag.StringVar(&exportFlags.channel, "channel", "", "channel or group `name` (or id) to restrict the export to")
	CmdExport.Flag.StringVar(&exportFlags.dates, "dates", "", "inclusive date `range` as \"YYYY-MM-DD,YYYY-MM-DD\"")
}

func runExport(ctx context.Context, cmd *base.Command, args []string) error {
	if len(args) != 1 {
		base.SetExitStatus(base.SInvalidParameters)
		return errors.New("expected one archive location argument")
	}

	params, err := makeParams()
	if err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}
	if err := params.Validate(); err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}

	a, closeFn, err := archive.OpenLocation(args[0])
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	defer closeFn()
	slog.InfoContext(ctx, "archive open", "location", args[0], "users", len(a.Roster()))

	idx, err := a.BuildIndex(params)
	if err != nil {
		if errors.Is(err, archive.ErrUserNotFound) || errors.Is(err, archive.ErrUserNotActive) {
			base.SetExitStatus(base.SUserError)
		} else {
			base.SetExitStatus(base.SApplicationError)
		}
		return err
	}

	fsa, err := fsadapter.New(cfg.BaseLoc)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	defer fsa.Close()

	docs, messages := buildDocuments(idx)
	if err := render.WriteDocuments(fsa, cfg.Format, docs); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}

	color.Green("export complete: %s documents, %s messages, written to %s",
		humanize.Comma(int64(len(docs))), humanize.Comma(messages), cfg.BaseLoc)
	return nil
}

// buildDocuments flattens the index into renderable documents, one per
// conversation kind with content, and counts the messages in scope.
func buildDocuments(idx *archive.Index) ([]render.Document, int64) {
	bar := progressbar.Default(int64(len(convo.Kinds())), "rendering")
	defer bar.Finish()

	var (
		docs     []render.Document
		messages int64
	)
	for _, kind := range convo.Kinds() {
		bar.Add(1)
		buckets, ok := idx.Buckets[kind]
		if !ok {
			continue
		}
		docs = append(docs, render.Build(kind, buckets))
		for _, b := range buckets {
			for _, c := range b.Conversations {
				messages += int64(len(c.Messages()))
			}
		}
	}
	return docs, messages
}

// makeParams converts the flag values into index parameters.
func makeParams() (archive.Params, error) {
	loc, err := cfg.Location()
	if err != nil {
		return archive.Params{}, err
	}
	p := archive.Params{
		Email:    exportFlags.user,
		Channel:  exportFlags.channel,
		Location: loc,
	}
	if exportFlags.dates == "" {
		return p, nil
	}
	from, to, found := strings.Cut(exportFlags.dates, ",")
	if !found {
		return p, fmt.Errorf("invalid date range %q: expected start,end", exportFlags.dates)
	}
	const layout = "2006-01-02"
	if p.Start, err = time.Parse(layout, strings.TrimSpace(from)); err != nil {
		return p, fmt.Errorf("invalid start date: %w", err)
	}
	if p.End, err = time.Parse(layout, strings.TrimSpace(to)); err != nil {
		return p, fmt.Errorf("invalid end date: %w", err)
	}
	return p, nil
}
