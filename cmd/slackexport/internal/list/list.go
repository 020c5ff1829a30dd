// Package list implements the archive listing commands.
package list

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/harrisonmb/slackexport/cmd/slackexport/internal/golang/base"
	"github.com/harrisonmb/slackexport/internal/archive"
	"github.com/harrisonmb/slackexport/internal/convo"
	"github.com/harrisonmb/slackexport/internal/identity"
)

var CmdList = &base.Command{
	Run:       runList,
	UsageLine: "slackexport list",
	Short:     "list the users or conversations of an archive",
	Long:      `
List prints the users or the conversations found in an export archive,
which is useful for picking the -user and -channel values for the export
command.
`,
	Commands: []*base.Command{
		CmdListUsers,
		CmdListChannels,
	},
}

func runList(ctx context.Context, cmd *base.Command, args []string) error {
	cmd.Usage()
	return nil
}

// listFunc writes one listing of the archive to the writer.
type listFunc func(w io.Writer, a *archive.Archive) error

func list(args []string, fn listFunc) error {
	if len(args) != 1 {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("expected one archive location argument")
	}
	a, closeFn, err := archive.OpenLocation(args[0])
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	defer closeFn()
	return fn(os.Stdout, a)
}

var CmdListUsers = &base.Command{
	UsageLine:  "slackexport list users <archive>",
	Short:      "list the users of the archive",
	Long:       `List users prints the roster of the export archive.`,
	PrintFlags: true,
}

func init() {
	CmdListUsers.Run = func(_ context.Context, _ *base.Command, args []string) error {
		return list(args, printUsers)
	}
}

func printUsers(w io.Writer, a *archive.Archive) error {
	const strFormat = "%s\t%s\t%s\t%s\n"
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer writer.Flush()

	fmt.Fprintf(writer, strFormat, "Name", "ID", "Email", "Status")
	fmt.Fprintf(writer, strFormat, "", "", "", "")

	roster := a.Roster()
	ids := make([]string, 0, len(roster))
	for _, u := range roster {
		ids = append(ids, u.ID)
	}
	sort.Strings(ids)
	for _, id := range ids {
		who := roster.Resolve(identity.Hints{ID: id})
		if _, err := fmt.Fprintf(writer, strFormat, who.Display(), who.ID, who.Email, who.Status); err != nil {
			return fmt.Errorf("writer error: %w", err)
		}
	}
	return nil
}

var CmdListChannels = &base.Command{
	UsageLine:  "slackexport list channels <archive>",
	Short:      "list the conversations of the archive",
	Long:       `List channels prints the conversations of every kind found in the archive.`,
	PrintFlags: true,
}

func init() {
	CmdListChannels.Run = func(_ context.Context, _ *base.Command, args []string) error {
		return list(args, printChannels)
	}
}

func printChannels(w io.Writer, a *archive.Archive) error {
	const strFormat = "%s\t%s\t%s\t%d\n"
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer writer.Flush()

	fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", "Kind", "Name", "ID", "Members")
	for _, kind := range convo.Kinds() {
		convos, err := a.Conversations(kind)
		if err != nil {
			return err
		}
		for _, c := range convos {
			if _, err := fmt.Fprintf(writer, strFormat, kind, c.Name, c.ID, len(c.Members)); err != nil {
				return fmt.Errorf("writer error: %w", err)
			}
		}
	}
	return nil
}
