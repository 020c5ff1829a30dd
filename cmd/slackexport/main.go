// Command slackexport renders Slack export archives into readable
// documents.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/harrisonmb/slackexport/cmd/slackexport/internal/cfg"
	"github.com/harrisonmb/slackexport/cmd/slackexport/internal/export"
	"github.com/harrisonmb/slackexport/cmd/slackexport/internal/golang/base"
	"github.com/harrisonmb/slackexport/cmd/slackexport/internal/golang/help"
	"github.com/harrisonmb/slackexport/cmd/slackexport/internal/list"
)

var build = "dev"

func init() {
	base.Slackexport.Commands = []*base.Command{
		export.CmdExport,
		list.CmdList,
		version,
	}
}

var version = &base.Command{
	UsageLine: "slackexport version",
	Short:     "print the version",
	Run: func(context.Context, *base.Command, []string) error {
		fmt.Println(build)
		return nil
	},
}

func main() {
	base.Usage = mainUsage
	flag.Usage = mainUsage
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		mainUsage()
	}
	base.CmdName = args[0]

	if args[0] == "help" {
		help.Help(os.Stdout, args[1:])
		base.Exit()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

BigCmdLoop:
	for bigCmd := base.Slackexport; ; {
		for _, cmd := range bigCmd.Commands {
			if cmd.Name() != args[0] {
				continue
			}
			if len(cmd.Commands) > 0 {
				bigCmd = cmd
				args = args[1:]
				if len(args) == 0 {
					help.PrintUsage(os.Stderr, bigCmd)
					base.SetExitStatus(base.SHelpRequested)
					base.Exit()
				}
				if args[0] == "help" {
					help.Help(os.Stdout, append(strings.Split(base.CmdName, " "), args[1:]...))
					base.Exit()
				}
				base.CmdName += " " + args[0]
				continue BigCmdLoop
			}
			if !cmd.Runnable() {
				continue
			}
			invoke(ctx, cmd, args)
			base.Exit()
		}
		helpArg := ""
		if i := strings.LastIndex(base.CmdName, " "); i >= 0 {
			helpArg = " " + base.CmdName[:i]
		}
		fmt.Fprintf(os.Stderr, "slackexport %s: unknown command\nRun 'slackexport help%s' for usage.\n", base.CmdName, helpArg)
		base.SetExitStatus(base.SInvalidParameters)
		base.Exit()
	}
}

func mainUsage() {
	help.PrintUsage(os.Stderr, base.Slackexport)
	base.SetExitStatus(base.SHelpRequested)
	base.Exit()
}

func invoke(ctx context.Context, cmd *base.Command, args []string) {
	if !cmd.CustomFlags {
		cfg.SetBaseFlags(&cmd.Flag, cmd.FlagMask)
		cmd.Flag.Usage = func() { cmd.Usage() }
		if err := cmd.Flag.Parse(args[1:]); err != nil {
			base.SetExitStatus(base.SInvalidParameters)
			base.Exit()
		}
		args = cmd.Flag.Args()
	}
	if err := cfg.ApplyConfig(cmd); err != nil {
		slog.Error("configuration error", "error", err)
		base.SetExitStatus(base.SInvalidParameters)
		return
	}
	if err := initLog(cfg.LogFile, cfg.Verbose); err != nil {
		slog.Error("log initialisation error", "error", err)
		base.SetExitStatus(base.SInitializationError)
		return
	}
	if err := cmd.Run(ctx, cmd, args); err != nil {
		slog.Error("command failed", "command", cmd.Name(), "error", err)
		if base.ExitStatus() == base.SNoError {
			base.SetExitStatus(base.SApplicationError)
		}
	}
}

// initLog sets up the default logger: debug level with -v, and writing to
// the log file, if one is requested.
func initLog(filename string, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	var w io.Writer = os.Stderr
	if filename != "" {
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		base.AtExit(func() { f.Close() })
		w = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}
