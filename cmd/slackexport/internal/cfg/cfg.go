// Package cfg contains common configuration variables.
package cfg

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rusq/osenv/v2"

	"github.com/harrisonmb/slackexport/cmd/slackexport/internal/golang/base"
	"github.com/harrisonmb/slackexport/internal/render"
)

var (
	LogFile string
	Verbose bool

	ConfigFile string
	BaseLoc    string // output location - directory or a zip file
	Timezone   string
	Format     = render.CHTML
)

// SetBaseFlags sets the common flags on the command's flagset.
func SetBaseFlags(fs *flag.FlagSet, mask base.FlagMask) {
	fs.StringVar(&LogFile, "log", os.Getenv("LOG_FILE"), "log `file`, if not specified, messages are printed to STDERR")
	fs.BoolVar(&Verbose, "v", osenv.Value("DEBUG", false), "verbose messages")

	if mask&base.OmitOutputFlag == 0 {
		out := fmt.Sprintf("slackexport_%s.zip", time.Now().Format("20060102_150405"))
		fs.StringVar(&BaseLoc, "base", osenv.Value("BASE_LOC", out), "a `location` (a directory or a ZIP file) on the local disk to write\nthe documents to.")
	}
	if mask&base.OmitConfigFlag == 0 {
		fs.StringVar(&ConfigFile, "config", osenv.Value("CONFIG_FILE", ""), "configuration `file` with the default export settings.")
	}
	if mask&base.OmitTimezoneFlag == 0 {
		fs.StringVar(&Timezone, "tz", os.Getenv("TZ"), "IANA `timezone` to render the message times in (default: local time)")
	}
	if mask&base.OmitFormatFlag == 0 {
		fs.Var(&Format, "format", "output document `format`, one of 'html' or 'text'")
	}
}

// Location resolves the configured timezone.
func Location() (*time.Location, error) {
	if Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", Timezone, err)
	}
	return loc, nil
}
