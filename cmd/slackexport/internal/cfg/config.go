package cfg

import (
	"flag"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/harrisonmb/slackexport/cmd/slackexport/internal/golang/base"
)

// Config is the optional TOML configuration file with default export
// settings.  Flags given on the command line win over the file values.
type Config struct {
	Format   string `toml:"format"`
	Timezone string `toml:"timezone"`
	Output   string `toml:"output"`
}

// LoadConfig reads the TOML configuration file.
func LoadConfig(path string) (Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return c, fmt.Errorf("reading config %s: %w", path, err)
	}
	return c, nil
}

// ApplyConfig overlays the file values onto the package variables for every
// flag the user did not set explicitly on the command.
func ApplyConfig(cmd *base.Command) error {
	if ConfigFile == "" {
		return nil
	}
	c, err := LoadConfig(ConfigFile)
	if err != nil {
		return err
	}
	set := map[string]bool{}
	cmd.Flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if c.Format != "" && !set["format"] {
		if err := Format.Set(c.Format); err != nil {
			return err
		}
	}
	if c.Timezone != "" && !set["tz"] {
		Timezone = c.Timezone
	}
	if c.Output != "" && !set["base"] {
		BaseLoc = c.Output
	}
	return nil
}
