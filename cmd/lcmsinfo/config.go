package main

import (
	"fmt"
	"os"

	"github.com/jrshoare/golcms"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// Config holds defaults shared by the subcommands. Command line flags win over
// the file.
type Config struct {
	Input    string `toml:"input"`
	Output   string `toml:"output"`
	Intent   string `toml:"intent"`
	BPC      bool   `toml:"bpc"`
	LogLevel string `toml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		Input:    "srgb",
		Output:   "srgb",
		Intent:   golcms.IntentPerceptual.String(),
		LogLevel: "warn",
	}
}

func loadConfig(path string) (Config, error) {
	c := defaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return c, nil
}

// merge copies the values of file that were not given on the command line.
func (c *Config) merge(file Config, flags *pflag.FlagSet) {
	set := func(name string, dst *string, v string) {
		if !flags.Changed(name) {
			*dst = v
		}
	}
	set("in", &c.Input, file.Input)
	set("out", &c.Output, file.Output)
	set("intent", &c.Intent, file.Intent)
	set("log-level", &c.LogLevel, file.LogLevel)
	if !flags.Changed("bpc") {
		c.BPC = file.BPC
	}
}

func (c *Config) flags() golcms.Flags {
	if c.BPC {
		return golcms.FlagBlackPointCompensation
	}
	return 0
}

// openProfile opens a profile file or one of the built-in profiles.
func openProfile(ctx *golcms.Context, name string) (*golcms.Profile, error) {
	switch name {
	case "", "srgb":
		return golcms.NewSRGBProfile(ctx)
	case "lab":
		return golcms.NewLab4Profile(ctx, nil)
	case "xyz":
		return golcms.NewXYZProfile(ctx)
	}
	return golcms.OpenProfileFile(ctx, name, "r")
}
