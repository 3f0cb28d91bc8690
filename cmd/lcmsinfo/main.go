// Command lcmsinfo inspects ICC profiles and IT8 files and runs colours and
// images through Little CMS transforms.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jrshoare/golcms"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        = defaultConfig()
)

var rootCmd = &cobra.Command{
	Use:           "lcmsinfo",
	Short:         "Inspect ICC profiles and apply colour transforms",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			c, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg.merge(c, cmd.Flags())
		}
		level, err := parseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(l)
		golcms.SetLogger(l)
		return nil
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configPath, "config", "", "TOML configuration file")
	f.StringVar(&cfg.Input, "in", cfg.Input, "input profile: a file or srgb, lab, xyz")
	f.StringVar(&cfg.Output, "out", cfg.Output, "output profile: a file or srgb, lab, xyz")
	f.StringVar(&cfg.Intent, "intent", cfg.Intent, "rendering intent")
	f.BoolVar(&cfg.BPC, "bpc", cfg.BPC, "use black point compensation")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
