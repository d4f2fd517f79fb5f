// Command rtfmt renders data rows through format strings chosen at run time
// and inspects format strings.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const envPrefix = "RTFMT"

const (
	prefixColor = lipgloss.Color("#7C3AED")
	keyColor    = lipgloss.Color("#6B7280")
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rtfmt",
		Short: "Run-time format strings",
		Long: `rtfmt renders rows from CSV, TSV, JSON, JSON Lines, YAML, TOML or
MessagePack files, optionally gzip or zstd compressed, through a brace
format string, and checks or tokenizes format strings. Every flag can also be set with an RTFMT_<FLAG> environment
variable.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newTokensCmd())
	root.AddCommand(newKindsCmd())
	return root
}

// options holds every flag of every command. Commands read the ones they
// declare.
type options struct {
	Color       string `mapstructure:"color"`
	Verbose     bool   `mapstructure:"verbose"`
	Data        string `mapstructure:"data"`
	Input       string `mapstructure:"input"`
	Compression string `mapstructure:"compression"`
	Header      bool   `mapstructure:"header"`
	Newline     bool   `mapstructure:"newline"`
	Workers     int    `mapstructure:"workers"`
}

// loadOptions merges the command's flags with RTFMT_* environment variables.
// A flag set on the command line wins over the environment.
func loadOptions(cmd *cobra.Command) (options, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return options{}, fmt.Errorf("failed to bind flags: %w", err)
	}
	var opts options
	if err := v.Unmarshal(&opts); err != nil {
		return options{}, fmt.Errorf("failed to read options: %w", err)
	}
	return opts, nil
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "rtfmt",
		Level:  level,
	})
	styles := log.DefaultStyles()
	styles.Prefix = lipgloss.NewStyle().Bold(true).Foreground(prefixColor)
	styles.Key = lipgloss.NewStyle().Foreground(keyColor)
	logger.SetStyles(styles)
	return logger
}

// colorEnabled resolves the --color mode for output written to w.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "on", "always":
		return true
	case "off", "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
