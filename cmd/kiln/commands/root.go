// Package commands implements the CLI commands for the kiln build tool.
package commands

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/ui/output"
)

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) (domain.BuildResult, error)
	Run(ctx context.Context, opts app.BuildOptions, args []string) (int, error)
	Clean(ctx context.Context, opts app.CleanOptions) error
	CompileDB(ctx context.Context, opts app.BuildOptions) (string, error)
}

// LogSettings is implemented by loggers whose format can be switched at runtime.
type LogSettings interface {
	SetJSON(enable bool)
	SetColor(mode output.ColorMode)
	SetVerbose(enable bool)
}

// TelemetrySettings is implemented by telemetry sessions that can write their recordings
// to files.
type TelemetrySettings interface {
	RecordJournal(path string) error
	ExportTrace(path string) error
}

// CLI represents the command line interface for kiln.
type CLI struct {
	app     Application
	logs    LogSettings
	tel     TelemetrySettings
	rootCmd *cobra.Command

	profile   string
	toolchain string
	jobs      int
	verbose   bool
	json      bool
	color     string
	journal   string
	trace     string
}

// Option configures a CLI.
type Option func(*CLI)

// WithLogSettings lets the global flags reconfigure the logger.
func WithLogSettings(l LogSettings) Option {
	return func(c *CLI) {
		c.logs = l
	}
}

// WithTelemetrySettings lets --journal and --trace redirect process telemetry.
func WithTelemetrySettings(t TelemetrySettings) Option {
	return func(c *CLI) {
		c.tel = t
	}
}

// WithDefaultToolchain sets the --toolchain default, normally taken from KILN_TOOLCHAIN.
func WithDefaultToolchain(name string) Option {
	return func(c *CLI) {
		c.toolchain = name
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "kiln",
		Short:         "An incremental build driver for C and C++ projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Persistent flags go first so -v stays with --verbose.
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.profile, "profile", "p", "debug", "Build profile to use")
	flags.StringVarP(&c.toolchain, "toolchain", "t", c.toolchain, "Toolchain to build with (gcc, clang, zig, msvc, clang-cl)")
	flags.IntVarP(&c.jobs, "jobs", "j", runtime.NumCPU(), "Maximum number of concurrent compiles")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Print every command before it runs")
	flags.BoolVar(&c.json, "json", false, "Write logs as JSON")
	flags.StringVar(&c.color, "color", "auto", "Color output: auto, always or never")
	flags.StringVar(&c.journal, "journal", "", "Write a progrock journal of every process to `file`")
	flags.StringVar(&c.trace, "trace", "", "Write OpenTelemetry spans of every process to `file` as JSON")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		mode, err := output.ParseColorMode(c.color)
		if err != nil {
			return err
		}
		if c.logs != nil {
			c.logs.SetJSON(c.json)
			c.logs.SetColor(mode)
			c.logs.SetVerbose(c.verbose)
		}
		return c.applyTelemetry()
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newCompDBCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) applyTelemetry() error {
	if c.tel == nil {
		return nil
	}
	if c.journal != "" {
		if err := c.tel.RecordJournal(c.journal); err != nil {
			return err
		}
	}
	if c.trace != "" {
		return c.tel.ExportTrace(c.trace)
	}
	return nil
}

// buildOptions collects the global flags.
func (c *CLI) buildOptions() app.BuildOptions {
	mode, _ := output.ParseColorMode(c.color)
	return app.BuildOptions{
		Profile:   c.profile,
		Toolchain: c.toolchain,
		Jobs:      c.jobs,
		Verbose:   c.verbose,
		Color:     mode,
	}
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
