// Package cmd implements the CLI commands for opskit.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"opskit/config"
	"opskit/internal/confstore"
	"opskit/internal/logging"
	"opskit/internal/netprobe"
	"opskit/internal/sysinfo"
)

// DefaultBase is the toolkit base directory when neither --base nor
// OPSKIT_BASE is set. Named config resources live under <base>/etc/.
const DefaultBase = "/usr/local/opskit"

// App holds the application state shared across all commands.
type App struct {
	Store   *confstore.Store
	Sampler *sysinfo.Sampler
	Prober  *netprobe.Prober
	Out     io.Writer
	Err     io.Writer
	JSON    bool
}

var (
	// Global flags
	jsonOutput bool
	basePath   string
	logLevel   string

	// The App instance, initialized in PersistentPreRunE
	app *App
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "opskit",
	Short: "Small composable helpers for operational scripts",
	Long: `Opskit is a toolkit for operational scripts: a format-preserving
flat-file configuration store plus system and network probes.
Named config resources resolve to <base>/etc/<name>.conf.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		app, err = NewApp(basePath, jsonOutput, os.Stdout, os.Stderr)
		return err
	},
}

// NewApp creates a new App instance with initialized collaborators.
func NewApp(base string, jsonOutput bool, out, errOut io.Writer) (*App, error) {
	base = ResolveBase(base)

	cfg, err := config.Load(base)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	level := logLevel
	if level == "" {
		level = cfg.Log.Level
	}
	logging.Configure(logging.Config{Level: level, Output: errOut})

	return &App{
		Store:   confstore.New(base, componentLogger("confstore", cfg.Actor)),
		Sampler: sysinfo.New(),
		Prober: netprobe.New(cfg.Probe.Count,
			time.Duration(cfg.Probe.TimeoutSeconds)*time.Second,
			componentLogger("netprobe", cfg.Actor)),
		Out:  out,
		Err:  errOut,
		JSON: jsonOutput,
	}, nil
}

// componentLogger returns a component logger stamped with the acting user
// from settings, so config mutations are attributable in logs.
func componentLogger(component, actor string) zerolog.Logger {
	l := logging.WithComponent(component)
	if actor != "" {
		l = l.With().Str("actor", actor).Logger()
	}
	return l
}

// ResolveBase picks the toolkit base directory: the explicit flag value,
// then $OPSKIT_BASE, then the built-in default.
func ResolveBase(base string) string {
	if base != "" {
		return base
	}
	if env := os.Getenv("OPSKIT_BASE"); env != "" {
		return env
	}
	return DefaultBase
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetApp returns the initialized App instance.
// This should only be called from subcommand Run functions.
func GetApp() *App {
	return app
}

// UsageError marks a missing or malformed argument. Main maps it to the
// distinct exit code reserved for caller mistakes.
type UsageError struct {
	err error
}

func (e *UsageError) Error() string { return e.err.Error() }
func (e *UsageError) Unwrap() error { return e.err }

func usage(err error) error {
	if err == nil {
		return nil
	}
	return &UsageError{err: err}
}

// exactArgs wraps cobra.ExactArgs so argument mistakes surface as usage
// errors rather than processing failures.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usage(err)
		}
		for _, arg := range args {
			if arg == "" {
				return usage(fmt.Errorf("arguments cannot be empty"))
			}
		}
		return nil
	}
}

// ExitCode maps an Execute error onto the exit-code contract scripts rely
// on: 0 success, 1 lookup or processing failure, 2 missing arguments.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&basePath, "base", "", "Toolkit base directory (default: $OPSKIT_BASE or "+DefaultBase+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usage(err)
	})
}
