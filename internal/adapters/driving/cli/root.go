// Package cli provides the sts command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driven"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driving"
	"github.com/custodia-labs/shorttimeseries/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Exit codes returned by Execute.
const (
	ExitOK     = 0
	ExitData   = 1
	ExitConfig = 2
)

// RunStoreCloser is a run store that owns resources.
type RunStoreCloser interface {
	driven.RunStore
	io.Closer
}

// StoreOpener opens the run store kept in dir.
type StoreOpener func(dir string) (RunStoreCloser, error)

// Services holds the application services used by commands.
type Services struct {
	Timeseries driving.TimeseriesService
	Settings   driving.SettingsService
	OpenStore  StoreOpener
}

var (
	timeseriesService driving.TimeseriesService
	settingsService   driving.SettingsService
	openStore         StoreOpener
)

// SetServices injects the application services.
func SetServices(s Services) {
	timeseriesService = s.Timeseries
	settingsService = s.Settings
	openStore = s.OpenStore
}

var (
	verbose bool
	debug   bool
)

// usageError marks errors in how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "sts [FILE]",
	Short: "Expand short timestamps into full ones",
	Long: `sts reads whitespace-separated short timestamps and prints each one
as a full timestamp.

Each token is a run of digits, optionally followed by '#' and a label.
Digits are read from the right in pairs: seconds (with --precision second),
minutes, hours, day, month, and whatever remains is the year. Units that
are left out are carried over from the previous timestamp; a value smaller
than the previous one rolls the next larger unit forward.

  $ echo "202001312359 0 30 0#lunch" | sts
  2020-01-31T23:59:00
  2020-02-01T00:00:00
  2020-02-01T00:30:00
  2020-02-01T01:00:00 lunch

FILE may be "-" for standard input, which is also the default.
Files ending in .gz are decompressed.`,
	Args:          usageArgs(cobra.MaximumNArgs(1)),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		switch {
		case debug:
			logger.SetLevel(logger.LevelDebug)
		case verbose:
			logger.SetLevel(logger.LevelInfo)
		default:
			logger.SetLevel(logger.LevelQuiet)
		}
	},
	RunE: runParse,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug output")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return exitCode(rootCmd, rootCmd.Execute())
}

func exitCode(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "sts: %v\n", err)

	var uerr usageError
	if errors.As(err, &uerr) || domain.IsConfigError(err) {
		return ExitConfig
	}
	return ExitData
}
