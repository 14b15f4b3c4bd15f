package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var partialCmd = &cobra.Command{
	Use:   "partial [FILE]",
	Short: "Print the partial timestamp decoded from each token",
	Long: `Decode each token without resolving it against its predecessors.
Units the token leaves out are shown as '?'.

  $ echo "1230#lunch 5" | sts partial
  ?-?-? 12:30:? lunch
  ?-?-? ?:5:?`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: runPartial,
}

func init() {
	rootCmd.AddCommand(partialCmd)
}

func runPartial(cmd *cobra.Command, args []string) error {
	if timeseriesService == nil {
		return errors.New("timeseries service not configured")
	}

	opts, err := parseOptions(currentSettings())
	if err != nil {
		return err
	}

	r, cleanup, err := openArg(cmd, args)
	if err != nil {
		return err
	}
	defer cleanup() //nolint:errcheck // read-only input

	entries, err := timeseriesService.ParsePartial(r, opts)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for {
		entry, err := entries.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line := entry.Partial.String()
		if entry.Label != "" {
			line += " " + entry.Label
		}
		fmt.Fprintln(w, line)
	}
}
