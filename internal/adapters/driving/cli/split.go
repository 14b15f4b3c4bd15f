package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
)

var splitCmd = &cobra.Command{
	Use:   "split [FILE]",
	Short: "Print the raw tokens of the input",
	Long: `Split the input on whitespace and print one token per line.
With --verbose each token is preceded by its byte offset.`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
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

	w := cmd.OutOrStdout()
	tokens := timeseriesService.Split(r, domain.SplitOptions{ChunkSize: opts.ChunkSize})
	for {
		tok, err := tokens.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(w, "%d\t%s\n", tok.Offset, tok.Text)
		} else {
			fmt.Fprintln(w, tok.Text)
		}
	}
}

// openArg opens the optional FILE argument of a command.
func openArg(cmd *cobra.Command, args []string) (io.Reader, func() error, error) {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	return openInput(cmd.Context(), cmd, path)
}
