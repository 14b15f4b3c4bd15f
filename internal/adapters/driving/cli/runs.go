package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/shorttimeseries/internal/adapters/driven/sink"
	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
)

var (
	runsDB    string
	runsColor string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List runs stored with --format sqlite",
	Args:  usageArgs(cobra.NoArgs),
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show RUN_ID",
	Short: "Print the entries of a stored run",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE:  runRunsShow,
}

func init() {
	runsCmd.PersistentFlags().StringVar(&runsDB, "db", "", "directory of the sqlite database")
	runsCmd.Flags().StringVar(&runsColor, "color", "", "style the table: auto, always or never")
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func openRunStore() (RunStoreCloser, error) {
	if openStore == nil {
		return nil, errors.New("run store not configured")
	}
	store, err := openStore(storeDir(runsDB, currentSettings()))
	if err != nil {
		return nil, fmt.Errorf("opening run store: %w", err)
	}
	return store, nil
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	settings := currentSettings()
	color, err := colorMode(runsColor, settings)
	if err != nil {
		return err
	}

	store, err := openRunStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs stored.")
		return nil
	}

	w := cmd.OutOrStdout()
	styles := sink.NewStyles(w, nil, useColor(color, w))
	_, err = fmt.Fprintln(w, runsTable(styles, runs))
	return err
}

// runsTable lays out one row per run. First and last are "-" for runs
// without entries.
func runsTable(styles *sink.Styles, runs []domain.RunSummary) string {
	rows := make([][]string, 0, len(runs))
	for i := range runs {
		r := &runs[i]
		first, last := "-", "-"
		if r.Entries > 0 {
			first, last = r.First.String(), r.Last.String()
		}
		rows = append(rows, []string{
			r.ID, r.Source, string(r.Precision), strconv.Itoa(r.Entries), first, last,
			r.CreatedAt.Local().Format(time.DateTime),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Muted).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			return styles.Cell
		}).
		Headers("ID", "SOURCE", "PRECISION", "ENTRIES", "FIRST", "LAST", "CREATED").
		Rows(rows...).
		String()
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	store, err := openRunStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	entries, err := store.Entries(ctx, args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("run %s: %w", args[0], err)
	}
	if err != nil {
		return fmt.Errorf("reading run: %w", err)
	}

	out := sink.NewTextSink(cmd.OutOrStdout(), sink.WithTokens(verbose))
	for _, entry := range entries {
		if err := out.Write(ctx, entry); err != nil {
			return err
		}
	}
	return out.Close()
}
