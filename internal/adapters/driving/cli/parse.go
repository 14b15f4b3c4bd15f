package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shorttimeseries/internal/adapters/driven/sink"
	"github.com/custodia-labs/shorttimeseries/internal/adapters/driven/source"
	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driven"
	"github.com/custodia-labs/shorttimeseries/internal/logger"
)

var (
	initialFlag string
	formatFlag  string
	dbFlag      string
	followFlag  bool
	colorFlag   string
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&initialFlag, "initial", "i", "",
		`starting point: a token such as "2000" or a date such as "2000-02-02 02:02"`)
	f.StringVarP(&formatFlag, "format", "f", "", "output format: text, json or sqlite (default from config, else text)")
	f.StringVar(&dbFlag, "db", "", "directory of the sqlite database used by --format sqlite")
	f.BoolVar(&followFlag, "follow", false, "keep reading FILE as it grows until interrupted")
	f.StringVar(&colorFlag, "color", "", "style text output: auto, always or never")
}

func runParse(cmd *cobra.Command, args []string) error {
	if timeseriesService == nil {
		return errors.New("timeseries service not configured")
	}

	settings := currentSettings()
	opts, err := parseOptions(settings)
	if err != nil {
		return err
	}
	if opts.Initial, err = parseInitial(initialFlag); err != nil {
		return err
	}
	format, err := outputFormat(formatFlag, settings)
	if err != nil {
		return err
	}
	color, err := colorMode(colorFlag, settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	r, cleanup, err := openInput(ctx, cmd, path)
	if err != nil {
		return err
	}
	defer cleanup() //nolint:errcheck // read-only input

	stream, err := timeseriesService.Parse(r, opts)
	if err != nil {
		return err
	}

	out, closeOut, err := newSink(ctx, cmd, format, color, domain.Run{
		Source:    source.Name(path),
		Precision: opts.EffectivePrecision(),
	}, settings)
	if err != nil {
		return err
	}
	defer closeOut()

	for {
		entry, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, context.Canceled) {
			logger.Info("interrupted, dropping any unfinished entry")
			break
		}
		if err != nil {
			return err
		}
		if err := out.Write(ctx, entry); err != nil {
			return err
		}
	}

	return out.Close()
}

// openInput opens the command's input. Standard input comes from the
// command so that it can be replaced in tests.
func openInput(ctx context.Context, cmd *cobra.Command, path string) (io.Reader, func() error, error) {
	if followFlag {
		f, err := source.Follow(ctx, path)
		if err != nil {
			return nil, nil, usageError{err}
		}
		return f, f.Close, nil
	}
	if path == "" || path == source.Stdin {
		return cmd.InOrStdin(), func() error { return nil }, nil
	}
	return source.Open(path)
}

// newSink creates the sink for format. The returned cleanup releases
// anything the sink depends on and must be called after Close.
func newSink(
	ctx context.Context,
	cmd *cobra.Command,
	format domain.OutputFormat,
	color domain.ColorMode,
	run domain.Run,
	settings domain.Settings,
) (driven.TimestampSink, func(), error) {
	w := cmd.OutOrStdout()

	switch format {
	case domain.OutputJSON:
		return sink.NewJSONSink(w), func() {}, nil

	case domain.OutputSQLite:
		if openStore == nil {
			return nil, nil, errors.New("run store not configured")
		}
		store, err := openStore(storeDir(dbFlag, settings))
		if err != nil {
			return nil, nil, fmt.Errorf("opening run store: %w", err)
		}
		s, err := sink.NewStoreSink(ctx, store, run)
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("starting run: %w", err)
		}
		cleanup := func() {
			logger.Info("stored %d entries in run %s", s.Count(), s.Run().ID)
			cmd.Printf("run %s: %d entries\n", s.Run().ID, s.Count())
			if err := store.Close(); err != nil {
				logger.Warn("closing run store: %v", err)
			}
		}
		return s, cleanup, nil

	default:
		styles := sink.NewStyles(w, nil, useColor(color, w))
		return sink.NewTextSink(w, sink.WithStyles(styles), sink.WithTokens(verbose)), func() {}, nil
	}
}
