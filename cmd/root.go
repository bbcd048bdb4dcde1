package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/osu-stats/config"
	"github.com/s0up4200/osu-stats/filter"
	"github.com/s0up4200/osu-stats/metrics"
	"github.com/s0up4200/osu-stats/osu"
)

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *osu.Client
	observer *metrics.Observer

	// Command flags
	jsonOutput bool
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "osu-stats",
	Short: "Query the osu! API for beatmaps, scores, matches and players",
	Long: `osu-stats is a CLI for the osu! v1 web API. It looks up beatmaps,
leaderboards, multiplayer matches, player profiles and top or recent plays,
and can narrow results down with filter expressions.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: writeMetrics,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Interrupts cancel in-flight requests.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

// initializeApp loads the configuration and builds the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if jsonOutput {
		cfg.Output.Format = config.OutputJSON
	}

	fetcher := newFetcher(cfg.Transport)
	observer = metrics.NewObserver()

	client = osu.NewClient(logger,
		osu.WithBaseURL(cfg.API.BaseURL),
		osu.WithFetcher(fetcher),
		osu.WithObserver(observer),
	)

	logger.Debug().
		Str("base_url", client.BaseURL()).
		Str("backend", cfg.Transport.Backend).
		Dur("timeout", cfg.Transport.Timeout).
		Msg("Client initialized")

	return nil
}

// newFetcher builds the transport selected by transport.backend
func newFetcher(tc config.TransportConfig) osu.Fetcher {
	if tc.Backend == config.BackendFastHTTP {
		return osu.NewFastHTTPFetcher(osu.NewFastHTTPClient(tc.MaxConnsPerHost, tc.Timeout))
	}
	return osu.NewHTTPFetcher(&http.Client{
		Timeout:   tc.Timeout,
		Transport: osu.NewTransport(tc.MaxConnsPerHost),
	})
}

// writeMetrics exports request metrics when metrics.textfile is set
func writeMetrics(cmd *cobra.Command, args []string) error {
	if cfg == nil || observer == nil || cfg.Metrics.Textfile == "" {
		return nil
	}
	if err := observer.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	logger.Debug().Str("path", cfg.Metrics.Textfile).Msg("Metrics written")
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(lc config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(lc.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if lc.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Color only makes sense on a terminal
	color := lc.Color && isatty.IsTerminal(os.Stderr.Fd())

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// addFilterFlags registers --filter and --preset on a listing command
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

// getFilterExpression determines the filter expression to use. An empty
// result means no filtering.
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if expression, ok := cfg.Filters[preset]; ok {
			return expression, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return "", nil
}

// applyFilter narrows records with the active filter, if any
func applyFilter[T any](records []T) ([]T, error) {
	expression, err := getFilterExpression()
	if err != nil || expression == "" {
		return records, err
	}

	f, err := filter.Compile[T](expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	filtered, err := f.Apply(records)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("filter", expression).
		Int("matched", len(filtered)).
		Int("total", len(records)).
		Msg("Filter applied")

	return filtered, nil
}

// parseMode parses an optional --mode flag value
func parseMode(s string) (*osu.PlayMode, error) {
	if s == "" {
		return nil, nil
	}
	m, err := osu.ParsePlayMode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid mode: %w", err)
	}
	return &m, nil
}
