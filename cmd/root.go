package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opencamara/camara-go/camara"
	"github.com/opencamara/camara-go/config"
	"github.com/opencamara/camara-go/filter"
	"github.com/opencamara/camara-go/output"
)

var (
	cfgFile     string
	cfg         *config.Config
	logger      zerolog.Logger
	loggerReady bool
	client      *camara.Client
	filters     *filter.Manager

	// Global flags
	outputFormat string
	whereExpr    string
	fields       []string
	noColor      bool
	timeout      time.Duration
	retries      int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "camara",
	Short: "Query the Brazilian Chamber of Deputies Open Data API",
	Long: `camara is a CLI for the Open Data API of the Brazilian Chamber of Deputies
(dadosabertos.camara.leg.br). It lists deputies, expenses, bills, votes, parties,
committees, events and parliamentary fronts, follows pagination transparently,
and can bulk-enrich and graph the data.

Results can be filtered with --where using expr syntax over the record fields:

  camara deputados --uf SP --where 'siglaPartido in ["PT", "PSOL"]'
  camara despesas 204554 --ano 2023 --where 'valorLiquido > 1000' -o json

Named filters from the config file are referenced as --where @name.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: func(*cobra.Command, []string) error { return closeClient() },
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// PersistentPostRunE is skipped when a command fails
		_ = closeClient()
		if loggerReady {
			logger.Error().Err(err).Msg("Command failed")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./camara.yaml or ~/.config/camara/camara.yaml)")
	flags.StringVarP(&outputFormat, "output", "o", "", "output format: table, json or yaml")
	flags.StringVarP(&whereExpr, "where", "w", "", "filter expression, or @name for a filter from the config file")
	flags.StringSliceVar(&fields, "fields", nil, "comma-separated list of fields to show, in order")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.DurationVar(&timeout, "timeout", 0, "per-request timeout (e.g. 10s)")
	flags.IntVar(&retries, "retries", 0, "maximum retries for failed requests")
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Command line flags win over file and environment
	applyFlagOverrides(cmd)

	// Setup logger
	logger = setupLogger(cfg.Logging)
	loggerReady = true
	if cfg.File != "" {
		logger.Debug().Str("file", cfg.File).Msg("Loaded configuration")
	}

	if _, err := output.ParseFormat(cfg.Output.Format); err != nil {
		return err
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter); err != nil {
		return fmt.Errorf("invalid filter in config: %w", err)
	}

	client, err = camara.NewClient(cfg.ToClientConfig(), logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	return nil
}

func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Format = outputFormat
	}
	if flags.Changed("fields") {
		cfg.Output.Fields = fields
	}
	if flags.Changed("no-color") && noColor {
		cfg.Output.Color = false
		cfg.Logging.Color = false
	}
	if flags.Changed("timeout") {
		cfg.API.Timeout = timeout
	}
	if flags.Changed("retries") {
		cfg.API.MaxRetries = retries
	}
}

// closeClient releases the client's connection pool. Safe to call more than once.
func closeClient() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	out := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !output.ShouldColor(os.Stderr, false),
	}

	return zerolog.New(out).With().Timestamp().Logger()
}

// render normalises v into records, applies --where and --fields, and prints
// the result in the configured format.
func render(cmd *cobra.Command, v any) error {
	table, err := output.Normalize(v)
	if err != nil {
		return err
	}

	if whereExpr != "" {
		f, err := filters.Resolve(whereExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		before := len(table.Rows)
		if table.Rows, err = f.Apply(table.Rows); err != nil {
			return err
		}
		logger.Debug().
			Str("filter", f.Expression()).
			Int("matched", len(table.Rows)).
			Int("total", before).
			Msg("Applied filter")
	}

	table.Select(cfg.Output.Fields)

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	scheme := output.NoColorScheme()
	if cfg.Output.Color && output.ShouldColor(w, noColor) {
		scheme = output.DefaultColorScheme()
	}
	return output.NewPrinter(w, format, output.WithColors(scheme)).Print(table)
}
