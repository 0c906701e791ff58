package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/regfetch/config"
	"github.com/s0up4200/regfetch/regulations"
)

var (
	cfgFile      string
	apiKey       string
	prettyOutput bool
	cfg          *config.Config
	client       regulations.API

	// logger is replaced by setupLogger once the config is loaded
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "regfetch",
	Short: "Fetch dockets and documents from the regulations.gov API",
	Long: `regfetch retrieves regulatory dockets and documents from the
regulations.gov v3 API and lists the file format links of a document,
including the links of its attachments.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "regulations.gov API key (overrides api.key)")
	rootCmd.PersistentFlags().BoolVar(&prettyOutput, "pretty", false, "pretty-print JSON output")

	// Errors are logged by Execute in the configured log format
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(docketCmd)
	rootCmd.AddCommand(documentCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override API key from command line if specified
	if cmd.Flags().Changed("api-key") {
		cfg.API.Key = apiKey
	}
	if cmd.Flags().Changed("pretty") {
		cfg.Output.Pretty = prettyOutput
	}

	userAgent := cfg.API.UserAgent
	if userAgent == "" {
		userAgent = "regfetch/" + version
	}

	client, err = regulations.NewClient(cfg.API.Key,
		regulations.WithBaseURL(cfg.API.BaseURL),
		regulations.WithTimeout(cfg.API.Timeout),
		regulations.WithUserAgent(userAgent),
		regulations.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create regulations client: %w", err)
	}

	return nil
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

	// Console format, colored only on a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// reportError logs a command failure with the API error details, if any
func reportError(err error) {
	event := logger.Error().Err(err)

	var apiErr *regulations.APIError
	if errors.As(err, &apiErr) {
		event = event.
			Str("kind", apiErr.Kind.String()).
			Int("status", apiErr.StatusCode)
		if apiErr.IsRateLimited() && apiErr.RetryAfter > 0 {
			event = event.Dur("retry_after", apiErr.RetryAfter)
		}
	}

	event.Msg("Command failed")
}
