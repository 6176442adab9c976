package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/mepower/internal/config"
	"github.com/nao1215/mepower/internal/fetcher"
	"github.com/nao1215/mepower/internal/log"
	"github.com/nao1215/mepower/internal/pipeline"
	"github.com/nao1215/mepower/internal/report"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Running it scrapes the portal.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mepower",
		Short: "Scrape Central Maine Power outage reports into NDJSON",
		Long: `mepower walks the Central Maine Power outage portal (counties, then towns,
then streets) and writes one JSON object per affected street to stdout.

Every line carries the portal update time and the county and town totals of
the street. When the portal reports no outages a single "No outage data
found." line is written; when it cannot be read, a single "Scraping Error"
line is written instead. Both cases exit with status 0.

Examples:
  # Save the current report
  mepower > outages.json

  # Pretty-print with jq
  mepower | jq .

  # Fetch sequentially with a timeout and two retries
  mepower -n 1 -t 30s --retries 2

  # Emit a record for every county or town page that fails
  mepower --on-branch-error report

  # Render a markdown table
  mepower -f markdown -o outages.md`,
		Args:          cobra.NoArgs,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRootCmd,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format: text or json")

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .mepower, then $XDG_CONFIG_HOME/mepower/config.yaml)")
	cmd.Flags().StringP("base-url", "u", config.DefaultBaseURL,
		"Directory of the outage portal that holds CMP.html")
	cmd.Flags().String("user-agent", fetcher.DefaultUserAgent,
		"User-Agent header sent with every request")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of pages fetched at once (1 fetches sequentially)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout (0 disables it)")
	cmd.Flags().Int("retries", config.DefaultRetries,
		"Extra attempts after a transport error, 429 or 5xx response")
	cmd.Flags().String("proxy", "",
		"HTTP(S) proxy URL")
	cmd.Flags().String("on-branch-error", pipeline.DefaultBranchPolicy.String(),
		"Handling of failing county or town pages: skip, report or abort")
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Output format: ndjson or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write output to the given file instead of stdout")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runRootCmd scrapes the portal and writes the records.
func runRootCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, closeOut, err := openOutput(cmd.OutOrStdout(), cfg.OutputFile)
	if err != nil {
		return err
	}
	defer closeOut()

	w, err := report.New(cfg.Format, out)
	if err != nil {
		return err
	}

	return scrape(ctx, cfg, w, logger)
}

// scrape runs one walk of the portal and writes its records with w.
func scrape(ctx context.Context, cfg *config.Config, w report.Writer, logger *slog.Logger) error {
	logger.Info("starting scrape",
		"base", cfg.BaseURL,
		"concurrency", cfg.Concurrency,
		"timeout", cfg.Timeout,
		"retries", cfg.Retries,
		"proxy", cfg.Proxy,
		"policy", cfg.BranchPolicy,
	)

	client := fetcher.New(
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithTimeout(cfg.Timeout),
		fetcher.WithRetries(cfg.Retries),
		fetcher.WithProxy(cfg.Proxy),
		fetcher.WithLogger(logger),
	)

	walker := pipeline.NewWalker(client, cfg.BaseURL,
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBranchPolicy(cfg.Policy()),
		pipeline.WithLogger(logger),
	)

	records, err := pipeline.NewScraper(walker, pipeline.WithScraperLogger(logger)).Run(ctx)
	if err != nil {
		return fmt.Errorf("scrape interrupted: %w", err)
	}

	if _, err := w.Write(records); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// buildConfig layers defaults, the configuration file and explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		if cfg.BaseURL, err = flags.GetString("base-url"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("retries") {
		if cfg.Retries, err = flags.GetInt("retries"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.Proxy, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("on-branch-error") {
		if cfg.BranchPolicy, err = flags.GetString("on-branch-error"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("format") {
		if cfg.Format, err = flags.GetString("format"); err != nil {
			return nil, err
		}
	}

	if cfg.OutputFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, err
	}
	if cfg.LogFormat, err = flags.GetString("log-format"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// openOutput returns the file at path, creating parent directories, or
// stdout when path is empty.
func openOutput(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
