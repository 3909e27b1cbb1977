package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/nao1215/webaudit/internal/audit"
	"github.com/nao1215/webaudit/internal/client"
	"github.com/nao1215/webaudit/internal/config"
	applog "github.com/nao1215/webaudit/internal/log"
	"github.com/nao1215/webaudit/internal/report"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [url...]",
		Short: "Audit one or more web pages",
		Long: `Analyze submits each URL to the audit service and prints a report with
the four scores and every issue found, including how to fix it.

Each URL must be an absolute http or https URL. Invalid URLs and failed
audits are reported per URL; the command exits non-zero when any URL
failed.

Examples:
  # Audit a single page
  webaudit analyze https://example.com

  # Audit several pages, two at a time
  webaudit analyze -b 2 https://example.com https://example.org

  # Write a JSON report and its SHA3-256 checksum
  webaudit analyze -j -o reports/example.json --checksum https://example.com

  # Use a self-hosted audit service behind a SOCKS5 proxy
  webaudit analyze -e http://localhost:3000/api/analyze --proxy 127.0.0.1:1080 https://example.com`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	addServiceFlags(cmd)

	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent audits")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("checksum", false,
		"Write a SHA3-256 checksum of the report next to --output")

	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildAnalyzeConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.ValidateAnalyze(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := applog.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runAnalyze(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// buildAnalyzeConfig extends buildConfig with the analyze-only flags.
func buildAnalyzeConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("batch") {
		if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
			return nil, err
		}
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.WriteChecksum, err = flags.GetBool("checksum"); err != nil {
		return nil, err
	}

	cfg.Targets = args
	return cfg, nil
}

// newClient creates the audit service client for cfg.
func newClient(cfg *config.Config, logger *slog.Logger) (*client.Client, error) {
	c, err := client.New(cfg.Endpoint,
		client.WithTimeout(cfg.Timeout),
		client.WithProxy(cfg.ProxyAddress),
		client.WithHeaders(cfg.Headers),
		client.WithUserAgent(cfg.UserAgent),
		client.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit client: %w", err)
	}
	return c, nil
}

// runAnalyze audits every target and writes the report. Progress goes to
// progress, the report to stdout unless cfg.ReportFile is set.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, progress io.Writer) error {
	c, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	runner := audit.NewBatchRunner(
		func() *audit.Lifecycle {
			return audit.NewLifecycle(c, audit.WithLogger(logger))
		},
		audit.WithConcurrency(cfg.BatchSize),
		audit.WithBatchLogger(logger),
	)

	total := len(cfg.Targets)
	reports := make([]*report.Report, total)
	start := time.Now()

	var mu sync.Mutex
	done := 0
	err = runner.Run(ctx, cfg.Targets, func(state audit.State, index int) {
		r := report.FromState(state, time.Now())

		mu.Lock()
		defer mu.Unlock()
		reports[index] = r
		done++
		fmt.Fprintf(progress, "[%d/%d] %s: %s\n", done, total, r.URL, r.Status)
	})
	if err != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}

	if total > 1 {
		fmt.Fprintf(progress, "Analyzed %d URLs in %s\n", total, time.Since(start).Round(time.Millisecond))
	}

	if err := outputReports(cfg, reports, stdout); err != nil {
		return err
	}
	if cfg.WriteChecksum {
		sumPath, err := report.WriteChecksumFile(cfg.ReportFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(progress, "Checksum written to %s\n", sumPath)
	}

	if !report.AnyFailed(reports) {
		return nil
	}
	failed := 0
	for _, r := range reports {
		if r.Failed() {
			failed++
		}
	}
	return fmt.Errorf("%d of %d URLs could not be analyzed", failed, total)
}

// newWriter selects the report format of cfg.
func newWriter(cfg *config.Config, w io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(w, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewSimpleWriter(w)
	}
}

// outputReports renders reports to stdout or cfg.ReportFile.
func outputReports(cfg *config.Config, reports []*report.Report, stdout io.Writer) error {
	if cfg.ReportFile == "" {
		_, err := newWriter(cfg, stdout).WriteAll(reports)
		return err
	}

	var buf bytes.Buffer
	if _, err := newWriter(cfg, &buf).WriteAll(reports); err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.ReportFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	// Reports may reveal internal URLs, so only the owner can read them.
	if err := os.WriteFile(cfg.ReportFile, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
