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

	"github.com/spf13/cobra"

	"github.com/nao1215/logsanalysis/internal/config"
	"github.com/nao1215/logsanalysis/internal/database"
	"github.com/nao1215/logsanalysis/internal/log"
	"github.com/nao1215/logsanalysis/internal/model"
	"github.com/nao1215/logsanalysis/internal/pipeline"
	"github.com/nao1215/logsanalysis/internal/report"
)

// runReportCmd executes the root command.
func runReportCmd(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(config.DefaultEnvFile); err != nil {
		return err
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling so an interrupt aborts the running query
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runReport(ctx, cfg, cmd.OutOrStdout(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the config file and the
// command flags. Flags override the file only when set on the command line.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use defaults if no file found.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	flags := cmd.Flags()
	if flags.Changed("driver") {
		if cfg.Driver, err = flags.GetString("driver"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("dsn") {
		if cfg.DSN, err = flags.GetString("dsn"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("connect-timeout") {
		if cfg.ConnectTimeout, err = flags.GetDuration("connect-timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("query-timeout") {
		if cfg.QueryTimeout, err = flags.GetDuration("query-timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("articles") {
		if cfg.ArticleLimit, err = flags.GetInt("articles"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		if cfg.ReportFile, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}

	if getVerboseFlag(cmd) {
		cfg.Verbose = true
	}

	return cfg, nil
}

// runReport connects to the database, runs the three reports and writes
// them to stdout or cfg.ReportFile. Text output is written section by
// section as each query finishes; other formats are written once at the end.
func runReport(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) (err error) {
	logger.Debug("connecting to database",
		"driver", cfg.Driver,
		"dsn", cfg.DSN,
	)

	opts := cfg.DatabaseOptions()
	opts.Logger = logger
	db, err := database.Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}()

	output, closeOutput, err := openOutput(cfg.ReportFile, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	writer, err := report.NewWriter(cfg.OutputFormat(), output)
	if err != nil {
		return err
	}

	if cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.QueryTimeout)
		defer cancel()
	}

	pipelineOpts := []pipeline.Option{pipeline.WithLogger(logger)}
	sectionWriter, streaming := writer.(report.SectionWriter)
	if streaming {
		pipelineOpts = append(pipelineOpts, pipeline.WithAfterStep(
			func(_ context.Context, step pipeline.Step, r *model.Report) error {
				_, err := sectionWriter.WriteSection(step.Section(), r)
				return err
			},
		))
	}

	rep := model.NewReport()
	p := pipeline.DefaultPipeline(db, cfg.ArticleLimit, pipelineOpts...)
	if err := p.Execute(ctx, rep); err != nil {
		return err
	}

	if !streaming {
		if _, err := writer.Write(rep); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	logger.Debug("report completed",
		"complete", rep.IsComplete(),
		"articles", len(rep.TopArticles),
		"authors", len(rep.PopularAuthors),
		"errorDays", len(rep.ErrorDays),
	)
	return nil
}

// openOutput returns the report destination. An empty path means stdout.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}
