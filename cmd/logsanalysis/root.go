// Package main provides the entry point for the logsanalysis CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/logsanalysis/internal/config"
)

// NewRootCmd creates the root command for logsanalysis.
// Running it without a subcommand prints the three reports.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logsanalysis",
		Short: "Report on the news site access log",
		Long: `logsanalysis connects to the news database and prints three reports:

- the most popular articles of all time
- the most popular authors of all time
- the days on which more than 1% of requests led to errors

With no flags it connects to the local PostgreSQL database "news".
Connection details can also come from libpq PG* environment variables,
which are read from a .env file in the working directory when present.

Examples:
  # Print the reports as text
  logsanalysis

  # Use a remote database and show the top 5 articles
  logsanalysis --dsn "host=db.internal dbname=news user=report" --articles 5

  # Run against an exported SQLite copy
  logsanalysis --driver sqlite --dsn ./news.db

  # Write a Markdown report to a file
  logsanalysis --markdown -o reports/news.md

Configuration file (.logsanalysis) example:
  database:
    driver: postgres
    dsn: "dbname=news"
  report:
    articles: 3
    format: text`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		RunE:          runReportCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Connection flags
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .logsanalysis in current or home directory)")
	cmd.Flags().String("driver", config.DefaultDriver,
		"Database driver (postgres or sqlite)")
	cmd.Flags().String("dsn", config.DefaultDSN,
		"Data source name passed to the driver")
	cmd.Flags().Duration("connect-timeout", config.DefaultConnectTimeout,
		"Timeout for connecting to the database")
	cmd.Flags().Duration("query-timeout", 0,
		"Timeout for running all reports (0 means none)")

	// Report flags
	cmd.Flags().IntP("articles", "n", config.DefaultArticleLimit,
		"Number of articles in the most popular articles report")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Add subcommands
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
