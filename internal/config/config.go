package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/logsanalysis/internal/database"
	"github.com/nao1215/logsanalysis/internal/model"
	"github.com/nao1215/logsanalysis/internal/report"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "logsanalysis"

	// DefaultDriver is the database/sql driver of the production log database.
	DefaultDriver = database.DriverPostgres

	// DefaultDSN connects to the local "news" database.
	DefaultDSN = database.DefaultDSN

	// DefaultArticleLimit is the number of rows in the most popular articles report.
	DefaultArticleLimit = model.DefaultTopArticles

	// DefaultConnectTimeout bounds the initial connection and ping.
	DefaultConnectTimeout = database.DefaultConnectTimeout

	// DefaultFormat is the plain text report.
	DefaultFormat = report.FormatText
)

// Config holds all configuration options for a report run.
// It is populated from defaults, the config file and CLI flags, in that
// order, and passed to the run rather than kept in global state.
type Config struct {
	// Driver is the database/sql driver name: "postgres" or "sqlite".
	Driver string

	// DSN is the data source name passed to the driver. For postgres this is
	// a libpq connection string or URL; for sqlite it is a file path.
	DSN string

	// ArticleLimit is the number of rows in the most popular articles report.
	ArticleLimit int

	// ConnectTimeout is the time allowed for connecting and the initial ping.
	// Zero means DefaultConnectTimeout.
	ConnectTimeout time.Duration

	// QueryTimeout bounds the three report queries together.
	// Zero means no timeout.
	QueryTimeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .logsanalysis in the current directory,
	// then in the user's home directory, then in the XDG config directory.
	ConfigFilePath string

	// Format is the report format read from the config file.
	// JSONReport and MarkdownReport take precedence over it.
	Format report.Format

	// JSONReport enables JSON report output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string
}

// NewConfig creates a new Config with default values.
// With no further changes the run reproduces the reports against the local
// "news" PostgreSQL database.
func NewConfig() *Config {
	db := database.DefaultOptions()
	return &Config{
		Driver:         db.Driver,
		DSN:            db.DSN,
		ArticleLimit:   DefaultArticleLimit,
		ConnectTimeout: db.ConnectTimeout,
		Format:         DefaultFormat,
	}
}

// XDGConfigDir returns the XDG config directory for the tool.
// On Linux: ~/.config/logsanalysis
// On macOS: ~/Library/Application Support/logsanalysis
// On Windows: %APPDATA%\logsanalysis
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the path of the config file inside XDGConfigDir.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), "config.yaml")
}

// OutputFormat returns the effective report format.
func (c *Config) OutputFormat() report.Format {
	switch {
	case c.JSONReport:
		return report.FormatJSON
	case c.MarkdownReport:
		return report.FormatMarkdown
	case c.Format == "":
		return DefaultFormat
	default:
		return c.Format
	}
}

// DatabaseOptions converts the connection settings into database.Options.
func (c *Config) DatabaseOptions() database.Options {
	return database.Options{
		Driver:         c.Driver,
		DSN:            c.DSN,
		ConnectTimeout: c.ConnectTimeout,
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the package sentinel errors.
// This is called once after all sources are merged, before connecting.
func (c *Config) Validate() error {
	if !database.SupportedDriver(c.Driver) {
		return ErrUnknownDriver
	}

	if c.DSN == "" {
		return ErrEmptyDSN
	}

	if c.ArticleLimit <= 0 {
		return ErrInvalidArticleLimit
	}

	if c.ConnectTimeout < 0 {
		return ErrInvalidConnectTimeout
	}

	if c.QueryTimeout < 0 {
		return ErrInvalidQueryTimeout
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.Format != "" {
		if _, err := report.ParseFormat(string(c.Format)); err != nil {
			return ErrInvalidFormat
		}
	}

	return nil
}
