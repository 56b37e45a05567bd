package config

import (
	"time"

	"github.com/nao1215/logsanalysis/internal/report"
)

// DatabaseSection holds the connection settings of the configuration file.
type DatabaseSection struct {
	// Driver is "postgres" or "sqlite".
	Driver string `yaml:"driver,omitempty"`

	// DSN is the data source name passed to the driver.
	DSN string `yaml:"dsn,omitempty"`

	// ConnectTimeout is a Go duration such as "5s".
	ConnectTimeout time.Duration `yaml:"connectTimeout,omitempty"`

	// QueryTimeout is a Go duration such as "1m". Zero means no timeout.
	QueryTimeout time.Duration `yaml:"queryTimeout,omitempty"`
}

// ReportSection holds the output settings of the configuration file.
type ReportSection struct {
	// Articles is the number of rows in the most popular articles report.
	Articles int `yaml:"articles,omitempty"`

	// Format is "text", "json" or "markdown".
	Format string `yaml:"format,omitempty"`

	// Output is a file path the report is written to instead of stdout.
	Output string `yaml:"output,omitempty"`
}

// File represents the structure of the .logsanalysis configuration file.
type File struct {
	Database DatabaseSection `yaml:"database,omitempty"`
	Report   ReportSection   `yaml:"report,omitempty"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose,omitempty"`
}

// Apply overrides cfg with every value set in the file.
// Zero values in the file leave cfg unchanged.
func (cf *File) Apply(cfg *Config) {
	if cf == nil {
		return
	}

	if cf.Database.Driver != "" {
		cfg.Driver = cf.Database.Driver
	}
	if cf.Database.DSN != "" {
		cfg.DSN = cf.Database.DSN
	}
	if cf.Database.ConnectTimeout != 0 {
		cfg.ConnectTimeout = cf.Database.ConnectTimeout
	}
	if cf.Database.QueryTimeout != 0 {
		cfg.QueryTimeout = cf.Database.QueryTimeout
	}

	if cf.Report.Articles != 0 {
		cfg.ArticleLimit = cf.Report.Articles
	}
	if cf.Report.Format != "" {
		// Unknown names are kept as written so Validate can report them.
		cfg.Format = report.Format(cf.Report.Format)
		if format, err := report.ParseFormat(cf.Report.Format); err == nil {
			cfg.Format = format
		}
	}
	if cf.Report.Output != "" {
		cfg.ReportFile = cf.Report.Output
	}

	if cf.Verbose {
		cfg.Verbose = true
	}
}
