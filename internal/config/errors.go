package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() to tell them apart.
var (
	// ErrUnknownDriver is returned when the database driver is not one of the
	// supported drivers (postgres, sqlite).
	ErrUnknownDriver = errors.New("unknown database driver: must be postgres or sqlite")

	// ErrEmptyDSN is returned when no data source name is configured.
	ErrEmptyDSN = errors.New("empty data source name: set --dsn or database.dsn")

	// ErrInvalidArticleLimit is returned when the number of top articles is not positive.
	ErrInvalidArticleLimit = errors.New("invalid article limit: must be positive")

	// ErrInvalidConnectTimeout is returned when the connect timeout is negative.
	// Use 0 for the default timeout.
	ErrInvalidConnectTimeout = errors.New("invalid connect timeout: must be non-negative")

	// ErrInvalidQueryTimeout is returned when the query timeout is negative.
	// Use 0 for no timeout.
	ErrInvalidQueryTimeout = errors.New("invalid query timeout: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidFormat is returned when the configured report format is unknown.
	ErrInvalidFormat = errors.New("invalid report format: must be text, json or markdown")
)
