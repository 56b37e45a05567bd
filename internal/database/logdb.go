package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/logsanalysis/internal/model"
)

const (
	// DefaultDSN is the local "news" database. Host, user and password come
	// from the libpq PG* environment variables.
	DefaultDSN = "dbname=news"

	// DefaultConnectTimeout bounds the initial ping to the database server.
	DefaultConnectTimeout = 5 * time.Second
)

var (
	// ErrInvalidLimit is returned by TopArticles for a non-positive row limit.
	ErrInvalidLimit = errors.New("invalid limit: must be positive")

	// ErrUnparsableTime is returned by ErrorDays when the database cannot
	// derive a calendar date from log.time.
	ErrUnparsableTime = errors.New("log time cannot be converted to a date")

	// ErrThresholdMismatch is returned by ErrorDays for a row that does not
	// exceed the error threshold.
	ErrThresholdMismatch = errors.New("error day below threshold")
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know by name.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// LogDB is a read-only handle on the access-log database.
// It holds exactly one connection for the lifetime of a run.
type LogDB struct {
	db      *sqlx.DB
	dialect dialect
	logger  *slog.Logger
}

// Options configures Open.
type Options struct {
	// Driver is DriverPostgres or DriverSQLite.
	Driver string

	// DSN is passed to the driver unchanged, e.g. "dbname=news" for lib/pq
	// or a file path for SQLite.
	DSN string

	// ConnectTimeout bounds the ping performed by Open.
	// Zero means DefaultConnectTimeout.
	ConnectTimeout time.Duration

	// Logger receives debug output for each query. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns options for the local PostgreSQL "news" database.
func DefaultOptions() Options {
	return Options{
		Driver:         DriverPostgres,
		DSN:            DefaultDSN,
		ConnectTimeout: DefaultConnectTimeout,
	}
}

// Open connects to the log database and verifies the connection with a ping.
// The caller must Close the returned LogDB.
func Open(ctx context.Context, opts Options) (*LogDB, error) {
	d, err := lookupDialect(opts.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(d.name, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Reports run strictly one after another, so one connection is enough.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return newLogDB(db, d, opts.Logger), nil
}

// NewFromDB wraps an already opened *sql.DB. The driver name selects the
// SQL dialect and placeholder style.
func NewFromDB(db *sql.DB, driver string, logger *slog.Logger) (*LogDB, error) {
	d, err := lookupDialect(driver)
	if err != nil {
		return nil, err
	}
	return newLogDB(sqlx.NewDb(db, d.name), d, logger), nil
}

func newLogDB(db *sqlx.DB, d dialect, logger *slog.Logger) *LogDB {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDB{
		db:      db,
		dialect: d,
		logger:  logger.With("driver", d.name),
	}
}

// Close releases the database connection.
func (l *LogDB) Close() error {
	return l.db.Close()
}

// TopArticles returns up to limit articles ordered by view count, descending.
// Fewer rows are returned when fewer articles have been viewed.
func (l *LogDB) TopArticles(ctx context.Context, limit int) ([]model.ArticleViews, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	query := l.db.Rebind(topArticlesQuery)
	l.logger.Debug("running query", "section", model.SectionTopArticles.String(), "sql", compact(query), "limit", limit)

	rows := []model.ArticleViews{}
	if err := l.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query top articles: %w", err)
	}
	return rows, nil
}

// PopularAuthors returns every author with at least one view, ordered by
// aggregate view count, descending.
func (l *LogDB) PopularAuthors(ctx context.Context) ([]model.AuthorViews, error) {
	query := l.db.Rebind(popularAuthorsQuery)
	l.logger.Debug("running query", "section", model.SectionPopularAuthors.String(), "sql", compact(query))

	rows := []model.AuthorViews{}
	if err := l.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query popular authors: %w", err)
	}
	return rows, nil
}

// errorDayRow is the raw result row of the error days query.
type errorDayRow struct {
	LogDate sql.NullString `db:"log_date"`
	Total   int64          `db:"total"`
	Errors  int64          `db:"errors"`
}

// ErrorDays returns, ordered by date, the days on which more than
// model.ErrorThresholdPercent percent of requests did not succeed.
func (l *LogDB) ErrorDays(ctx context.Context) ([]model.ErrorDay, error) {
	query := l.db.Rebind(errorDaysQuery(l.dialect))
	l.logger.Debug("running query", "section", model.SectionErrorDays.String(), "sql", compact(query))

	var rows []errorDayRow
	if err := l.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query error days: %w", err)
	}

	days := make([]model.ErrorDay, 0, len(rows))
	for _, row := range rows {
		if !row.LogDate.Valid {
			// NULL time, or text SQLite date() does not accept such as a "+00" offset.
			return nil, fmt.Errorf("%w: %d log entries (expected ISO 8601 timestamps such as 2016-07-01 12:00:00)",
				ErrUnparsableTime, row.Total)
		}
		day, err := model.NewErrorDay(row.LogDate.String, row.Total, row.Errors)
		if err != nil {
			return nil, fmt.Errorf("failed to parse error day: %w", err)
		}
		if !day.ExceedsThreshold() {
			return nil, fmt.Errorf("%w: %s has %d errors in %d requests",
				ErrThresholdMismatch, row.LogDate.String, row.Errors, row.Total)
		}
		days = append(days, day)
	}
	return days, nil
}
