package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/logsanalysis/internal/config"
	"github.com/nao1215/logsanalysis/internal/testutil"
)

const newsFixtureText = `Most popular articles:
    Candidate is jerk, alleges rival - 10 views
    Bad things gone, say good people - 7 views
    Bears love berries, alleges bear - 7 views
----------------------------------------------------------------------
Most popular authors:
    Ursula La Multa - 17 views
    Rudolf von Treppenwitz - 7 views
    Anonymous Contributor - 2 views
----------------------------------------------------------------------
Days with more than 1% errors:
    July 1, 2016 - 2.15% errors
    July 17, 2016 - 5.00% errors
`

// emptyConfigFile writes a config file without settings so the tests do not
// pick up a .logsanalysis from the machine running them.
func emptyConfigFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("report: {}\n"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

// runRoot executes the root command and returns its stdout and stderr.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRunReport(t *testing.T) {
	t.Parallel()

	t.Run("prints the three text reports", func(t *testing.T) {
		t.Parallel()

		dbPath := testutil.NewSQLite(t, testutil.NewsFixture())
		stdout, _, err := runRoot(t, "--config", emptyConfigFile(t), "--driver", "sqlite", "--dsn", dbPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != newsFixtureText {
			t.Errorf("unexpected output:\n%s\nexpected:\n%s", stdout, newsFixtureText)
		}
	})

	t.Run("repeated runs are identical", func(t *testing.T) {
		t.Parallel()

		dbPath := testutil.NewSQLite(t, testutil.NewsFixture())
		configPath := emptyConfigFile(t)

		first, _, err := runRoot(t, "--config", configPath, "--driver", "sqlite", "--dsn", dbPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, _, err := runRoot(t, "--config", configPath, "--driver", "sqlite", "--dsn", dbPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first != second {
			t.Errorf("expected identical output, got:\n%s\nand:\n%s", first, second)
		}
	})

	t.Run("articles flag changes the limit", func(t *testing.T) {
		t.Parallel()

		dbPath := testutil.NewSQLite(t, testutil.NewsFixture())
		stdout, _, err := runRoot(t, "--config", emptyConfigFile(t), "--driver", "sqlite", "--dsn", dbPath, "-n", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(stdout, "Bad things gone") {
			t.Errorf("expected only one article, got:\n%s", stdout)
		}
		if !strings.Contains(stdout, "    Candidate is jerk, alleges rival - 10 views\n") {
			t.Errorf("expected top article, got:\n%s", stdout)
		}
	})

	t.Run("config file settings are used", func(t *testing.T) {
		t.Parallel()

		dbPath := testutil.NewSQLite(t, testutil.NewsFixture())
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		content := "database:\n  driver: sqlite\n  dsn: " + dbPath + "\nreport:\n  format: JSON\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		stdout, _, err := runRoot(t, "--config", configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var doc struct {
			TopArticles []struct {
				Title string `json:"title"`
				Views int64  `json:"views"`
			} `json:"top_articles"`
			ErrorDays []struct {
				Date         string  `json:"date"`
				ErrorPercent float64 `json:"error_percent"`
			} `json:"error_days"`
		}
		if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
		}
		if len(doc.TopArticles) != 3 || doc.TopArticles[0].Views != 10 {
			t.Errorf("unexpected articles: %+v", doc.TopArticles)
		}
		if len(doc.ErrorDays) != 2 || doc.ErrorDays[1].Date != "2016-07-17" || doc.ErrorDays[1].ErrorPercent != 5 {
			t.Errorf("unexpected error days: %+v", doc.ErrorDays)
		}
	})

	t.Run("markdown output to file", func(t *testing.T) {
		t.Parallel()

		dbPath := testutil.NewSQLite(t, testutil.NewsFixture())
		outPath := filepath.Join(t.TempDir(), "reports", "news.md")

		stdout, _, err := runRoot(t, "--config", emptyConfigFile(t), "--driver", "sqlite", "--dsn", dbPath,
			"--markdown", "-o", outPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "" {
			t.Errorf("expected nothing on stdout, got %q", stdout)
		}

		content, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "## Most Popular Authors") {
			t.Errorf("unexpected markdown:\n%s", content)
		}
		if !strings.Contains(string(content), "July 17, 2016") {
			t.Errorf("expected error day in markdown:\n%s", content)
		}

		if runtime.GOOS != "windows" {
			info, err := os.Stat(outPath)
			if err != nil {
				t.Fatalf("failed to stat report: %v", err)
			}
			if perm := info.Mode().Perm(); perm != 0600 {
				t.Errorf("expected permissions 0600, got %o", perm)
			}
		}
	})

	t.Run("keeps sections printed before a failure", func(t *testing.T) {
		t.Parallel()

		dbPath := testutil.NewSQLite(t, testutil.NewsFixture())
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			t.Fatalf("failed to open sqlite: %v", err)
		}
		if _, err := db.Exec("DROP TABLE authors"); err != nil {
			t.Fatalf("failed to drop table: %v", err)
		}
		_ = db.Close()

		stdout, _, err := runRoot(t, "--config", emptyConfigFile(t), "--driver", "sqlite", "--dsn", dbPath)
		if err == nil {
			t.Fatal("expected error for missing table")
		}
		if !strings.Contains(err.Error(), "popular-authors") {
			t.Errorf("expected error to name the failing report, got %v", err)
		}
		if !strings.HasPrefix(stdout, "Most popular articles:\n") {
			t.Errorf("expected first section on stdout, got %q", stdout)
		}
		if strings.Contains(stdout, "Most popular authors:") {
			t.Errorf("unexpected second section on stdout: %q", stdout)
		}
	})

	t.Run("json output is not written on failure", func(t *testing.T) {
		t.Parallel()

		dbPath := testutil.NewSQLite(t, testutil.NewsFixture())
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			t.Fatalf("failed to open sqlite: %v", err)
		}
		if _, err := db.Exec("DROP TABLE log"); err != nil {
			t.Fatalf("failed to drop table: %v", err)
		}
		_ = db.Close()

		stdout, _, err := runRoot(t, "--config", emptyConfigFile(t), "--driver", "sqlite", "--dsn", dbPath, "--json")
		if err == nil {
			t.Fatal("expected error for missing table")
		}
		if stdout != "" {
			t.Errorf("expected no output, got %q", stdout)
		}
	})

	t.Run("connection failure is reported", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "no-such-dir", "news.db")
		stdout, _, err := runRoot(t, "--config", emptyConfigFile(t), "--driver", "sqlite", "--dsn", missing,
			"--connect-timeout", "1s")
		if err == nil {
			t.Fatal("expected connection error")
		}
		if !strings.Contains(err.Error(), "failed to connect to database") {
			t.Errorf("unexpected error: %v", err)
		}
		if stdout != "" {
			t.Errorf("expected no output, got %q", stdout)
		}
	})

	t.Run("rejects invalid configuration", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			args    []string
			wantErr error
		}{
			{"unknown driver", []string{"--driver", "mysql"}, config.ErrUnknownDriver},
			{"empty dsn", []string{"--dsn", ""}, config.ErrEmptyDSN},
			{"zero articles", []string{"--articles", "0"}, config.ErrInvalidArticleLimit},
			{"negative query timeout", []string{"--query-timeout", "-1s"}, config.ErrInvalidQueryTimeout},
			{"json and markdown", []string{"--json", "--markdown"}, config.ErrConflictingReportFormats},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				args := append([]string{"--config", emptyConfigFile(t)}, tt.args...)
				_, _, err := runRoot(t, args...)
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			})
		}
	})

	t.Run("unknown config file format is rejected before connecting", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("report:\n  format: XML\n"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		missing := filepath.Join(dir, "missing", "news.db")
		_, _, err := runRoot(t, "--config", configPath, "--driver", "sqlite", "--dsn", missing)
		if !errors.Is(err, config.ErrInvalidFormat) {
			t.Errorf("expected ErrInvalidFormat, got %v", err)
		}
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		t.Parallel()

		_, _, err := runRoot(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		t.Parallel()

		if _, _, err := runRoot(t, "extra"); err == nil {
			t.Error("expected error for positional argument")
		}
	})

	t.Run("verbose logs go to stderr without the password", func(t *testing.T) {
		t.Parallel()

		dbPath := testutil.NewSQLite(t, testutil.NewsFixture())
		stdout, stderr, err := runRoot(t, "--config", emptyConfigFile(t), "--driver", "sqlite", "--dsn", dbPath, "-v")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != newsFixtureText {
			t.Errorf("logs leaked into stdout:\n%s", stdout)
		}
		if !strings.Contains(stderr, "connecting to database") {
			t.Errorf("expected debug log on stderr, got %q", stderr)
		}
		if !strings.Contains(stderr, "complete=true") {
			t.Errorf("expected completed report in debug log, got %q", stderr)
		}
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("flags override config file", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "config.yaml")
		content := "database:\n  dsn: \"dbname=staging\"\n  queryTimeout: 30s\nreport:\n  articles: 7\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cmd := NewRootCmd()
		if err := cmd.ParseFlags([]string{"--config", configPath, "--articles", "5"}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ArticleLimit != 5 {
			t.Errorf("expected flag value 5, got %d", cfg.ArticleLimit)
		}
		if cfg.DSN != "dbname=staging" {
			t.Errorf("expected file DSN, got %q", cfg.DSN)
		}
		if cfg.QueryTimeout != 30*time.Second {
			t.Errorf("expected file query timeout, got %v", cfg.QueryTimeout)
		}
		if cfg.Driver != config.DefaultDriver {
			t.Errorf("expected default driver, got %q", cfg.Driver)
		}
	})

	t.Run("unset flags keep defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		if err := cmd.ParseFlags([]string{"--config", emptyConfigFile(t)}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DSN != config.DefaultDSN || cfg.ArticleLimit != config.DefaultArticleLimit {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})
}
