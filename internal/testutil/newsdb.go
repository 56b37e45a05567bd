// Package testutil builds throwaway news databases for tests.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/logsanalysis/internal/model"
)

// Author is a row of the authors table.
type Author struct {
	ID   int
	Name string
}

// Article is a row of the articles table.
type Article struct {
	Author int
	Title  string
	Slug   string
}

// LogEntry is a row of the log table.
type LogEntry struct {
	Path   string
	Status string
	Time   time.Time
}

// Fixture is the full content of a news database.
type Fixture struct {
	Authors  []Author
	Articles []Article
	Log      []LogEntry
}

// Requests returns n log entries for path, all with the given status and time.
func Requests(path, status string, n int, at time.Time) []LogEntry {
	entries := make([]LogEntry, n)
	for i := range entries {
		entries[i] = LogEntry{Path: path, Status: status, Time: at.Add(time.Duration(i) * time.Second)}
	}
	return entries
}

// Views returns n successful requests for the article with the given slug.
func Views(slug string, n int, at time.Time) []LogEntry {
	return Requests(model.ArticlePath(slug), model.SuccessStatus, n, at)
}

// Day returns midnight UTC of the given date plus hours.
func Day(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

// Schema returns the DDL of the news database for a driver.
func Schema(driver string) string {
	timeType := "TEXT"
	if driver == "postgres" {
		timeType = "TIMESTAMP WITH TIME ZONE"
	}
	return fmt.Sprintf(`
	CREATE TABLE authors (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		bio TEXT
	);
	CREATE TABLE articles (
		author INTEGER NOT NULL REFERENCES authors(id),
		title TEXT NOT NULL,
		slug TEXT UNIQUE NOT NULL,
		lead TEXT,
		body TEXT
	);
	CREATE TABLE log (
		path TEXT,
		ip TEXT,
		method TEXT,
		status TEXT,
		time %s
	);`, timeType)
}

// Seed creates the schema on db and inserts the fixture rows.
func Seed(t testing.TB, db *sql.DB, driver string, f Fixture) {
	t.Helper()

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, Schema(driver)); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	bind := sqlx.BindType(driver)
	for _, a := range f.Authors {
		q := sqlx.Rebind(bind, "INSERT INTO authors (id, name) VALUES (?, ?)")
		if _, err := tx.ExecContext(ctx, q, a.ID, a.Name); err != nil {
			t.Fatalf("failed to insert author %q: %v", a.Name, err)
		}
	}
	for _, a := range f.Articles {
		q := sqlx.Rebind(bind, "INSERT INTO articles (author, title, slug) VALUES (?, ?, ?)")
		if _, err := tx.ExecContext(ctx, q, a.Author, a.Title, a.Slug); err != nil {
			t.Fatalf("failed to insert article %q: %v", a.Slug, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, sqlx.Rebind(bind,
		"INSERT INTO log (path, ip, method, status, time) VALUES (?, '127.0.0.1', 'GET', ?, ?)"))
	if err != nil {
		t.Fatalf("failed to prepare log insert: %v", err)
	}
	defer stmt.Close()
	for _, e := range f.Log {
		var at any = e.Time.UTC()
		if driver != "postgres" {
			at = e.Time.UTC().Format("2006-01-02 15:04:05")
		}
		if _, err := stmt.ExecContext(ctx, e.Path, e.Status, at); err != nil {
			t.Fatalf("failed to insert log entry: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("failed to commit fixture: %v", err)
	}
}

// NewSQLite writes the fixture to a new SQLite file under t.TempDir and
// returns its path.
func NewSQLite(t testing.TB, f Fixture) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "news.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()

	Seed(t, db, "sqlite", f)
	return path
}

// NewsFixture is a small database modelled on the newsdata sample: four
// authors (one without articles), four articles, unmatched article paths,
// two days above the error threshold and July 2 sitting exactly on it.
func NewsFixture() Fixture {
	jul1 := Day(2016, time.July, 1, 9)
	jul2 := Day(2016, time.July, 2, 9)
	jul17 := Day(2016, time.July, 17, 9)

	var entries []LogEntry
	entries = append(entries, Views("candidate-is-jerk", 10, jul1)...)
	entries = append(entries, Views("bears-love-berries", 7, jul1)...)
	entries = append(entries, Views("bad-things-gone", 7, jul2)...)
	entries = append(entries, Views("goats-eat-googles", 2, jul2)...)
	entries = append(entries, Requests("/", model.SuccessStatus, 74, jul1)...)
	entries = append(entries, Requests("/article/unknown-slug", "404 NOT FOUND", 2, jul1)...)
	entries = append(entries, Requests("/", model.SuccessStatus, 90, jul2)...)
	entries = append(entries, Requests("/article/no-such", "404 NOT FOUND", 1, jul2)...)
	entries = append(entries, Requests("/", model.SuccessStatus, 95, jul17)...)
	entries = append(entries, Requests("/spam", "404 NOT FOUND", 5, jul17)...)

	return Fixture{
		Authors: []Author{
			{ID: 1, Name: "Ursula La Multa"},
			{ID: 2, Name: "Rudolf von Treppenwitz"},
			{ID: 3, Name: "Anonymous Contributor"},
			{ID: 4, Name: "Markoff Chaney"},
		},
		Articles: []Article{
			{Author: 1, Title: "Candidate is jerk, alleges rival", Slug: "candidate-is-jerk"},
			{Author: 2, Title: "Bears love berries, alleges bear", Slug: "bears-love-berries"},
			{Author: 1, Title: "Bad things gone, say good people", Slug: "bad-things-gone"},
			{Author: 3, Title: "Goats eat Google's lawn", Slug: "goats-eat-googles"},
		},
		Log: entries,
	}
}
