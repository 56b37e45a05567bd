// Package database provides read-only access to the news access-log database.
//
// The database is owned by other systems. This package never creates or
// modifies data; it opens one connection, runs the three aggregate report
// queries and closes the connection.
//
// The expected schema is:
//
//	log      (path TEXT, status TEXT, time TIMESTAMP, ...)
//	articles (title TEXT, slug TEXT UNIQUE, author INTEGER, ...)
//	authors  (id INTEGER PRIMARY KEY, name TEXT, ...)
//
// Log entries are tied to articles by the string predicate
// log.path = '/article/' || articles.slug. It is not a declared foreign key;
// entries whose path does not match any slug are silently left out of the
// article and author reports.
//
// Two drivers are supported: PostgreSQL through github.com/lib/pq, and
// SQLite through modernc.org/sqlite for exported copies of the database.
package database
