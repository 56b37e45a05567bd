// Package main provides the entry point for the logsanalysis CLI.
//
// logsanalysis reports on the access log of the news site: the most popular
// articles, the most popular authors and the days on which more than 1% of
// requests failed.
//
// Usage:
//
//	logsanalysis
//	logsanalysis --dsn "host=db.internal dbname=news" --markdown -o report.md
//
// See --help for all available options.
package main

// main is the entry point for logsanalysis.
func main() {
	Execute()
}
