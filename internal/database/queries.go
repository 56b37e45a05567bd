package database

import (
	"fmt"
	"strings"

	"github.com/nao1215/logsanalysis/internal/model"
)

// articleJoin matches a log entry to the article it requested.
const articleJoin = "log.path = '" + model.ArticlePathPrefix + "' || articles.slug"

// topArticlesQuery counts views per article title.
// Title breaks ties so repeated runs print the same rows in the same order.
const topArticlesQuery = `
SELECT articles.title AS title, COUNT(*) AS views
FROM log
JOIN articles ON ` + articleJoin + `
GROUP BY articles.title
ORDER BY views DESC, articles.title ASC
LIMIT ?`

// popularAuthorsQuery counts views per author name. Inner joins leave out
// authors without any matching log entry.
const popularAuthorsQuery = `
SELECT authors.name AS name, COUNT(*) AS views
FROM authors
JOIN articles ON authors.id = articles.author
JOIN log ON ` + articleJoin + `
GROUP BY authors.name
ORDER BY views DESC, authors.name ASC`

// errorDaysTemplate aggregates requests and failed requests per calendar day.
// The threshold test errors * 100 > total * pct is errors/total > pct/100
// evaluated on integers, so a day sitting exactly on the boundary is excluded.
// Entries whose time has no date are always returned so they can be reported.
const errorDaysTemplate = `
SELECT daily.log_date, daily.total, daily.errors
FROM (
	SELECT %[1]s AS log_date,
	       COUNT(*) AS total,
	       SUM(CASE WHEN log.status <> '` + model.SuccessStatus + `' THEN 1 ELSE 0 END) AS errors
	FROM log
	GROUP BY %[1]s
) AS daily
WHERE daily.log_date IS NULL OR daily.errors * 100 > daily.total * %[2]d
ORDER BY daily.log_date ASC`

// errorDaysQuery renders the error days query for a dialect.
func errorDaysQuery(d dialect) string {
	return fmt.Sprintf(errorDaysTemplate, d.dayExpr, model.ErrorThresholdPercent)
}

// compact collapses whitespace in a query for debug logging.
func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
