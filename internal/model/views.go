package model

// ArticlePathPrefix is prepended to an article slug to build the request
// path recorded in the access log. A log entry is a view of an article when
// its path equals ArticlePathPrefix + slug.
const ArticlePathPrefix = "/article/"

// DefaultTopArticles is the number of rows in the most popular articles report.
const DefaultTopArticles = 3

// ArticleViews is one row of the most popular articles report.
type ArticleViews struct {
	// Title is the article title. Rows are grouped by title.
	Title string `db:"title" json:"title"`

	// Views is the number of log entries whose path matches the article.
	Views int64 `db:"views" json:"views"`
}

// AuthorViews is one row of the most popular authors report.
type AuthorViews struct {
	// Name is the author display name. Rows are grouped by name.
	Name string `db:"name" json:"name"`

	// Views is the number of log entries matching any of the author's articles.
	Views int64 `db:"views" json:"views"`
}

// ArticlePath returns the request path under which the article with the
// given slug is served.
func ArticlePath(slug string) string {
	return ArticlePathPrefix + slug
}
