// Package model defines the data structures shared by the report pipeline.
//
// This package contains the following main types:
//   - ArticleViews: view count of one article title
//   - AuthorViews: aggregate view count of one author
//   - ErrorDay: request and error totals for one calendar day
//   - Report: the three result sets of a single run
//
// The types carry no database or output concerns, so the database, pipeline
// and report packages can all depend on them without import cycles.
package model
