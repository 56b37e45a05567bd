package model

import "time"

// Report collects the result sets of one run.
// Each step of the pipeline fills exactly one of the slices.
type Report struct {
	// GeneratedAt is when the run started.
	GeneratedAt time.Time `json:"generated_at"`

	// TopArticles is ordered by views, descending. At most the configured limit.
	TopArticles []ArticleViews `json:"top_articles"`

	// PopularAuthors lists every author with at least one view, ordered by views.
	PopularAuthors []AuthorViews `json:"popular_authors"`

	// ErrorDays lists, by date, the days whose error rate exceeds the threshold.
	ErrorDays []ErrorDay `json:"error_days"`

	// Completed lists the sections that have been filled, in execution order.
	Completed []Section `json:"-"`
}

// NewReport creates an empty report stamped with the current time.
func NewReport() *Report {
	return &Report{
		GeneratedAt:    time.Now(),
		TopArticles:    []ArticleViews{},
		PopularAuthors: []AuthorViews{},
		ErrorDays:      []ErrorDay{},
	}
}

// TotalAuthorViews returns the sum of views across all listed authors.
func (r *Report) TotalAuthorViews() int64 {
	var total int64
	for _, a := range r.PopularAuthors {
		total += a.Views
	}
	return total
}

// HasErrorDays reports whether any day exceeded the error threshold.
func (r *Report) HasErrorDays() bool {
	return len(r.ErrorDays) > 0
}

// IsComplete reports whether every section has been filled.
func (r *Report) IsComplete() bool {
	return len(r.Completed) == len(Sections())
}
