package model

// Section identifies one of the three reports produced by a run.
// Sections are always produced and printed in iota order.
type Section int

const (
	// SectionTopArticles is the most viewed articles report.
	SectionTopArticles Section = iota

	// SectionPopularAuthors is the authors ranked by aggregate views report.
	SectionPopularAuthors

	// SectionErrorDays is the days with more than 1% failed requests report.
	SectionErrorDays
)

// Sections returns every section in display order.
func Sections() []Section {
	return []Section{SectionTopArticles, SectionPopularAuthors, SectionErrorDays}
}

// String returns the machine-friendly name of the section.
// It is used as the pipeline step name and in log output.
func (s Section) String() string {
	switch s {
	case SectionTopArticles:
		return "top-articles"
	case SectionPopularAuthors:
		return "popular-authors"
	case SectionErrorDays:
		return "error-days"
	default:
		return "unknown"
	}
}

// Title returns the human-readable header printed above the section.
func (s Section) Title() string {
	switch s {
	case SectionTopArticles:
		return "Most popular articles:"
	case SectionPopularAuthors:
		return "Most popular authors:"
	case SectionErrorDays:
		return "Days with more than 1% errors:"
	default:
		return ""
	}
}

// IsLast reports whether s is the final section of a report.
// The simple text output omits the separator after the last section.
func (s Section) IsLast() bool {
	return s == SectionErrorDays
}
