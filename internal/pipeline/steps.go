package pipeline

import (
	"context"

	"github.com/nao1215/logsanalysis/internal/model"
)

// Source runs the aggregate queries behind the report sections.
// *database.LogDB implements it.
type Source interface {
	TopArticles(ctx context.Context, limit int) ([]model.ArticleViews, error)
	PopularAuthors(ctx context.Context) ([]model.AuthorViews, error)
	ErrorDays(ctx context.Context) ([]model.ErrorDay, error)
}

// TopArticlesStep fills Report.TopArticles.
type TopArticlesStep struct {
	source Source
	limit  int
}

// NewTopArticlesStep creates a step returning at most limit articles.
// A non-positive limit falls back to model.DefaultTopArticles.
func NewTopArticlesStep(source Source, limit int) *TopArticlesStep {
	if limit <= 0 {
		limit = model.DefaultTopArticles
	}
	return &TopArticlesStep{source: source, limit: limit}
}

// Name returns the step name.
func (s *TopArticlesStep) Name() string { return s.Section().String() }

// Section returns model.SectionTopArticles.
func (s *TopArticlesStep) Section() model.Section { return model.SectionTopArticles }

// Do executes the top articles query.
func (s *TopArticlesStep) Do(ctx context.Context, report *model.Report) error {
	rows, err := s.source.TopArticles(ctx, s.limit)
	if err != nil {
		return err
	}
	report.TopArticles = rows
	return nil
}

// PopularAuthorsStep fills Report.PopularAuthors.
type PopularAuthorsStep struct {
	source Source
}

// NewPopularAuthorsStep creates the popular authors step.
func NewPopularAuthorsStep(source Source) *PopularAuthorsStep {
	return &PopularAuthorsStep{source: source}
}

// Name returns the step name.
func (s *PopularAuthorsStep) Name() string { return s.Section().String() }

// Section returns model.SectionPopularAuthors.
func (s *PopularAuthorsStep) Section() model.Section { return model.SectionPopularAuthors }

// Do executes the popular authors query.
func (s *PopularAuthorsStep) Do(ctx context.Context, report *model.Report) error {
	rows, err := s.source.PopularAuthors(ctx)
	if err != nil {
		return err
	}
	report.PopularAuthors = rows
	return nil
}

// ErrorDaysStep fills Report.ErrorDays.
type ErrorDaysStep struct {
	source Source
}

// NewErrorDaysStep creates the error days step.
func NewErrorDaysStep(source Source) *ErrorDaysStep {
	return &ErrorDaysStep{source: source}
}

// Name returns the step name.
func (s *ErrorDaysStep) Name() string { return s.Section().String() }

// Section returns model.SectionErrorDays.
func (s *ErrorDaysStep) Section() model.Section { return model.SectionErrorDays }

// Do executes the error days query.
func (s *ErrorDaysStep) Do(ctx context.Context, report *model.Report) error {
	days, err := s.source.ErrorDays(ctx)
	if err != nil {
		return err
	}
	report.ErrorDays = days
	return nil
}

// DefaultPipeline creates the standard three-section report pipeline:
// top articles, popular authors, error days, in that order.
func DefaultPipeline(source Source, articleLimit int, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		NewTopArticlesStep(source, articleLimit),
		NewPopularAuthorsStep(source),
		NewErrorDaysStep(source),
	)
	return p
}
