package ranking

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Filter is a single ranking step applied to the candidate list.
type Filter interface {
	Name() string
	Apply(ctx context.Context, candidates []*Candidate, logger *zap.Logger) ([]*Candidate, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

func newStep(initial, left int) Step {
	return Step{Initial: initial, Dropped: initial - left, Left: left}
}

type excludedEmployers struct {
	employers map[string]struct{}
}

// NewExcludedEmployers drops vacancies published by the given employer ids.
func NewExcludedEmployers(ids []string) Filter {
	f := &excludedEmployers{employers: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		f.employers[id] = struct{}{}
	}
	return f
}

func (f *excludedEmployers) Name() string { return "excluded_employers" }

func (f *excludedEmployers) Apply(_ context.Context, candidates []*Candidate, logger *zap.Logger) ([]*Candidate, Step, error) {
	kept := make([]*Candidate, 0, len(candidates))
	var excluded []string

	for _, c := range candidates {
		if _, ok := f.employers[c.Vacancy.Employer.ID]; ok {
			excluded = append(excluded, c.Vacancy.ID)
			continue
		}
		kept = append(kept, c)
	}

	if len(excluded) > 0 {
		logger.Info("excluding vacancies by employers",
			zap.Strings("excluded_vacancies", excluded),
			zap.Int("vacancies_left", len(kept)),
		)
	}

	return kept, newStep(len(candidates), len(kept)), nil
}

type scoreFilter struct {
	source      Source
	scorer      Scorer
	resume      string
	concurrency int
}

// NewScore loads every vacancy in full and analyzes the resume against it.
// Vacancies that fail are kept with the error recorded.
func NewScore(source Source, scorer Scorer, resumeText string, concurrency int) Filter {
	return &scoreFilter{source: source, scorer: scorer, resume: resumeText, concurrency: concurrency}
}

func (f *scoreFilter) Name() string { return "score" }

func (f *scoreFilter) Apply(ctx context.Context, candidates []*Candidate, logger *zap.Logger) ([]*Candidate, Step, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(f.concurrency, 1))

	for _, c := range candidates {
		g.Go(func() error {
			return f.score(gctx, c, logger)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Step{}, err
	}

	return candidates, newStep(len(candidates), len(candidates)), nil
}

// score only returns context errors; everything else is recorded on the candidate.
func (f *scoreFilter) score(ctx context.Context, c *Candidate, logger *zap.Logger) error {
	full, err := f.source.GetVacancy(ctx, c.Vacancy.ID)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logger.Debug("fetching detailed vacancy failed", zap.String("vacancy_id", c.Vacancy.ID), zap.Error(err))
	} else {
		c.Vacancy = full
	}

	jd, err := c.Vacancy.Text()
	if err == nil {
		c.Result, err = f.scorer.Analyze(ctx, f.resume, jd)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		logger.Warn("vacancy scoring failed", zap.String("vacancy_id", c.Vacancy.ID), zap.Error(err))
		c.Error = err.Error()
		return nil
	}

	logger.Debug("vacancy scored",
		zap.String("vacancy_id", c.Vacancy.ID),
		zap.Float64("match_score", c.Result.MatchScore),
	)
	return nil
}

type minimumScore struct {
	score float64
}

// NewMinimumScore drops scored vacancies below score. Unscored vacancies are kept.
func NewMinimumScore(score float64) Filter {
	return &minimumScore{score: score}
}

func (f *minimumScore) Name() string { return "minimum_score" }

func (f *minimumScore) Apply(_ context.Context, candidates []*Candidate, logger *zap.Logger) ([]*Candidate, Step, error) {
	kept := make([]*Candidate, 0, len(candidates))

	for _, c := range candidates {
		if c.Result != nil && c.Result.MatchScore < f.score {
			logger.Info("vacancy rejected by score",
				zap.String("vacancy_id", c.Vacancy.ID),
				zap.Float64("match_score", c.Result.MatchScore),
				zap.Float64("minimum_score", f.score),
			)
			continue
		}
		kept = append(kept, c)
	}

	return kept, newStep(len(candidates), len(kept)), nil
}
