// Package ranking scores a resume against searched vacancies and keeps the best fits.
package ranking

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/analysis"
	"github.com/spigell/resume-scorer/internal/jobsource"
)

const defaultConcurrency = 4

type Config struct {
	Search           jobsource.SearchParams `mapstructure:"search"`
	Limit            int                    `mapstructure:"limit" validate:"gte=0"`
	MinimumScore     float64                `mapstructure:"minimum-score" validate:"gte=0,lte=100"`
	ExcludeEmployers []string               `mapstructure:"exclude-employers"`
	ExcludeFile      string                 `mapstructure:"exclude-file"`
	Concurrency      int                    `mapstructure:"concurrency" validate:"gte=0"`
}

// Source lists vacancies and loads their full descriptions.
type Source interface {
	Search(ctx context.Context, params jobsource.SearchParams, limit int) ([]*jobsource.Vacancy, error)
	GetVacancy(ctx context.Context, ref string) (*jobsource.Vacancy, error)
}

type Scorer interface {
	Analyze(ctx context.Context, resumeText, jdText string) (*analysis.Result, error)
}

// Candidate is a vacancy with its analysis. Error is set when the vacancy could not be scored.
type Candidate struct {
	Vacancy *jobsource.Vacancy `json:"vacancy"`
	Result  *analysis.Result   `json:"result,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func (c *Candidate) Score() float64 {
	if c.Result == nil {
		return -1
	}
	return c.Result.MatchScore
}

type Ranker struct {
	source Source
	scorer Scorer
	logger *zap.Logger
}

func New(source Source, scorer Scorer, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{source: source, scorer: scorer, logger: logger}
}

// Steps builds the filter pipeline for cfg.
func (r *Ranker) Steps(cfg Config, resumeText string) []Filter {
	concurrency := cfg.Concurrency
	if concurrency == 0 {
		concurrency = defaultConcurrency
	}

	return []Filter{
		NewExcludeFile(cfg.ExcludeFile),
		NewExcludedEmployers(cfg.ExcludeEmployers),
		NewScore(r.source, r.scorer, resumeText, concurrency),
		NewMinimumScore(cfg.MinimumScore),
	}
}

// Rank searches vacancies, runs the filter steps and returns the candidates ordered
// by match score, best first. Candidates that failed scoring come last.
func (r *Ranker) Rank(ctx context.Context, cfg Config, resumeText string) ([]*Candidate, error) {
	vacancies, err := r.source.Search(ctx, cfg.Search, cfg.Limit)
	if err != nil {
		return nil, err
	}

	r.logger.Info("getting vacancies", zap.Int("count", len(vacancies)))

	candidates := make([]*Candidate, 0, len(vacancies))
	for _, v := range vacancies {
		candidates = append(candidates, &Candidate{Vacancy: v})
	}

	candidates, err = Run(ctx, r.Steps(cfg, resumeText), candidates, r.logger)
	if err != nil {
		return nil, err
	}

	Sort(candidates)
	return candidates, nil
}

// Run executes the filters sequentially and logs the outcome of every step.
func Run(ctx context.Context, steps []Filter, candidates []*Candidate, logger *zap.Logger) ([]*Candidate, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, info, err := step.Apply(ctx, candidates, logger)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		candidates = next
	}

	return candidates, nil
}

// Sort orders candidates by match score, best first, keeping the search order for ties.
func Sort(candidates []*Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score() > candidates[j].Score()
	})
}
