// Package analysis runs the resume scoring pipeline: keyword extraction, semantic
// matching, format evaluation and aggregation into a single report.
package analysis

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-scorer/internal/embedding"
	"github.com/spigell/resume-scorer/internal/format"
	"github.com/spigell/resume-scorer/internal/keywords"
	"github.com/spigell/resume-scorer/internal/resumedata"
	"github.com/spigell/resume-scorer/internal/similarity"
)

type Config struct {
	Embedding   embedding.Config `mapstructure:"embedding"`
	LexiconFile string           `mapstructure:"lexicon-file"`
}

// Runtime holds the process-wide, read-only collaborators of the pipeline. Build it
// once at startup and share it between requests.
type Runtime struct {
	Extractor *keywords.Extractor
	Provider  embedding.Provider
}

// NewRuntime loads the lexicon and the embedding provider. A broken lexicon override
// is an error; an unavailable provider is not.
func NewRuntime(ctx context.Context, cfg Config, logger *zap.Logger) (*Runtime, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	lexicon, err := keywords.LoadLexicon(cfg.LexiconFile)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	return &Runtime{
		Extractor: keywords.NewExtractor(keywords.NewProseTagger(), lexicon, logger.Named("keywords")),
		Provider:  embedding.Open(ctx, cfg.Embedding, logger.Named("embedding")),
	}, nil
}

type Analyzer struct {
	extractor *keywords.Extractor
	scorer    *similarity.Scorer
	evaluator *format.Evaluator
	logger    *zap.Logger
}

func New(rt *Runtime, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyzer{
		extractor: rt.Extractor,
		scorer:    similarity.NewScorer(rt.Provider, logger.Named("similarity")),
		evaluator: format.NewEvaluator(logger.Named("format")),
		logger:    logger,
	}
}

// WithLogger returns a copy of a that writes its summary line to logger.
func (a *Analyzer) WithLogger(logger *zap.Logger) *Analyzer {
	if logger == nil {
		return a
	}
	c := *a
	c.logger = logger
	return &c
}

// Analyze scores resumeText against jdText. Component failures degrade the result
// instead of failing; the only error is a cancelled context.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jdText string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var resumeKeywords, jdKeywords keywords.Set

	var g errgroup.Group
	g.Go(func() error {
		resumeKeywords = a.extractor.Extract(resumeText)
		return nil
	})
	g.Go(func() error {
		jdKeywords = a.extractor.Extract(jdText)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	match := a.scorer.Match(ctx, resumeKeywords, jdKeywords)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	formatResult := a.evaluator.Evaluate(resumeText)
	missing := MissingKeywords(jdKeywords, resumeKeywords)

	result := Aggregate(match, formatResult, missing)
	result.ResumeData = resumedata.Extract(resumeText)
	result.DebugInfo.ResumeTextLength = utf8.RuneCountInString(resumeText)
	result.DebugInfo.JDTextLength = utf8.RuneCountInString(jdText)

	a.logger.Info("analysis completed",
		zap.Float64("match_score", result.MatchScore),
		zap.Float64("content_score", result.AnalysisDetails.ContentMatchScore),
		zap.Int("format_score", result.AnalysisDetails.FormatScore),
		zap.Int("resume_keywords", result.AnalysisDetails.ResumeKeywordsCount),
		zap.Int("jd_keywords", result.AnalysisDetails.JDKeywordsCount),
		zap.Int("matched_keywords", result.AnalysisDetails.MatchedKeywordsCount),
		zap.Int("format_issues", result.AnalysisDetails.TotalFormatIssues),
		zap.String("message", result.Message),
	)

	return &result, nil
}
