// Package similarity scores a resume keyword set against a job description keyword
// set using embedding cosine similarity.
package similarity

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-scorer/internal/embedding"
	"github.com/spigell/resume-scorer/internal/keywords"
	logfields "github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/utils"
)

// MatchThreshold is the minimum cosine similarity for a keyword pair to count as a match.
const MatchThreshold = 0.6

const maxScore = 100.0

const (
	MessageUnavailable = "AI models not loaded. Cannot perform full analysis."
	MessageEmptyJD     = "Could not extract keywords from Job Description. Please provide a more detailed JD."
	MessageEmptyResume = "Could not extract keywords from Resume. Please ensure resume is parsable."
	MessageEmbedFailed = "Semantic matching failed. Keyword similarity could not be computed."
	MessageMatched     = "Semantic matching performed."
)

// MatchDetail pairs a resume keyword with the job description keyword it matched best.
type MatchDetail struct {
	ResumeKeyword string  `json:"resume_keyword"`
	JDKeyword     string  `json:"jd_match"`
	Similarity    float64 `json:"similarity_score"`
}

// Result is the outcome of a Match call. Score is in [0, 100].
type Result struct {
	Score          float64
	Matches        []MatchDetail
	ResumeKeywords []string
	JDKeywords     []string
	Message        string
}

// Scorer matches keyword sets through an embedding provider. It holds no per-request
// state and may be shared.
type Scorer struct {
	provider embedding.Provider
	logger   *zap.Logger
}

func NewScorer(provider embedding.Provider, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if provider != nil {
		logger = logfields.WithCommonFields(logger, provider.Name(), provider.Model())
	}

	return &Scorer{
		provider: provider,
		logger:   logger,
	}
}

// Match embeds both keyword sets and assigns every resume keyword to its most
// similar job description keyword. Unavailable providers, empty sets and embedding
// failures yield a zero score with a message instead of an error.
func (s *Scorer) Match(ctx context.Context, resume, jd keywords.Set) Result {
	result := Result{
		ResumeKeywords: resume.Sorted(),
		JDKeywords:     jd.Sorted(),
	}

	if !embedding.Available(s.provider) {
		result.Message = MessageUnavailable
		return result
	}
	if len(result.JDKeywords) == 0 {
		result.Message = MessageEmptyJD
		return result
	}
	if len(result.ResumeKeywords) == 0 {
		result.Message = MessageEmptyResume
		return result
	}

	matrix, err := s.matrix(ctx, result.ResumeKeywords, result.JDKeywords)
	if err != nil {
		s.logger.Warn("keyword embedding failed", zap.Error(err))
		result.Message = MessageEmbedFailed
		return result
	}

	var total float64
	for i, resumeKeyword := range result.ResumeKeywords {
		j, best := matrix.BestMatch(i)
		if j < 0 || best < MatchThreshold {
			continue
		}

		rounded := utils.Round2(best)
		result.Matches = append(result.Matches, MatchDetail{
			ResumeKeyword: resumeKeyword,
			JDKeyword:     result.JDKeywords[j],
			Similarity:    rounded,
		})
		total += rounded
	}

	score := total / float64(len(result.JDKeywords)) * 100
	result.Score = utils.Round2(math.Min(score, maxScore))
	result.Message = MessageMatched

	s.logger.Debug("keyword similarity computed",
		zap.Int("resume_keywords", len(result.ResumeKeywords)),
		zap.Int("jd_keywords", len(result.JDKeywords)),
		zap.Int("matches", len(result.Matches)),
		zap.Float64("score", result.Score),
	)

	return result
}

func (s *Scorer) matrix(ctx context.Context, resume, jd []string) (Matrix, error) {
	var resumeVectors, jdVectors [][]float32

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vectors, err := s.embed(gctx, resume)
		resumeVectors = vectors
		return err
	})
	g.Go(func() error {
		vectors, err := s.embed(gctx, jd)
		jdVectors = vectors
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewMatrix(resumeVectors, jdVectors), nil
}

func (s *Scorer) embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := s.provider.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed %d keywords: %w", len(texts), err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("provider returned %d vectors for %d keywords", len(vectors), len(texts))
	}
	return vectors, nil
}
