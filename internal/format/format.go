// Package format scores the presentation of a resume with independent rule checks.
package format

import (
	"strings"

	"go.uber.org/zap"
)

const maxScore = 100

// Check is a single category of format rules. Run must be a pure function of the
// document and report issues in a fixed order.
type Check interface {
	Name() string
	Penalty() int
	Run(doc *Document) []string
}

// Document is the resume text with the derived views the checks share.
type Document struct {
	Text  string
	Lower string
	Lines []string
}

func NewDocument(text string) *Document {
	return &Document{
		Text:  text,
		Lower: strings.ToLower(text),
		Lines: strings.Split(text, "\n"),
	}
}

// Step describes the outcome of one check.
type Step struct {
	Name     string `json:"name"`
	Penalty  int    `json:"penalty"`
	Issues   int    `json:"issues"`
	Deducted int    `json:"deducted"`
}

// Result is the format score in [0, 100] with the issues that lowered it.
type Result struct {
	Score      int      `json:"format_score"`
	Issues     []string `json:"format_issues"`
	IssueCount int      `json:"total_issues"`
	Steps      []Step   `json:"-"`
}

// DefaultChecks returns the resume checks in evaluation order.
func DefaultChecks() []Check {
	return []Check{
		NewContact(),
		NewStructure(),
		NewContent(),
		NewHygiene(),
		NewLength(),
	}
}

type Evaluator struct {
	checks []Check
	logger *zap.Logger
}

// NewEvaluator creates an evaluator running checks in the given order. No checks
// means DefaultChecks.
func NewEvaluator(logger *zap.Logger, checks ...Check) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(checks) == 0 {
		checks = DefaultChecks()
	}

	return &Evaluator{
		checks: checks,
		logger: logger,
	}
}

// Evaluate runs every check, subtracting its penalty once per issue from 100.
// The score never drops below zero.
func (e *Evaluator) Evaluate(text string) Result {
	doc := NewDocument(text)
	result := Result{
		Score:  maxScore,
		Issues: []string{},
		Steps:  make([]Step, 0, len(e.checks)),
	}

	for _, check := range e.checks {
		issues := check.Run(doc)
		step := Step{
			Name:     check.Name(),
			Penalty:  check.Penalty(),
			Issues:   len(issues),
			Deducted: len(issues) * check.Penalty(),
		}

		e.logger.Debug("format check",
			zap.String("name", step.Name),
			zap.Int("issues", step.Issues),
			zap.Int("deducted", step.Deducted),
		)

		result.Issues = append(result.Issues, issues...)
		result.Score -= step.Deducted
		result.Steps = append(result.Steps, step)
	}

	result.Score = max(result.Score, 0)
	result.IssueCount = len(result.Issues)

	return result
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
