package format

import (
	"regexp"
	"strings"
)

const (
	IssueMissingDates = "Missing employment dates - add start and end dates for positions"
	IssueActionVerbs  = "Use more action verbs to describe accomplishments"
)

const minActionVerbs = 3

var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(19|20)\d{2}\b`),
		regexp.MustCompile(`\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+(19|20)\d{2}\b`),
		regexp.MustCompile(`\b\d{1,2}/\d{4}\b`),
	}

	// Matched as substrings, so "led" also counts inside "skilled".
	actionVerbs = []string{
		"achieved", "developed", "implemented", "managed", "created", "improved",
		"increased", "reduced", "led", "coordinated", "designed", "built",
		"established", "streamlined", "optimized", "delivered",
	}
)

type contentCheck struct{}

// NewContent checks for employment dates and accomplishment-oriented wording.
func NewContent() Check {
	return &contentCheck{}
}

func (c *contentCheck) Name() string { return "content" }

func (c *contentCheck) Penalty() int { return 8 }

func (c *contentCheck) Run(doc *Document) []string {
	var issues []string

	if !matchAny(datePatterns, doc.Lower) {
		issues = append(issues, IssueMissingDates)
	}

	verbs := 0
	for _, verb := range actionVerbs {
		if strings.Contains(doc.Lower, verb) {
			verbs++
		}
	}
	if verbs < minActionVerbs {
		issues = append(issues, IssueActionVerbs)
	}

	return issues
}
