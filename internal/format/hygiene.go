package format

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	IssueFirstPerson    = "Avoid first-person pronouns (I, me, my) - use active voice instead"
	IssueCapitalization = "Inconsistent capitalization - ensure proper sentence case"
	IssuePunctuation    = "Remove excessive punctuation marks"
)

const (
	maxFirstPersonRatio   = 0.1
	maxLowercaseLineRatio = 0.2
	minCapitalizedLineLen = 4
)

var (
	firstPersonPattern = regexp.MustCompile(`\bi\b`)
	sentencePattern    = regexp.MustCompile(`[.!?]+`)
	punctuationPattern = regexp.MustCompile(`[!]{2,}|[?]{2,}|[.]{3,}`)
)

type hygieneCheck struct{}

// NewHygiene checks for first-person voice, lowercase line starts and repeated
// punctuation.
func NewHygiene() Check {
	return &hygieneCheck{}
}

func (c *hygieneCheck) Name() string { return "formatting" }

func (c *hygieneCheck) Penalty() int { return 5 }

func (c *hygieneCheck) Run(doc *Document) []string {
	var issues []string

	pronouns := len(firstPersonPattern.FindAllStringIndex(doc.Lower, -1))
	sentences := len(sentencePattern.FindAllStringIndex(doc.Text, -1))
	if sentences > 0 && float64(pronouns)/float64(sentences) > maxFirstPersonRatio {
		issues = append(issues, IssueFirstPerson)
	}

	nonEmpty, lowercase := 0, 0
	for _, line := range doc.Lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		nonEmpty++

		first, _ := utf8.DecodeRuneInString(line)
		if utf8.RuneCountInString(line) >= minCapitalizedLineLen && unicode.IsLower(first) {
			lowercase++
		}
	}
	if float64(lowercase) > float64(nonEmpty)*maxLowercaseLineRatio {
		issues = append(issues, IssueCapitalization)
	}

	if punctuationPattern.MatchString(doc.Text) {
		issues = append(issues, IssuePunctuation)
	}

	return issues
}
