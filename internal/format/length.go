package format

import (
	"strings"
	"unicode/utf8"
)

const (
	IssueTooShort   = "Resume appears too short - add more detail about your experience"
	IssueTooLong    = "Resume may be too long - consider condensing to 1-2 pages"
	IssueLongLines  = "Some lines are too long - break into shorter, readable chunks"
	IssueEmptyLines = "Too many empty lines - optimize spacing for better readability"
)

const (
	minWords          = 200
	maxWords          = 1000
	maxLineLength     = 100
	maxLongLineRatio  = 0.3
	maxEmptyLineRatio = 0.4
)

type lengthCheck struct{}

// NewLength checks word count, line length and blank-line density.
func NewLength() Check {
	return &lengthCheck{}
}

func (c *lengthCheck) Name() string { return "length" }

func (c *lengthCheck) Penalty() int { return 12 }

func (c *lengthCheck) Run(doc *Document) []string {
	var issues []string

	switch words := len(strings.Fields(doc.Text)); {
	case words < minWords:
		issues = append(issues, IssueTooShort)
	case words > maxWords:
		issues = append(issues, IssueTooLong)
	}

	total := float64(len(doc.Lines))
	long, empty := 0, 0
	for _, line := range doc.Lines {
		if utf8.RuneCountInString(line) > maxLineLength {
			long++
		}
		if strings.TrimSpace(line) == "" {
			empty++
		}
	}

	if float64(long) > total*maxLongLineRatio {
		issues = append(issues, IssueLongLines)
	}
	if float64(empty) > total*maxEmptyLineRatio {
		issues = append(issues, IssueEmptyLines)
	}

	return issues
}
