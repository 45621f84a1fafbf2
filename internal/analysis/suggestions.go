package analysis

import (
	"fmt"
	"strings"

	"github.com/spigell/resume-scorer/internal/format"
)

const suggestedSkills = 5

// issueSuggestions is keyed by the exact issue text, so every issue format produces
// gets its specific advice rather than the generic fallback.
var issueSuggestions = map[string]string{
	format.IssueMissingEmail:      "Add a professional email address at the top of your resume",
	format.IssueMissingPhone:      "Include a phone number in format: (+94) 784567890",
	format.IssueMissingLinkedIn:   "Add your LinkedIn profile URL to increase professional visibility",
	format.IssueMissingExperience: "Add a Work Experience section with your employment history",
	format.IssueMissingEducation:  "Include an Education section with your academic qualifications",
	format.IssueMissingSkills:     "Add a Skills section highlighting your technical and professional abilities",
	format.IssueMissingSummary:    "Add a 2-3 line professional summary at the top of your resume",
	format.IssueMissingDates:      "Include start and end dates for all positions (MM/YYYY format)",
	format.IssueActionVerbs:       "Start bullet points with strong action verbs (achieved, developed, managed)",
	format.IssueFirstPerson:       "Remove 'I', 'me', 'my' - use action-oriented language instead",
	format.IssueCapitalization:    "Ensure consistent capitalization throughout your resume",
	format.IssuePunctuation:       "Use standard punctuation - avoid multiple exclamation marks",
	format.IssueTooShort:          "Expand on your experience with more detailed descriptions",
	format.IssueTooLong:           "Condense content to focus on most relevant and impactful information",
	format.IssueLongLines:         "Break long paragraphs into shorter, scannable bullet points",
	format.IssueEmptyLines:        "Optimize spacing for a clean, professional appearance",
}

// FormatSuggestions maps each issue to its advice, in issue order.
func FormatSuggestions(issues []string) []string {
	suggestions := make([]string, 0, len(issues))
	for _, issue := range issues {
		suggestion, ok := issueSuggestions[issue]
		if !ok {
			suggestion = "Address format issue: " + issue
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions
}

// ContentSuggestions returns generic advice when the resume lacks job keywords.
func ContentSuggestions(missing []string) []string {
	if len(missing) == 0 {
		return nil
	}

	top := missing[:min(len(missing), suggestedSkills)]
	return []string{
		fmt.Sprintf("Consider adding these relevant skills: %s", strings.Join(top, ", ")),
		"Highlight projects or experience related to the missing skills",
		"Use specific examples that demonstrate your expertise in key areas",
	}
}
