package analysis

import (
	"fmt"
	"strings"

	"github.com/spigell/resume-scorer/internal/format"
	"github.com/spigell/resume-scorer/internal/keywords"
	"github.com/spigell/resume-scorer/internal/resumedata"
	"github.com/spigell/resume-scorer/internal/similarity"
	"github.com/spigell/resume-scorer/internal/utils"
)

const (
	contentWeight = 0.7
	formatWeight  = 0.3

	maxMissingKeywords = 10
	maxDebugKeywords   = 10

	importanceRequired = "required"
)

type Keyword struct {
	Word       string  `json:"word"`
	Count      int     `json:"count"`
	Matches    bool    `json:"matches"`
	Importance string  `json:"importance"`
	Similarity float64 `json:"similarity"`
}

type Structured struct {
	Keywords        []Keyword `json:"keywords"`
	MissingKeywords []string  `json:"missingKeywords"`
	FormatIssues    []string  `json:"formatIssues"`
	Suggestions     []string  `json:"suggestions"`
}

type Details struct {
	ContentMatchScore    float64 `json:"content_match_score"`
	FormatScore          int     `json:"format_score"`
	TotalFormatIssues    int     `json:"total_format_issues"`
	ResumeKeywordsCount  int     `json:"resume_keywords_count"`
	JDKeywordsCount      int     `json:"jd_keywords_count"`
	MatchedKeywordsCount int     `json:"matched_keywords_count"`
}

type DebugInfo struct {
	ResumeTextLength int      `json:"extracted_resume_text_length"`
	JDTextLength     int      `json:"job_description_text_length"`
	ResumeKeywords   []string `json:"resume_keywords_extracted"`
	JDKeywords       []string `json:"jd_keywords_extracted"`
}

// Result is the full analysis of one resume against one job description.
type Result struct {
	Structured      Structured      `json:"structured"`
	MatchScore      float64         `json:"matchScore"`
	Feedback        string          `json:"feedback"`
	ResumeData      resumedata.Data `json:"resumeData"`
	AnalysisDetails Details         `json:"analysis_details"`
	DebugInfo       DebugInfo       `json:"debug_info"`
	Message         string          `json:"message,omitempty"`
}

// Aggregate combines the keyword match and the format evaluation into a Result.
// The overall score weighs content at 70% and format at 30%.
func Aggregate(match similarity.Result, fr format.Result, missing []string) Result {
	overall := utils.Round2(match.Score*contentWeight + float64(fr.Score)*formatWeight)

	if missing == nil {
		missing = []string{}
	}
	issues := fr.Issues
	if issues == nil {
		issues = []string{}
	}

	suggestions := FormatSuggestions(issues)
	suggestions = append(suggestions, ContentSuggestions(missing)...)

	return Result{
		Structured: Structured{
			Keywords:        matchedKeywords(match.Matches),
			MissingKeywords: missing,
			FormatIssues:    issues,
			Suggestions:     suggestions,
		},
		MatchScore: overall,
		Feedback:   Feedback(overall, len(match.Matches), len(missing), len(issues)),
		AnalysisDetails: Details{
			ContentMatchScore:    match.Score,
			FormatScore:          fr.Score,
			TotalFormatIssues:    fr.IssueCount,
			ResumeKeywordsCount:  len(match.ResumeKeywords),
			JDKeywordsCount:      len(match.JDKeywords),
			MatchedKeywordsCount: len(match.Matches),
		},
		DebugInfo: DebugInfo{
			ResumeKeywords: head(match.ResumeKeywords, maxDebugKeywords),
			JDKeywords:     head(match.JDKeywords, maxDebugKeywords),
		},
		Message: match.Message,
	}
}

// MissingKeywords returns up to ten job description keywords absent from the resume,
// in lexicographic order.
func MissingKeywords(jd, resume keywords.Set) []string {
	return head(jd.Difference(resume).Sorted(), maxMissingKeywords)
}

// Feedback describes the overall score band followed by the keyword and issue counts.
func Feedback(score float64, matched, missing, issues int) string {
	var parts []string

	switch {
	case score >= 80:
		parts = append(parts, "Excellent match! Your resume aligns well with the job requirements.")
	case score >= 60:
		parts = append(parts, "Good match with room for improvement in key areas.")
	case score >= 40:
		parts = append(parts, "Moderate match. Consider highlighting more relevant experience.")
	default:
		parts = append(parts, "Low match. Significant improvements needed to align with job requirements.")
	}

	if matched > 0 {
		parts = append(parts, fmt.Sprintf("Found %d matching skills/keywords.", matched))
	}
	if missing > 0 {
		parts = append(parts, fmt.Sprintf("Consider adding %d key skills mentioned in the job description.", missing))
	}
	if issues > 0 {
		parts = append(parts, fmt.Sprintf("Address %d formatting issues for better presentation.", issues))
	}

	return strings.Join(parts, " ")
}

func matchedKeywords(matches []similarity.MatchDetail) []Keyword {
	out := make([]Keyword, 0, len(matches))
	for _, m := range matches {
		out = append(out, Keyword{
			Word:       m.ResumeKeyword,
			Count:      1,
			Matches:    true,
			Importance: importanceRequired,
			Similarity: m.Similarity,
		})
	}
	return out
}

func head(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
