package format

const (
	IssueMissingExperience = "Missing Experience section"
	IssueMissingEducation  = "Missing Education section"
	IssueMissingSkills     = "Missing Skills section"
	IssueMissingSummary    = "Consider adding a professional summary or objective"
)

type section struct {
	issue    string
	synonyms []string
}

var (
	essentialSections = []section{
		{issue: IssueMissingExperience, synonyms: []string{"experience", "work experience", "employment", "professional experience"}},
		{issue: IssueMissingEducation, synonyms: []string{"education", "academic background", "qualifications"}},
		{issue: IssueMissingSkills, synonyms: []string{"skills", "technical skills", "competencies", "technologies"}},
	}

	summarySynonyms = []string{"summary", "objective", "profile", "about"}
)

type structureCheck struct{}

// NewStructure checks that the usual resume sections are present anywhere in the text.
func NewStructure() Check {
	return &structureCheck{}
}

func (c *structureCheck) Name() string { return "structure" }

func (c *structureCheck) Penalty() int { return 15 }

func (c *structureCheck) Run(doc *Document) []string {
	var issues []string

	for _, s := range essentialSections {
		if !containsAny(doc.Lower, s.synonyms) {
			issues = append(issues, s.issue)
		}
	}
	if !containsAny(doc.Lower, summarySynonyms) {
		issues = append(issues, IssueMissingSummary)
	}

	return issues
}
