package format

import "regexp"

const (
	IssueMissingEmail    = "Missing email address"
	IssueMissingPhone    = "Missing or improperly formatted phone number"
	IssueMissingLinkedIn = "Consider adding LinkedIn profile"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\(\+\d{1,3}\)\s\d{2}\s\d{7}`),
		regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+?\d{1,3}[-.\s]?\d{3,4}[-.\s]?\d{3,4}[-.\s]?\d{3,4}`),
		regexp.MustCompile(`\+\d{1,9}\s\d{9}`),
	}

	linkedInPatterns = []*regexp.Regexp{
		regexp.MustCompile(`linkedin\.com/in/[\w-]+`),
		regexp.MustCompile(`linkedin\.com/pub/[\w-]+`),
		regexp.MustCompile(`www\.linkedin\.com`),
	}
)

type contactCheck struct{}

// NewContact checks for an email address, a phone number and a LinkedIn profile.
func NewContact() Check {
	return &contactCheck{}
}

func (c *contactCheck) Name() string { return "contact" }

func (c *contactCheck) Penalty() int { return 10 }

func (c *contactCheck) Run(doc *Document) []string {
	var issues []string

	if !emailPattern.MatchString(doc.Text) {
		issues = append(issues, IssueMissingEmail)
	}
	if !matchAny(phonePatterns, doc.Text) {
		issues = append(issues, IssueMissingPhone)
	}
	if !matchAny(linkedInPatterns, doc.Lower) {
		issues = append(issues, IssueMissingLinkedIn)
	}

	return issues
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
