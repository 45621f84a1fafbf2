// Package resumedata pulls display fields out of resume text with simple patterns.
// Results are best effort and never affect scoring.
package resumedata

import (
	"regexp"
	"strings"
	"unicode"
)

type Data struct {
	PersonalInfo   PersonalInfo `json:"personalInfo"`
	Education      []Education  `json:"education"`
	Experience     []Experience `json:"experience"`
	Skills         []string     `json:"skills"`
	Certifications []string     `json:"certifications"`
}

type PersonalInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Education struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

type Experience struct {
	Title string `json:"title,omitempty"`
	Date  string `json:"date,omitempty"`
}

const (
	nameSearchLines = 5
	nameMaxWords    = 4
	nameMinLength   = 6
)

var (
	emailPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\(\d{3}\)\s?\d{3}-?\d{4}`),
	}
	notNamePattern = regexp.MustCompile(`@|\.com|phone|email|\d`)

	yearPattern        = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	degreePattern      = regexp.MustCompile(`\b(?:bachelor|master|phd|b\.?sc?|m\.?sc?|b\.?a|m\.?a|doctorate|diploma)\b[\w ]*`)
	institutionPattern = regexp.MustCompile(`\b(?:university|college|institute|school)\b[\w ]*`)

	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:(?:software|web|data|system|project|fullstack|frontend|backend|wordpress) +)(?:developer|engineer|manager|analyst)\b`),
		regexp.MustCompile(`\b(?:(?:senior|junior|lead|principal) +)?(?:developer|engineer|manager|analyst|consultant|specialist|director)\b`),
	}
	datePattern = regexp.MustCompile(`\b(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]* +)?(?:19|20)\d{2}\b`)

	certificationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:aws|azure|google cloud|gcp) *(?:certified|certification)\b[\w ]*`),
		regexp.MustCompile(`\b(?:pmp|cissp|comptia|cisco|microsoft)\b *\w*`),
		regexp.MustCompile(`\bcertified *\w+ *(?:professional|associate|expert)\b`),
	}

	sectionEnd = regexp.MustCompile(`\n\s*\n`)
)

var (
	educationHeadings     = headings("education", "academic background")
	experienceHeadings    = headings("experience", "work experience", "employment")
	skillsHeadings        = headings("skills", "technical skills", "competencies")
	certificationHeadings = headings("certifications", "certificates", "qualifications")
)

// headings compiles section heading patterns, tried in the given order.
func headings(names ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(names))
	for _, name := range names {
		patterns = append(patterns, regexp.MustCompile(regexp.QuoteMeta(name)+`[:\s]+`))
	}
	return patterns
}

// Extract returns the display fields found in text.
func Extract(text string) Data {
	return Data{
		PersonalInfo:   personalInfo(text),
		Education:      education(text),
		Experience:     experience(text),
		Skills:         skills(text),
		Certifications: certifications(text),
	}
}

func personalInfo(text string) PersonalInfo {
	var info PersonalInfo

	info.Email = emailPattern.FindString(text)
	for _, p := range phonePatterns {
		if phone := p.FindString(text); phone != "" {
			info.Phone = phone
			break
		}
	}

	lines := strings.Split(text, "\n")
	if len(lines) > nameSearchLines {
		lines = lines[:nameSearchLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || len(strings.Fields(line)) > nameMaxWords || len([]rune(line)) < nameMinLength {
			continue
		}
		if notNamePattern.MatchString(strings.ToLower(line)) {
			continue
		}
		info.Name = line
		break
	}

	return info
}

func education(text string) []Education {
	body := section(text, educationHeadings)
	if body == "" {
		return []Education{}
	}

	years := yearPattern.FindAllString(body, -1)
	institution := strings.TrimSpace(institutionPattern.FindString(body))
	if len(years) == 0 && institution == "" {
		return []Education{}
	}

	entry := Education{
		Degree:      strings.TrimSpace(degreePattern.FindString(body)),
		Institution: institution,
	}
	if len(years) > 0 {
		entry.Year = years[len(years)-1]
	}
	return []Education{entry}
}

func experience(text string) []Experience {
	body := section(text, experienceHeadings)
	if body == "" {
		return []Experience{}
	}

	var title string
	for _, p := range titlePatterns {
		if title = strings.Join(strings.Fields(p.FindString(body)), " "); title != "" {
			break
		}
	}

	dates := datePattern.FindAllString(body, -1)
	if title == "" && len(dates) == 0 {
		return []Experience{}
	}

	entry := Experience{Title: title}
	switch len(dates) {
	case 0:
	case 1:
		entry.Date = dates[0]
	default:
		entry.Date = dates[0] + " - " + dates[len(dates)-1]
	}
	return []Experience{entry}
}

func skills(text string) []string {
	found := []string{}

	body := section(text, skillsHeadings)
	if body == "" {
		return found
	}

	for _, skill := range knownSkills {
		if containsTerm(body, skill) {
			found = append(found, titleCase(skill))
		}
	}
	return found
}

func certifications(text string) []string {
	found := []string{}

	body := section(text, certificationHeadings)
	if body == "" {
		return found
	}

	for _, p := range certificationPatterns {
		for _, match := range p.FindAllString(body, -1) {
			if match = strings.TrimSpace(match); match != "" {
				found = append(found, match)
			}
		}
	}
	return found
}

// section returns the lower-cased text following the first heading found, up to the
// next blank line. Headings are tried in order.
func section(text string, patterns []*regexp.Regexp) string {
	lower := strings.ToLower(text)

	for _, heading := range patterns {
		start := heading.FindStringIndex(lower)
		if start == nil {
			continue
		}

		body := lower[start[1]:]
		if end := sectionEnd.FindStringIndex(body); end != nil {
			body = body[:end[0]]
		}
		return strings.TrimSpace(body)
	}

	return ""
}

// containsTerm reports whether term occurs in s without being part of a longer word.
func containsTerm(s, term string) bool {
	for offset := 0; ; {
		idx := strings.Index(s[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)
		if !isWordByte(s, start-1) && !isWordByte(s, end) {
			return true
		}
		offset = start + 1
	}
}

func isWordByte(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	c := s[i]
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '+' || c == '#'
}

// titleCase upper-cases every letter that follows a non-letter.
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
