package resumedata

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
Senior Backend Engineer
jane.doe@example.com | +1 555-123-4567

Summary
Backend engineer with a focus on payments.

Experience
Senior Software Engineer, Acme Corp
Jan 2019 - Present
Built payment services in Go and Python.
Software Developer, Initech
2015 - 2018

Education
BSc Computer Science
State University of Somewhere, 2014

Skills: Python, Go, Docker, Kubernetes, PostgreSQL, C++, React-Native, REST API, JavaScript

Certifications
AWS Certified Solutions Architect
Microsoft Azure fundamentals
`

func TestExtract(t *testing.T) {
	data := Extract(sampleResume)

	assert.Equal(t, PersonalInfo{
		Name:  "Jane Doe",
		Email: "jane.doe@example.com",
		Phone: "+1 555-123-4567",
	}, data.PersonalInfo)

	require.Len(t, data.Education, 1)
	assert.Equal(t, "bsc computer science", data.Education[0].Degree)
	assert.Equal(t, "university of somewhere", data.Education[0].Institution)
	assert.Equal(t, "2014", data.Education[0].Year)

	require.Len(t, data.Experience, 1)
	assert.Equal(t, "software engineer", data.Experience[0].Title)
	assert.Equal(t, "jan 2019 - 2018", data.Experience[0].Date)

	assert.Equal(t, []string{"Python", "Javascript", "React", "Docker", "Kubernetes", "C++", "React-Native", "Postgresql", "Rest Api"}, data.Skills)
	assert.Equal(t, []string{"aws certified solutions architect", "microsoft azure"}, data.Certifications)
}

func TestExtractEmptyText(t *testing.T) {
	data := Extract("")

	assert.Equal(t, PersonalInfo{}, data.PersonalInfo)
	assert.NotNil(t, data.Education)
	assert.Empty(t, data.Education)
	assert.NotNil(t, data.Experience)
	assert.Empty(t, data.Experience)
	assert.NotNil(t, data.Skills)
	assert.Empty(t, data.Skills)
	assert.NotNil(t, data.Certifications)
	assert.Empty(t, data.Certifications)
}

func TestPersonalInfoName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "first suitable line", text: "\nJohn Smith\nDeveloper", want: "John Smith"},
		{name: "skips contact lines", text: "john@example.com\nPhone 555\nMaria Garcia", want: "Maria Garcia"},
		{name: "too many words", text: "Experienced engineer building reliable systems", want: ""},
		{name: "too short", text: "Bob", want: ""},
		{name: "only first five lines", text: "a\nb\nc\nd\ne\nJohn Smith", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, personalInfo(tt.text).Name)
		})
	}
}

func TestSection(t *testing.T) {
	text := "Header\n\nSkills:\nGo, Python\nDocker\n\nEducation\nMIT"

	assert.Equal(t, "go, python\ndocker", section(text, headings("skills")))
	assert.Equal(t, "mit", section(text, headings("education")))
	assert.Equal(t, "mit", section(text, headings("academic background", "education")))
	assert.Empty(t, section(text, headings("certifications")))
	assert.Equal(t, "go, python\ndocker", section(text, skillsHeadings))
	assert.Empty(t, section(text, nil))
}

func TestSectionHeadingsArePrecompiled(t *testing.T) {
	tests := []struct {
		patterns []*regexp.Regexp
		names    []string
	}{
		{educationHeadings, []string{"education", "academic background"}},
		{experienceHeadings, []string{"experience", "work experience", "employment"}},
		{skillsHeadings, []string{"skills", "technical skills", "competencies"}},
		{certificationHeadings, []string{"certifications", "certificates", "qualifications"}},
	}

	for _, tt := range tests {
		require.Len(t, tt.patterns, len(tt.names))
		for i, name := range tt.names {
			assert.True(t, tt.patterns[i].MatchString(name+":\n"), "pattern for %q", name)
		}
	}
}

func TestSkillsMatchWholeTerms(t *testing.T) {
	got := skills("Skills: nodejs, asp.net, c#, javascript")

	assert.Equal(t, []string{"Javascript", "Nodejs"}, got)
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"python":           "Python",
		"machine learning": "Machine Learning",
		"c++":              "C++",
		".net":             ".Net",
		"react-native":     "React-Native",
		"":                 "",
	}

	for in, want := range tests {
		assert.Equal(t, want, titleCase(in), in)
	}
}
