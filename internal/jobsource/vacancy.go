package jobsource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mitchellh/mapstructure"
)

const vacanciesPath = "/vacancies"

var (
	ErrInvalidVacancy = errors.New("invalid vacancy reference")

	numericID = regexp.MustCompile(`^\d+$`)
)

type Vacancy struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
	Employer     struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"employer,omitempty"`
	Description string `json:"description,omitempty"`
	KeySkills   []struct {
		Name string `json:"name,omitempty"`
	} `json:"key_skills,omitempty"`
	Snippet struct {
		Requirement    string `json:"requirement,omitempty"`
		Responsibility string `json:"responsibility,omitempty"`
	} `json:"snippet,omitempty"`
}

// GetVacancy fetches the full vacancy, including its description.
func (c *Client) GetVacancy(ctx context.Context, ref string) (*Vacancy, error) {
	id, err := VacancyID(ref)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := c.getJSON(ctx, fmt.Sprintf("%s%s/%s", c.APIURL, vacanciesPath, id), nil, &raw); err != nil {
		return nil, fmt.Errorf("get vacancy %s: %w", id, err)
	}

	var vacancy Vacancy
	if err := decode(raw, &vacancy); err != nil {
		return nil, fmt.Errorf("decode vacancy %s: %w", id, err)
	}

	return &vacancy, nil
}

// VacancyID accepts a numeric id or a vacancy page URL such as https://hh.ru/vacancy/123.
func VacancyID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if numericID.MatchString(ref) {
		return ref, nil
	}

	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidVacancy, ref)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if numericID.MatchString(segments[i]) {
			return segments[i], nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidVacancy, ref)
}

// Text renders the vacancy as a job description: name, key skills, then the
// description converted from HTML.
func (v *Vacancy) Text() (string, error) {
	var parts []string

	if name := strings.TrimSpace(v.Name); name != "" {
		parts = append(parts, name)
	}

	if len(v.KeySkills) > 0 {
		skills := make([]string, 0, len(v.KeySkills))
		for _, s := range v.KeySkills {
			skills = append(skills, s.Name)
		}
		parts = append(parts, "Key skills: "+strings.Join(skills, ", "))
	}

	description := v.Description
	if description == "" {
		description = strings.Join([]string{v.Snippet.Requirement, v.Snippet.Responsibility}, "\n")
	}
	body, err := HTMLToText(description)
	if err != nil {
		return "", err
	}
	if body != "" {
		parts = append(parts, body)
	}

	return strings.Join(parts, "\n"), nil
}

var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true, "br": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// HTMLToText drops markup and keeps one line per block element.
func HTMLToText(raw string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	writeText(&b, doc.Find("body"))

	return cleanWhitespace(b.String()), nil
}

func writeText(b *strings.Builder, s *goquery.Selection) {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		if name == "#text" {
			b.WriteString(child.Text())
			return
		}

		writeText(b, child)
		if blockElements[name] {
			b.WriteString("\n")
		}
	})
}

func cleanWhitespace(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

func decode(input, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  result,
		TagName: "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
