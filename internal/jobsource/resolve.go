package jobsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/extract"
)

var (
	ErrNoSource          = errors.New("no job description given")
	ErrConflictingSource = errors.New("only one job description source can be given")
)

// Spec names where the job description comes from. Exactly one field must be set.
type Spec struct {
	Text    string
	File    string
	Vacancy string
}

func (s Spec) count() int {
	n := 0
	for _, v := range []string{s.Text, s.File, s.Vacancy} {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

// Resolve returns the job description text for spec.
func (c *Client) Resolve(ctx context.Context, spec Spec) (string, error) {
	switch spec.count() {
	case 0:
		return "", ErrNoSource
	case 1:
	default:
		return "", ErrConflictingSource
	}

	switch {
	case strings.TrimSpace(spec.Text) != "":
		return spec.Text, nil
	case strings.TrimSpace(spec.File) != "":
		return ReadFile(spec.File)
	}

	vacancy, err := c.GetVacancy(ctx, spec.Vacancy)
	if err != nil {
		return "", err
	}

	c.logger.Info("vacancy loaded",
		zap.String("vacancy_id", vacancy.ID),
		zap.String("name", vacancy.Name),
		zap.String("employer", vacancy.Employer.Name),
	)

	return vacancy.Text()
}

// ReadFile loads a document from disk. Files that are not pdf or docx are read as text.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	ext := extract.Ext(path)
	if !extract.Supported(ext) {
		ext = extract.ExtTXT
	}

	text, err := extract.Text(data, ext)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}

	return text, nil
}
