package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

type excludeFile struct {
	path string
}

// NewExcludeFile drops vacancies listed in a file previously written by DumpToTmpFile.
// An empty path disables the filter.
func NewExcludeFile(path string) Filter {
	return &excludeFile{path: path}
}

func (f *excludeFile) Name() string { return "exclude_file" }

func (f *excludeFile) Apply(_ context.Context, candidates []*Candidate, logger *zap.Logger) ([]*Candidate, Step, error) {
	if f.path == "" {
		return candidates, newStep(len(candidates), len(candidates)), nil
	}

	ids, err := ExcludedFromFile(f.path)
	if err != nil {
		return nil, Step{}, fmt.Errorf("getting excluded vacancies from file: %w", err)
	}

	kept := make([]*Candidate, 0, len(candidates))
	var removed []string
	for _, c := range candidates {
		if _, ok := ids[c.Vacancy.ID]; ok {
			removed = append(removed, c.Vacancy.ID)
			continue
		}
		kept = append(kept, c)
	}

	if len(removed) > 0 {
		logger.Info("excluding vacancies based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_vacancies", removed),
			zap.Int("vacancies_left", len(kept)),
		)
	}

	return kept, newStep(len(candidates), len(kept)), nil
}

// ExcludedFromFile returns the vacancy ids stored in a dump file. An empty file excludes nothing.
func ExcludedFromFile(path string) (map[string]struct{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{})
	if len(data) == 0 {
		return ids, nil
	}

	var dumped []*Candidate
	if err := json.Unmarshal(data, &dumped); err != nil {
		return nil, err
	}

	for _, c := range dumped {
		if c != nil && c.Vacancy != nil && c.Vacancy.ID != "" {
			ids[c.Vacancy.ID] = struct{}{}
		}
	}
	return ids, nil
}
