package ranking

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReportByEmployer groups the candidates under "<employer name> (<employer id>)".
func ReportByEmployer(candidates []*Candidate) map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, c := range candidates {
		v := c.Vacancy
		key := fmt.Sprintf("%s (%s)", v.Employer.Name, v.Employer.ID)

		entry := map[string]string{
			"name": v.Name,
			"url":  v.AlternateURL,
		}
		if c.Result != nil {
			entry["match_score"] = fmt.Sprintf("%.2f", c.Result.MatchScore)
			entry["feedback"] = c.Result.Feedback
		}
		if c.Error != "" {
			entry["error"] = c.Error
		}

		report[key] = append(report[key], entry)
	}
	return report
}

// DumpToTmpFile writes the candidates as indented JSON and returns the file name.
func DumpToTmpFile(candidates []*Candidate) (string, error) {
	file, err := os.CreateTemp("", "ranked_vacancies_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(candidates); err != nil {
		return "", err
	}
	return file.Name(), nil
}
