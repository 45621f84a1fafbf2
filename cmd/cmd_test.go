package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/analysis"
	"github.com/spigell/resume-scorer/internal/embedding"
	"github.com/spigell/resume-scorer/internal/jobsource"
	"github.com/spigell/resume-scorer/internal/ranking"
	"github.com/spigell/resume-scorer/internal/server"
)

const sampleConfig = `
embedding:
  provider: hash
  max-concurrency: 2
  hash:
    dimensions: 64
keywords:
  lexicon-file: /etc/lexicon.yaml
server:
  addr: ":8080"
  cors-origins: ["https://app.example.com"]
jobsource:
  timeout: 3s
rank:
  limit: 5
  minimum-score: 40
  exclude-employers: ["13"]
  search:
    text: golang
    areas: [1, 2]
`

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	configure(v)
	return v
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume-scorer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDecodeConfigFromFile(t *testing.T) {
	v := newTestViper(t)
	require.NoError(t, readConfig(v, writeConfig(t, sampleConfig)))

	cfg, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, embedding.Config{
		Provider:       "hash",
		MaxConcurrency: 2,
		MaxLogLength:   200,
		Hash:           embedding.HashConfig{Dimensions: 64},
	}, cfg.Embedding)
	assert.Equal(t, analysis.Config{Embedding: cfg.Embedding, LexiconFile: "/etc/lexicon.yaml"}, cfg.Analysis())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, int64(server.DefaultMaxUploadBytes), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 3*time.Second, cfg.JobSource.Timeout)
	assert.Equal(t, jobsource.DefaultAPIURL, cfg.JobSource.APIURL)
	assert.Equal(t, 5, cfg.Rank.Limit)
	assert.Equal(t, 40.0, cfg.Rank.MinimumScore)
	assert.Equal(t, []string{"13"}, cfg.Rank.ExcludeEmployers)
	assert.Equal(t, "golang", cfg.Rank.Search.Text)
	assert.Equal(t, []int{1, 2}, cfg.Rank.Search.Areas)
}

func TestDecodeConfigDefaults(t *testing.T) {
	v := newTestViper(t)

	cfg, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, embedding.ProviderGemini, cfg.Embedding.Provider)
	assert.Equal(t, 4, cfg.Embedding.MaxConcurrency)
	assert.Equal(t, server.DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, server.DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 20, cfg.Rank.Limit)
}

func TestDecodeConfigFromEnv(t *testing.T) {
	t.Setenv("RESUME_SCORER_EMBEDDING_PROVIDER", "none")
	t.Setenv("RESUME_SCORER_SERVER_MAX_UPLOAD_BYTES", "1024")
	t.Setenv("RESUME_SCORER_JOBSOURCE_API_URL", "http://localhost:9000")

	cfg, err := decodeConfig(newTestViper(t))
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.Embedding.Provider)
	assert.Equal(t, int64(1024), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "http://localhost:9000", cfg.JobSource.APIURL)
}

func TestDecodeConfigValidation(t *testing.T) {
	tests := map[string]string{
		"unknown provider": "embedding:\n  provider: openai\n",
		"negative limit":   "rank:\n  limit: -1\n",
		"score too high":   "rank:\n  minimum-score: 120\n",
		"bad api url":      "jobsource:\n  api-url: not a url\n",
		"batch too large":  "embedding:\n  gemini:\n    batch-size: 500\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			v := newTestViper(t)
			require.NoError(t, readConfig(v, writeConfig(t, content)))

			_, err := decodeConfig(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validating config")
		})
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, readConfig(newTestViper(t), ""), "implicit config file is optional")

	err := readConfig(newTestViper(t), filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	broken := writeConfig(t, "embedding: [")
	err = readConfig(newTestViper(t), broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func sampleResult() *analysis.Result {
	return &analysis.Result{
		Structured: analysis.Structured{
			Keywords:        []analysis.Keyword{{Word: "python", Similarity: 1}},
			MissingKeywords: []string{"aws"},
			FormatIssues:    []string{"Missing email address"},
			Suggestions:     []string{"Add a professional email address at the top of your resume"},
		},
		MatchScore: 69.77,
		Feedback:   "Good match with room for improvement in key areas.",
		AnalysisDetails: analysis.Details{
			ContentMatchScore: 66.67,
			FormatScore:       77,
		},
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "Match score:       69.77")
	assert.Contains(t, out, "Format score:      77")
	assert.Contains(t, out, "python (1.00)")
	assert.Contains(t, out, "Missing keywords:  aws")
	assert.Contains(t, out, "\nFormat issues:\n  - Missing email address\n")
	assert.Contains(t, out, "\nSuggestions:\n  - Add a professional email address")
	assert.NotContains(t, out, "Note:")
}

func TestPrintSummaryWithoutKeywords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, &analysis.Result{Message: "AI models not loaded."}))

	assert.Contains(t, buf.String(), "Matched keywords:  none")
	assert.Contains(t, buf.String(), "Note:              AI models not loaded.")
	assert.NotContains(t, buf.String(), "Suggestions")
}

func rankedCandidates() []*ranking.Candidate {
	first := &jobsource.Vacancy{ID: "2", Name: "Go Developer", AlternateURL: "https://hh.ru/vacancy/2"}
	first.Employer.Name = "Acme"
	return []*ranking.Candidate{
		{Vacancy: first, Result: &analysis.Result{MatchScore: 81.5}},
		{Vacancy: &jobsource.Vacancy{ID: "9", Name: "SRE"}, Error: "boom"},
	}
}

func TestPrintRanking(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRanking(&buf, rankedCandidates()))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[1]), "81.50")
	assert.Contains(t, string(lines[1]), "Acme")
	assert.Contains(t, string(lines[2]), "error")
}

func TestHandleAction(t *testing.T) {
	var buf bytes.Buffer
	candidates := rankedCandidates()

	require.NoError(t, handleAction(&buf, zap.NewNop(), PromptReportByEmployers, candidates))
	assert.Contains(t, buf.String(), `"Acme ()"`)

	require.ErrorIs(t, handleAction(&buf, zap.NewNop(), PromptExit, candidates), errExit)
	require.Error(t, handleAction(&buf, zap.NewNop(), "unknown", candidates))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, buf.String(), "resume-scorer version: unknown (commit none, go")
}
