package jobsource

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-scorer/internal/extract"
)

const vacancyJSON = `{
  "id": "123",
  "name": "Go Developer",
  "alternate_url": "https://hh.ru/vacancy/123",
  "salary": null,
  "employer": {"id": "7", "name": "Acme"},
  "description": "<p>We need <strong>Go</strong> and Kubernetes.</p><ul><li>Docker</li><li>AWS</li></ul><script>x()</script>",
  "key_skills": [{"name": "Go"}, {"name": "PostgreSQL"}]
}`

func newTestClient(t *testing.T, handler http.Handler, logger *zap.Logger) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{APIURL: srv.URL + "/", Token: "secret"}, logger)
	require.NoError(t, err)
	return c
}

func TestGetVacancy(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/vacancies/123", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		_, _ = gz.Write([]byte(vacancyJSON))
	})
	c := newTestClient(t, mux, nil)

	v, err := c.GetVacancy(context.Background(), "https://hh.ru/vacancy/123?from=search")
	require.NoError(t, err)

	assert.Equal(t, "123", v.ID)
	assert.Equal(t, "Acme", v.Employer.Name)
	require.Len(t, v.KeySkills, 2)

	text, err := v.Text()
	require.NoError(t, err)
	assert.Equal(t, "Go Developer\nKey skills: Go, PostgreSQL\nWe need Go and Kubernetes.\nDocker\nAWS", text)
}

func TestGetVacancyNotFound(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler(), nil)

	_, err := c.GetVacancy(context.Background(), "42")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetVacancyBadStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}), nil)

	_, err := c.GetVacancy(context.Background(), "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad status: 403")
}

func TestVacancyID(t *testing.T) {
	tests := []struct {
		ref     string
		want    string
		wantErr bool
	}{
		{ref: "123", want: "123"},
		{ref: " 987 ", want: "987"},
		{ref: "https://hh.ru/vacancy/555", want: "555"},
		{ref: "https://api.hh.ru/vacancies/777/", want: "777"},
		{ref: "https://hh.ru/search", wantErr: true},
		{ref: "golang", wantErr: true},
		{ref: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := VacancyID(tt.ref)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidVacancy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTMLToText(t *testing.T) {
	got, err := HTMLToText("<h2>About</h2><div>Build   <em>APIs</em><br>daily</div><style>p{}</style>")
	require.NoError(t, err)
	assert.Equal(t, "About\nBuild APIs\ndaily", got)

	got, err = HTMLToText("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVacancyTextFallsBackToSnippet(t *testing.T) {
	v := &Vacancy{Name: "SRE"}
	v.Snippet.Requirement = "Linux and <highlighttext>Terraform</highlighttext>"
	v.Snippet.Responsibility = "On-call"

	text, err := v.Text()
	require.NoError(t, err)
	assert.Equal(t, "SRE\nLinux and Terraform\nOn-call", text)
}

func TestSearchPaging(t *testing.T) {
	var (
		mu    sync.Mutex
		pages []string
	)
	requested := func() []string {
		mu.Lock()
		defer mu.Unlock()
		out := pages
		pages = nil
		return out
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vacancies", r.URL.Path)
		assert.Equal(t, "golang", r.URL.Query().Get("text"))
		assert.Equal(t, []string{"1", "2"}, r.URL.Query()["area"])
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		mu.Lock()
		pages = append(pages, r.URL.Query().Get("page"))
		mu.Unlock()

		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": strconv.Itoa(page*2 + 1), "name": "a"},
				{"id": strconv.Itoa(page*2 + 2), "name": "b"},
			},
			"found":    6,
			"pages":    3,
			"page":     page,
			"per_page": 2,
		})
	})

	core, logs := observer.New(zap.DebugLevel)
	c := newTestClient(t, handler, zap.New(core))

	all, err := c.Search(context.Background(), SearchParams{Text: "golang", Areas: []int{1, 2}}, 0)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "6", all[5].ID)
	assert.Equal(t, []string{"0", "1", "2"}, requested())
	assert.Equal(t, 2, logs.FilterMessage("additional request needed").Len())

	limited, err := c.Search(context.Background(), SearchParams{Text: "golang", Areas: []int{1, 2}}, 3)
	require.NoError(t, err)
	require.Len(t, limited, 3)
	assert.Equal(t, []string{"0", "1"}, requested())
}

func TestBuildParams(t *testing.T) {
	q := buildParams(SearchParams{
		Text:       "go",
		Schedules:  []string{"remote", "flexible"},
		Experience: "between3And6",
		Period:     7,
	})

	assert.Equal(t, "go", q.Get("text"))
	assert.Equal(t, []string{"remote", "flexible"}, q["schedule"])
	assert.Equal(t, "between3And6", q.Get("experience"))
	assert.Equal(t, "7", q.Get("period"))
	assert.NotContains(t, q, "employer_id")
	assert.NotContains(t, q, "area")
}

func TestResolve(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/vacancies/123", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(vacancyJSON))
	})
	core, logs := observer.New(zap.InfoLevel)
	c := newTestClient(t, mux, zap.New(core))

	dir := t.TempDir()
	mdFile := filepath.Join(dir, "job.md")
	require.NoError(t, os.WriteFile(mdFile, []byte("# Go developer"), 0o600))
	emptyFile := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(emptyFile, nil, 0o600))

	ctx := context.Background()

	got, err := c.Resolve(ctx, Spec{Text: "inline jd"})
	require.NoError(t, err)
	assert.Equal(t, "inline jd", got)

	got, err = c.Resolve(ctx, Spec{File: mdFile})
	require.NoError(t, err)
	assert.Equal(t, "# Go developer", got)

	_, err = c.Resolve(ctx, Spec{File: emptyFile})
	require.ErrorIs(t, err, extract.ErrEmpty)

	_, err = c.Resolve(ctx, Spec{File: filepath.Join(dir, "missing.txt")})
	require.ErrorIs(t, err, os.ErrNotExist)

	got, err = c.Resolve(ctx, Spec{Vacancy: "123"})
	require.NoError(t, err)
	assert.Contains(t, got, "Go Developer")
	assert.Equal(t, 1, logs.FilterMessage("vacancy loaded").Len())

	_, err = c.Resolve(ctx, Spec{})
	require.ErrorIs(t, err, ErrNoSource)

	_, err = c.Resolve(ctx, Spec{Text: "a", Vacancy: "1"})
	require.ErrorIs(t, err, ErrConflictingSource)
}

func TestNewWithTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte(" file-token\n"), 0o600))

	c, err := New(Config{TokenFile: path, UserAgent: "custom"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "file-token", c.token)
	assert.Equal(t, "custom", c.UserAgent)
	assert.Equal(t, DefaultAPIURL, c.APIURL)
	assert.Equal(t, DefaultTimeout, c.HTTPClient.Timeout)

	_, err = New(Config{TokenFile: filepath.Join(t.TempDir(), "missing")}, nil)
	require.Error(t, err)

	c, err = New(Config{}, nil)
	require.NoError(t, err)
	assert.Empty(t, c.token)
}
