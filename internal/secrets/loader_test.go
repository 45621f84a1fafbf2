package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("  from-file\n"), 0o600))

	secret, err := Load(Source{Name: "api key", File: path, Value: "inline"})
	require.NoError(t, err)
	assert.Equal(t, "from-file", secret)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("   "), 0o600))

	_, err := Load(Source{Name: "api key", File: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")
}

func TestLoadInlineThenEnv(t *testing.T) {
	t.Setenv("RESUME_SCORER_TEST_KEY", " from-env ")

	secret, err := Load(Source{Value: " inline ", Env: "RESUME_SCORER_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "inline", secret)

	secret, err = Load(Source{Env: "RESUME_SCORER_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "from-env", secret)
}

func TestLoadNotConfigured(t *testing.T) {
	t.Setenv("RESUME_SCORER_MISSING_KEY", "")

	_, err := Load(Source{Name: "gemini api key", Env: "RESUME_SCORER_MISSING_KEY"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESUME_SCORER_MISSING_KEY")

	_, err = Load(Source{})
	require.EqualError(t, err, "secret is not configured")
}
