package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceVersion(t *testing.T) {
	input := `{
    // keep me
    "name": "app",
    "nested": {"version": "0.0.1"},
    "version":   "1.2.3",
    "tail": [1, 2, 3],
}
`
	want := `{
    // keep me
    "name": "app",
    "nested": {"version": "0.0.1"},
    "version":   "1.3.0-beta.0",
    "tail": [1, 2, 3],
}
`
	got, err := ReplaceVersion([]byte(input), "1.3.0-beta.0")
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestReplaceVersion_EscapedQuote(t *testing.T) {
	got, err := ReplaceVersion([]byte(`{"version":"1.0\"0", "x": "\""}`), "2.0.0")
	require.NoError(t, err)
	assert.Equal(t, `{"version":"2.0.0", "x": "\""}`, string(got))

	got, err = ReplaceVersion([]byte("{\"version\" /* old */ :\n\t\"1.0.0\"}"), "2.0.0")
	require.NoError(t, err)
	assert.Equal(t, "{\"version\" /* old */ :\n\t\"2.0.0\"}", string(got))
}

func TestReplaceVersion_Errors(t *testing.T) {
	_, err := ReplaceVersion([]byte(`{"name": "x"}`), "1.0.0")
	assert.ErrorIs(t, err, ErrNoVersionField)

	_, err = ReplaceVersion([]byte(`{"version": 3}`), "1.0.0")
	assert.ErrorContains(t, err, "version must be a string")

	_, err = ReplaceVersion([]byte(`["version"]`), "1.0.0")
	assert.ErrorContains(t, err, "must be an object")
}

func TestUpdateVersionField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bower.json")
	require.NoError(t, os.WriteFile(path, []byte("{\n\t\"version\": \"1.0.0\",\n\t\"main\": \"index.js\"\n}\n"), 0o600))

	require.NoError(t, UpdateVersionField(path, "1.0.1"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"version\": \"1.0.1\",\n\t\"main\": \"index.js\"\n}\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestUpdateVersionField_Missing(t *testing.T) {
	err := UpdateVersionField(filepath.Join(t.TempDir(), "nope.json"), "1.0.0")

	var notFound *ManifestNotFoundError
	assert.True(t, errors.As(err, &notFound))
}
