package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/openimis/fe-config/internal/errors"
)

const samplePackageJSON = `{
  "name": "openimis-fe",
  "version": "1.0.0",
  "dependencies": {
    "@openimis/fe-core": "git+https://github.com/openimis/openimis-fe-core_js.git#develop",
    "react": "^17.0.2",
    "@openimis/fe-home": "1.0.0",
    "redux": "^4.0.5"
  },
  "scripts": {
    "build": "react-scripts build"
  }
}`

func TestParseAndMarshalRoundTrip(t *testing.T) {
	m, err := Parse([]byte(samplePackageJSON))
	require.NoError(t, err)

	out, err := m.Marshal()
	require.NoError(t, err)
	assert.Equal(t, samplePackageJSON, string(out))
}

func TestPurgePrefix(t *testing.T) {
	m, err := Parse([]byte(samplePackageJSON))
	require.NoError(t, err)

	removed := m.PurgePrefix("@openimis/")
	assert.Equal(t, []string{"@openimis/fe-core", "@openimis/fe-home"}, removed)

	assert.Equal(t, []Dependency{
		{Name: "react", Version: "^17.0.2"},
		{Name: "redux", Version: "^4.0.5"},
	}, m.Dependencies())
}

func TestSetAppendsNewAndReplacesExisting(t *testing.T) {
	m, err := Parse([]byte(samplePackageJSON))
	require.NoError(t, err)

	m.PurgePrefix("@openimis/")
	require.NoError(t, m.Set("@openimis/fe-home", "2.0.0"))
	require.NoError(t, m.Set("react", "^18.0.0"))
	require.NoError(t, m.Set("@openimis/fe-core", ">=1.5.1"))

	assert.Equal(t, []Dependency{
		{Name: "react", Version: "^18.0.0"},
		{Name: "redux", Version: "^4.0.5"},
		{Name: "@openimis/fe-home", Version: "2.0.0"},
		{Name: "@openimis/fe-core", Version: ">=1.5.1"},
	}, m.Dependencies())

	out, err := m.Marshal()
	require.NoError(t, err)

	want := `{
  "name": "openimis-fe",
  "version": "1.0.0",
  "dependencies": {
    "react": "^18.0.0",
    "redux": "^4.0.5",
    "@openimis/fe-home": "2.0.0",
    "@openimis/fe-core": ">=1.5.1"
  },
  "scripts": {
    "build": "react-scripts build"
  }
}`
	assert.Equal(t, want, string(out))
}

func TestMissingDependenciesIsCreated(t *testing.T) {
	m, err := Parse([]byte(`{"name": "app"}`))
	require.NoError(t, err)

	assert.Empty(t, m.PurgePrefix("@openimis/"))
	require.NoError(t, m.Set("@openimis/fe-core", "1.0.0"))

	out, err := m.Marshal()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"app\",\n  \"dependencies\": {\n    \"@openimis/fe-core\": \"1.0.0\"\n  }\n}", string(out))
}

func TestNullDependencies(t *testing.T) {
	const src = "{\n  \"name\": \"app\",\n  \"dependencies\": null\n}"

	t.Run("kept when nothing is set", func(t *testing.T) {
		m, err := Parse([]byte(src))
		require.NoError(t, err)

		assert.Empty(t, m.PurgePrefix("@openimis/"))
		out, err := m.Marshal()
		require.NoError(t, err)
		assert.Equal(t, src, string(out))
	})

	t.Run("replaced by an object once set", func(t *testing.T) {
		m, err := Parse([]byte(src))
		require.NoError(t, err)

		require.NoError(t, m.Set("@openimis/fe-core", "1.0.0"))
		out, err := m.Marshal()
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"name\": \"app\",\n  \"dependencies\": {\n    \"@openimis/fe-core\": \"1.0.0\"\n  }\n}", string(out))
	})
}

func TestVersion(t *testing.T) {
	m, err := Parse([]byte(`{"dependencies": {"a": "1.0.0", "b": {"odd": true}}}`))
	require.NoError(t, err)

	v, ok := m.Version("a")
	assert.True(t, ok)
	assert.Equal(t, "1.0.0", v)

	v, ok = m.Version("b")
	assert.True(t, ok)
	assert.JSONEq(t, `{"odd": true}`, v)

	_, ok = m.Version("missing")
	assert.False(t, ok)
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(path, []byte(samplePackageJSON), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	m.PurgePrefix("@openimis/")
	require.NoError(t, m.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "@openimis/")
	assert.Contains(t, string(data), `"react": "^17.0.2"`)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file is a filesystem error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "package.json"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrFilesystem))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "package.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name": `), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})
}
