package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`
version: "1"
packages:
  - ./examples/...
output:
  file_suffix: _dto.go
  comments: false
`)

	f, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, []string{"./examples/..."}, f.Packages)
	assert.Equal(t, "_dto.go", f.Output.FileSuffix)
	assert.False(t, f.Output.CommentsEnabled())
}

func TestParseDefaults(t *testing.T) {
	f, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, []string{"./..."}, f.Packages)
	assert.Equal(t, "_gen.go", f.Output.FileSuffix)
	assert.True(t, f.Output.CommentsEnabled())
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("packages: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dtogen.yaml")

	content := []byte("packages:\n  - ./internal/...\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"./internal/..."}, f.Packages)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestDefault(t *testing.T) {
	f := Default()

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, []string{"./..."}, f.Packages)
	assert.Equal(t, "_gen.go", f.Output.FileSuffix)
	assert.True(t, f.Output.CommentsEnabled())
}
