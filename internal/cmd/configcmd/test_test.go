package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mikasa/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	src := t.TempDir()
	for _, path := range []string{
		filepath.Join(src, "en", "help.md"),
		filepath.Join(src, "en", "sub", "page.md"),
		filepath.Join(src, "de", "help.md"),
		filepath.Join(src, "de", "image.png"),
	} {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("# x\n"), 0644))
	}
	return &config.Config{Identifier: "org.ext", Src: src}
}

func TestRunTest_Success(t *testing.T) {
	cfg := testConfig(t)

	var buf bytes.Buffer
	require.NoError(t, runTest(&buf, true, cfg))

	output := buf.String()
	assert.Contains(t, output, "✓ Configuration valid")
	assert.Contains(t, output, "de       1 markdown files")
	assert.Contains(t, output, "en       2 markdown files")
}

func TestRunTest_MissingLanguageFolder(t *testing.T) {
	cfg := testConfig(t)
	cfg.Languages = []string{"en", "fr"}

	var buf bytes.Buffer
	require.NoError(t, runTest(&buf, true, cfg))
	assert.Contains(t, buf.String(), "✗ Configured language fr has no folder")
}

func TestRunTest_InvalidConfig(t *testing.T) {
	var buf bytes.Buffer
	err := runTest(&buf, true, &config.Config{Src: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, buf.String(), "mikasa init")
}

func TestRunTest_MissingSource(t *testing.T) {
	err := runTest(&bytes.Buffer{}, true, &config.Config{Identifier: "org.ext", Src: filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRunTest_EmptySource(t *testing.T) {
	err := runTest(&bytes.Buffer{}, true, &config.Config{Identifier: "org.ext", Src: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no language folders")
}
