package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  Config{Identifier: "org.example.ext", Languages: []string{"en", "pt-BR"}},
			wantErr: false,
		},
		{
			name:    "missing identifier",
			config:  Config{},
			wantErr: true,
			errMsg:  "identifier is required",
		},
		{
			name:    "identifier with slash",
			config:  Config{Identifier: "a/b"},
			wantErr: true,
			errMsg:  "must not contain slashes",
		},
		{
			name:    "invalid language",
			config:  Config{Identifier: "ext", Languages: []string{"en", "not a tag"}},
			wantErr: true,
			errMsg:  `invalid language "not a tag"`,
		},
		{
			name:    "application with digits",
			config:  Config{Identifier: "ext", Application: "ab1de"},
			wantErr: true,
			errMsg:  "application must be lowercase letters",
		},
		{
			name:    "negative jobs",
			config:  Config{Identifier: "ext", Jobs: -1},
			wantErr: true,
			errMsg:  "jobs must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultSrc, cfg.Src)
	assert.Equal(t, DefaultDest, cfg.Dest)
	assert.True(t, cfg.EmphasiseHeader())

	off := false
	cfg = &Config{Src: "in", Dest: "out", EmphasiseTableHeader: &off}
	cfg.ApplyDefaults()
	assert.Equal(t, "in", cfg.Src)
	assert.Equal(t, "out", cfg.Dest)
	assert.False(t, cfg.EmphasiseHeader())
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Run("loads all env vars", func(t *testing.T) {
		t.Setenv("MIKASA_ID", "env.ext")
		t.Setenv("MIKASA_BASE", "https://host/img/")
		t.Setenv("MIKASA_SRC", "src")
		t.Setenv("MIKASA_DEST", "dest")
		t.Setenv("MIKASA_LANGS", "en, de,")
		t.Setenv("MIKASA_APPLICATION", "qwert")
		t.Setenv("MIKASA_SHOW_ERRORS", "true")
		t.Setenv("MIKASA_EMPHASISE_TABLE_HEADER", "false")
		t.Setenv("MIKASA_DUMMY_HRULE", "1")
		t.Setenv("MIKASA_JOBS", "3")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, "env.ext", cfg.Identifier)
		assert.Equal(t, "https://host/img/", cfg.Base)
		assert.Equal(t, "src", cfg.Src)
		assert.Equal(t, "dest", cfg.Dest)
		assert.Equal(t, []string{"en", "de"}, cfg.Languages)
		assert.Equal(t, "qwert", cfg.Application)
		assert.True(t, cfg.ShowErrors)
		assert.False(t, cfg.EmphasiseHeader())
		assert.True(t, cfg.DummyHRule)
		assert.Equal(t, 3, cfg.Jobs)
	})

	t.Run("empty and invalid values keep existing", func(t *testing.T) {
		t.Setenv("MIKASA_ID", "")
		t.Setenv("MIKASA_SHOW_ERRORS", "maybe")
		t.Setenv("MIKASA_JOBS", "many")

		cfg := &Config{Identifier: "file.ext", ShowErrors: true, Jobs: 2}
		cfg.LoadFromEnv()

		assert.Equal(t, "file.ext", cfg.Identifier)
		assert.True(t, cfg.ShowErrors)
		assert.Equal(t, 2, cfg.Jobs)
	})
}

func TestSplitLanguages(t *testing.T) {
	assert.Nil(t, SplitLanguages(""))
	assert.Equal(t, []string{"en"}, SplitLanguages("en"))
	assert.Equal(t, []string{"en", "ja"}, SplitLanguages(" en ,, ja "))
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("xdg config home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		assert.Equal(t, filepath.Join("/tmp/xdg", "mikasa", "config.yml"), DefaultConfigPath())
	})

	t.Run("home directory", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "mikasa", "config.yml"), DefaultConfigPath())
	})
}

func TestConfig_Save_and_Load(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yml")

	off := false
	original := Config{
		Identifier:           "org.example.ext",
		Base:                 "https://host/img/",
		Languages:            []string{"en", "de"},
		ShowErrors:           true,
		EmphasiseTableHeader: &off,
		Jobs:                 4,
	}

	require.NoError(t, original.Save(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("identifier: [unclosed"), 0600))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadWithEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("missing file uses env and defaults", func(t *testing.T) {
		t.Setenv("MIKASA_ID", "from.env")

		cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
		require.NoError(t, err)
		assert.Equal(t, "from.env", cfg.Identifier)
		assert.Equal(t, DefaultSrc, cfg.Src)
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, (&Config{Identifier: "from.file", Dest: "out"}).Save(path))
		t.Setenv("MIKASA_ID", "from.env")

		cfg, err := LoadWithEnv(path)
		require.NoError(t, err)
		assert.Equal(t, "from.env", cfg.Identifier)
		assert.Equal(t, "out", cfg.Dest)
	})

	t.Run("dotenv file", func(t *testing.T) {
		// godotenv never overrides variables that are already set
		t.Setenv("MIKASA_BASE", "")
		require.NoError(t, os.Unsetenv("MIKASA_BASE"))
		require.NoError(t, os.WriteFile(".env", []byte("MIKASA_BASE=https://dotenv/img/\n"), 0600))

		cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
		require.NoError(t, err)
		assert.Equal(t, "https://dotenv/img/", cfg.Base)
	})
}
