package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) Getenv {
	return func(k string) string { return m[k] }
}

// chdir moves into an empty temp dir so no stray .env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "work")
	require.NoError(t, os.Mkdir(dir, 0o755))
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)
	cfg, rest, err := Load(nil, envMap(nil))
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, filepath.Join(cfg.DataDir, "langgpt.log"), cfg.LogFile)
	assert.Empty(t, cfg.Token)
}

func TestLoadPrecedence(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("LANGGPT_API_URL=http://dotenv:1\nLANGGPT_LOG_LEVEL=warn\nLANGGPT_TIMEOUT=5s\n"), 0o600))

	env := envMap(map[string]string{
		EnvLogLevel: "debug",
		EnvDataDir:  "/tmp/lg",
		EnvToken:    "tok",
	})
	cfg, rest, err := Load([]string{"-timeout", "9s", "translate", "-d", "ja2ko", "hi"}, env)
	require.NoError(t, err)

	want := &Config{
		APIURL:   "http://dotenv:1",
		DataDir:  "/tmp/lg",
		LogFile:  filepath.Join("/tmp/lg", "langgpt.log"),
		LogLevel: "debug",
		Timeout:  9 * time.Second,
		Token:    "tok",
	}
	assert.Empty(t, cmp.Diff(want, cfg))
	assert.Equal(t, []string{"translate", "-d", "ja2ko", "hi"}, rest)
}

func TestLoadParentDotenv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(dir), ".env"),
		[]byte("LANGGPT_API_URL=http://parent:2\n"), 0o600))

	cfg, _, err := Load(nil, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, "http://parent:2", cfg.APIURL)
}

func TestLoadErrors(t *testing.T) {
	chdir(t)
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "bad env timeout", env: map[string]string{EnvTimeout: "soon"}},
		{name: "bad flag timeout", args: []string{"-timeout", "abc"}},
		{name: "unknown flag", args: []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(tt.args, envMap(tt.env))
			require.Error(t, err)
		})
	}
}

func TestLogFileStdErr(t *testing.T) {
	chdir(t)
	cfg, _, err := Load([]string{"-log-file", "-", "-data-dir", "/x"}, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, "-", cfg.LogFile)
	assert.Equal(t, "/x", cfg.DataDir)
}
