package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OSHINAVI_DB", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "oshinavi.db", c.DBPath)
	assert.Equal(t, "gemini-2.5-flash", c.GeminiModel)
	assert.Equal(t, 7*24*time.Hour, c.CacheTTL)
	assert.False(t, c.AuthEnabled())
}

func TestLoadFileThenEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "oshinavi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: file.db\ngemini_model: from-file\ncache_ttl: 1h\nauth_user: me\n"), 0o644))

	t.Setenv("OSHINAVI_DB", "env.db")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")
	t.Setenv("OSHINAVI_AUTH_HASH", "$2a$10$hash")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.db", c.DBPath)
	assert.Equal(t, "from-file", c.GeminiModel)
	assert.Equal(t, time.Hour, c.CacheTTL)
	assert.Equal(t, "legacy-key", c.GeminiAPIKey)
	assert.True(t, c.AuthEnabled())
}

func TestLoadBadTTL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OSHINAVI_CACHE_TTL", "a while")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\nOSHINAVI_MODEL=dotenv-model\n"), 0o644))

	// godotenv never overrides variables that are already set
	t.Setenv("GEMINI_API_KEY", "")
	os.Unsetenv("GEMINI_API_KEY")
	t.Setenv("OSHINAVI_MODEL", "env-model")
	t.Setenv("API_KEY", "")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", c.GeminiAPIKey)
	assert.Equal(t, "env-model", c.GeminiModel)
}
