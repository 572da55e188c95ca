package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oshinavi.log")
	logger, err := New(Options{File: path})
	require.NoError(t, err)

	logger.Info("added artist")
	logger.Debug("hidden")
	_ = logger.Sync()

	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"msg":"added artist"`)
	assert.NotContains(t, string(bs), "hidden")
}
