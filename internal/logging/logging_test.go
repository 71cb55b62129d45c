package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/smart-trainer/workout-editor/internal/config"
)

func TestNew_FileAndStderr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.log")
	var stderr bytes.Buffer

	logger, closer := New(config.LogConfig{File: path, MaxSizeMB: 1, MaxBackups: 1, Stderr: true}, &stderr)
	logger.Printf("Editor: hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Editor: hello")
	assert.Contains(t, stderr.String(), "Editor: hello")
}

func TestNew_Discard(t *testing.T) {
	logger, closer := New(config.LogConfig{}, nil)
	require.NotNil(t, logger)
	logger.Printf("nowhere")
	assert.NoError(t, closer.Close())
}
