package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deidaraiorek/csvcharts/internal/logging"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	logger, err := logging.New(logging.Config{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	logger.Debug("wordcloud built")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "wordcloud built")
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := logging.New(logging.Config{Level: "loud"})
	assert.Error(t, err)

	_, err = logging.New(logging.Config{Format: "xml"})
	assert.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	logger, err := logging.New(logging.Config{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
