package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestSetLogger(t *testing.T) {
	previous := logger
	defer func() { logger = previous }()

	path := filepath.Join(t.TempDir(), "server.log")
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(flagSet)
	require.NoError(t, flagSet.Parse([]string{"--log-path", path}))

	SetLogger(flagSet, false)
	Logger().Info("rating created")
	Logger().Debug("hidden at info level")
	_ = Logger().Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rating created")
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestSetLogger_WithoutFlags(t *testing.T) {
	previous := logger
	defer func() { logger = previous }()

	SetLogger(nil, true)
	assert.True(t, Logger().Core().Enabled(zapcore.DebugLevel))
}
