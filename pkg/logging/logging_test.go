package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New("debug", FormatConsole)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New("WARN", "")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewRejectsInvalid(t *testing.T) {
	_, err := New("loud", FormatJSON)
	assert.Error(t, err)

	_, err = New("info", "xml")
	assert.Error(t, err)
}

func TestContext(t *testing.T) {
	fallback := zap.NewNop()
	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	logger := zap.NewExample()
	ctx := WithContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx, fallback))
}
