package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{level: "debug", expected: zapcore.DebugLevel},
		{level: "warn", expected: zapcore.WarnLevel},
		{level: "nonsense", expected: zapcore.InfoLevel},
		{level: "", expected: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		log, err := New(tt.level, "ledger-test")
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(tt.expected), "level %q", tt.level)
		if tt.expected > zapcore.DebugLevel {
			assert.False(t, log.Core().Enabled(tt.expected-1), "level %q", tt.level)
		}
	}
}
