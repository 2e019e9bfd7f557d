package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		env       string
		wantLevel zap.AtomicLevel
	}{
		{name: "prod info", level: "info", env: "prod", wantLevel: zap.NewAtomicLevelAt(zap.InfoLevel)},
		{name: "dev debug", level: "DEBUG", env: "dev", wantLevel: zap.NewAtomicLevelAt(zap.DebugLevel)},
		{name: "unknown level falls back to info", level: "chatty", env: "prod", wantLevel: zap.NewAtomicLevelAt(zap.InfoLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := BuildLogger(tt.level, tt.env)
			require.NoError(t, err)
			require.NotNil(t, logger)

			assert.True(t, logger.Core().Enabled(tt.wantLevel.Level()))
			if tt.wantLevel.Level() > zap.DebugLevel {
				assert.False(t, logger.Core().Enabled(zap.DebugLevel))
			}
		})
	}
}
