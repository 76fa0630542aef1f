package logging

import (
	"testing"

	"github.com/hance08/qwallet/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LogConfig
		wantErr bool
	}{
		{name: "console debug", cfg: config.LogConfig{Level: "debug", Format: "console"}},
		{name: "json warn", cfg: config.LogConfig{Level: "WARN", Format: "json"}},
		{name: "bad level", cfg: config.LogConfig{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNew_LevelIsApplied(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "error", Format: "json"})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zap.WarnLevel))
	assert.True(t, logger.Core().Enabled(zap.ErrorLevel))
}
