package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLoggerConfigLevels(t *testing.T) {
	cases := []struct {
		name       string
		production bool
		level      string
		want       zapcore.Level
	}{
		{"development default", false, "", zapcore.DebugLevel},
		{"production default", true, "", zapcore.InfoLevel},
		{"development override", false, "warn", zapcore.WarnLevel},
		{"production override", true, "error", zapcore.ErrorLevel},
		{"unknown level ignored", false, "loud", zapcore.DebugLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := loggerConfig(tc.production, tc.level)
			assert.Equal(t, tc.want, cfg.Level.Level())
			assert.Equal(t, tc.production, cfg.Encoding == "json")
		})
	}
}
