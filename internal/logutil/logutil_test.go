// SPDX-License-Identifier: MIT
package logutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", Default(), false},
		{"empty", Config{}, false},
		{"json debug", Config{Level: "debug", Format: "JSON"}, false},
		{"bad level", Config{Level: "loud"}, true},
		{"bad format", Config{Format: "xml"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				_, err = New(tt.cfg)
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewWritesToRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecgp.log")
	cfg := Default()
	cfg.Filename = path
	cfg.Format = FormatJSON
	cfg.Level = "warn"

	log, err := New(cfg)
	require.NoError(t, err)
	log.Info("dropped")
	log.Warn("kept", zap.Int("samples", 3))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"kept"`)
	require.Contains(t, string(data), `"samples":3`)
	require.NotContains(t, string(data), "dropped")
}
