package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"defaults", "presets/defaults.bass"},
		{"defaults.bass", "presets/defaults.bass"},
		{"sub_12-inch.v2", "presets/sub_12-inch.v2.bass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := PresetKey(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, key)
			assert.Equal(t, PresetName(tt.want), PresetName(key))
		})
	}
}

func TestPresetKey_Invalid(t *testing.T) {
	for _, name := range []string{"", ".bass", "../etc/passwd", "a/b", "a..b", ".hidden", "with space"} {
		_, err := PresetKey(name)
		assert.ErrorIs(t, err, ErrInvalidPresetName, name)
	}
}

func TestPresetName(t *testing.T) {
	assert.Equal(t, "defaults", PresetName("presets/defaults.bass"))
	assert.Equal(t, "box", PresetName("box.bass"))
}

func TestNewS3PresetStore_RequiresBucket(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	_, err := NewS3PresetStore(ctx, S3Config{})
	assert.Error(t, err)
}
