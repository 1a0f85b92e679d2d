package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.AWS.S3Bucket)
	assert.Equal(t, 20.0, cfg.Model.Sweep.Min)
	assert.Equal(t, 200.0, cfg.Model.Sweep.Max)
	assert.Equal(t, 1.0, cfg.Model.Sweep.Step)
}

func TestLoad_Environment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("S3_BUCKET", "presets")
	t.Setenv("SWEEP_MIN", "10")
	t.Setenv("SWEEP_MAX", "1000")
	t.Setenv("SWEEP_STEP", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "presets", cfg.AWS.S3Bucket)
	assert.Equal(t, 10.0, cfg.Model.Sweep.Min)
	assert.Equal(t, 1000.0, cfg.Model.Sweep.Max)
	assert.Equal(t, 5.0, cfg.Model.Sweep.Step)
}

func TestLoad_InvalidSweepFallsBack(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SWEEP_MIN", "500")
	t.Setenv("SWEEP_MAX", "100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.Model.Sweep.Min)
	assert.Equal(t, 200.0, cfg.Model.Sweep.Max)
}
