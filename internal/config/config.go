package config

import (
	"strings"

	"github.com/RMahshie/basscalc/internal/transfer"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	AWS      AWSConfig
	Model    ModelConfig
}

// DatabaseConfig holds database configuration. An empty URL disables the
// design repository.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// AWSConfig holds AWS/S3 configuration. An empty bucket disables the
// preset store.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
}

// ModelConfig holds the startup preset and the default sweep
type ModelConfig struct {
	PresetFile string
	Sweep      transfer.Sweep
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	defaults := transfer.DefaultSweep()

	// Set defaults
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "dev")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_ACCESS_KEY_ID", "")
	viper.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("PRESET_FILE", "")
	viper.SetDefault("SWEEP_MIN", defaults.Min)
	viper.SetDefault("SWEEP_MAX", defaults.Max)
	viper.SetDefault("SWEEP_STEP", defaults.Step)

	env := viper.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	// Try to read .env file for the current environment
	viper.SetConfigName(".env." + env)
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Ignore error - file may not exist
	_ = viper.ReadInConfig()

	// Environment variables override .env file values
	viper.AutomaticEnv()

	for _, key := range []string{
		"DATABASE_URL", "PORT", "ENVIRONMENT", "ALLOWED_ORIGINS",
		"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "S3_BUCKET", "S3_ENDPOINT",
		"PRESET_FILE", "SWEEP_MIN", "SWEEP_MAX", "SWEEP_STEP",
	} {
		_ = viper.BindEnv(key)
	}

	var config Config
	config.Database.URL = viper.GetString("DATABASE_URL")
	config.Server.Port = viper.GetString("PORT")
	config.Server.Env = viper.GetString("ENVIRONMENT")
	config.Server.AllowedOrigins = splitList(viper.GetString("ALLOWED_ORIGINS"))
	config.AWS.Region = viper.GetString("AWS_REGION")
	config.AWS.AccessKeyID = viper.GetString("AWS_ACCESS_KEY_ID")
	config.AWS.SecretAccessKey = viper.GetString("AWS_SECRET_ACCESS_KEY")
	config.AWS.S3Bucket = viper.GetString("S3_BUCKET")
	config.AWS.S3Endpoint = viper.GetString("S3_ENDPOINT")
	config.Model.PresetFile = viper.GetString("PRESET_FILE")
	config.Model.Sweep = transfer.Sweep{
		Min:  viper.GetFloat64("SWEEP_MIN"),
		Max:  viper.GetFloat64("SWEEP_MAX"),
		Step: viper.GetFloat64("SWEEP_STEP"),
	}

	if err := config.Model.Sweep.Validate(); err != nil {
		log.Warn().Err(err).Msg("Invalid default sweep, using 20-200 Hz")
		config.Model.Sweep = defaults
	}

	log.Info().
		Strs("allowed_origins", config.Server.AllowedOrigins).
		Bool("database", config.Database.URL != "").
		Bool("preset_store", config.AWS.S3Bucket != "").
		Msg("Configuration loaded")

	return &config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
