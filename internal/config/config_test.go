package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:        tt.env,
				DBSSLMode:  tt.sslMode,
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "secure-password",
				Port:       "8080",
			}

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateJWTSecret(t *testing.T) {
	c := &Config{
		Env:        "production",
		DBSSLMode:  "require",
		JWTSecret:  "your-secret-key-change-in-production",
		DBPassword: "secure-password",
		Port:       "8080",
	}
	assert.Error(t, c.Validate())

	c.JWTSecret = "short"
	assert.Error(t, c.Validate())

	c.JWTSecret = "secure-secret-at-least-32-chars-long"
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_SSLModeNormalization(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_SSLMODE")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotEmpty(t, c.Port)
	assert.NotEmpty(t, c.DBHost)
	assert.NotEmpty(t, c.RedisURL)
}
