package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DefaultValues(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.LogLevel)
	assert.Equal(t, "50051", cfg.GRPC.Port)
	assert.Equal(t, false, cfg.GRPC.EnableHTTPS)
	assert.Equal(t, "cert.pem", cfg.GRPC.CertFileName)
	assert.Equal(t, "key.pem", cfg.GRPC.PrivateKeyFileName)
	assert.Equal(t, "devsecret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 1024, cfg.Delivery.MailboxSize)
	assert.Zero(t, cfg.KDF.Time)
	assert.Zero(t, cfg.KDF.SaltLen)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*Config)
	}{
		{
			name: "log level override",
			envVars: map[string]string{
				"LOG_LEVEL": "2",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, 2, cfg.LogLevel)
			},
		},
		{
			name: "grpc config override",
			envVars: map[string]string{
				"GRPC_PORT":                  "8080",
				"GRPC_ENABLE_HTTPS":          "true",
				"GRPC_CERT_FILE_NAME":        "custom.pem",
				"GRPC_PRIVATE_KEY_FILE_NAME": "custom-key.pem",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "8080", cfg.GRPC.Port)
				assert.Equal(t, true, cfg.GRPC.EnableHTTPS)
				assert.Equal(t, "custom.pem", cfg.GRPC.CertFileName)
				assert.Equal(t, "custom-key.pem", cfg.GRPC.PrivateKeyFileName)
			},
		},
		{
			name: "kdf config override",
			envVars: map[string]string{
				"KDF_TIME":     "3",
				"KDF_MEM":      "128000",
				"KDF_PAR":      "4",
				"KDF_SALT_LEN": "32",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, uint32(3), cfg.KDF.Time)
				assert.Equal(t, uint32(128000), cfg.KDF.MemKiB)
				assert.Equal(t, uint8(4), cfg.KDF.Par)
				assert.Equal(t, 32, cfg.KDF.SaltLen)
			},
		},
		{
			name: "jwt config override",
			envVars: map[string]string{
				"JWT_SECRET": "customsecret",
				"JWT_TTL":    "90m",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "customsecret", cfg.JWT.Secret)
				assert.Equal(t, 90*time.Minute, cfg.JWT.TTL)
			},
		},
		{
			name: "delivery config override",
			envVars: map[string]string{
				"DELIVERY_MAILBOX_SIZE": "16",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, 16, cfg.Delivery.MailboxSize)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := NewConfig()
			require.NoError(t, err)

			tt.expected(cfg)
		})
	}
}

func TestNewConfig_InvalidValue(t *testing.T) {
	t.Setenv("JWT_TTL", "forever")

	_, err := NewConfig()
	require.Error(t, err)
}
