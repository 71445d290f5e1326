package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel int      `env:"LOG_LEVEL" envDefault:"0"`
	GRPC     GRPC     `envPrefix:"GRPC_"`
	KDF      KDF      `envPrefix:"KDF_"`
	JWT      JWT      `envPrefix:"JWT_"`
	Delivery Delivery `envPrefix:"DELIVERY_"`
}

// KDF contains Argon2id parameters for password hashing.
type KDF struct {
	Time    uint32 `env:"TIME"`
	MemKiB  uint32 `env:"MEM"`
	Par     uint8  `env:"PAR"`
	SaltLen int    `env:"SALT_LEN"`
}

// GRPC contains gRPC server parameters.
type GRPC struct {
	Port               string `env:"PORT" envDefault:"50051"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
}

// JWT contains session token parameters.
type JWT struct {
	Secret string        `env:"SECRET" envDefault:"devsecret"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

// Delivery contains live delivery parameters.
type Delivery struct {
	MailboxSize int `env:"MAILBOX_SIZE" envDefault:"1024"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
