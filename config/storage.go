package config

import (
	"fmt"
	"strings"
)

// StorageBackend selects where the credential token is persisted.
type StorageBackend string

const (
	// StorageBackendFile keeps the token in a per-user file (default).
	StorageBackendFile StorageBackend = "file"
	// StorageBackendRedis keeps the token in Redis for shared terminals.
	StorageBackendRedis StorageBackend = "redis"
	// StorageBackendMemory keeps the token in process memory only; sessions
	// do not survive a restart. Useful for tests and ephemeral runs.
	StorageBackendMemory StorageBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (b *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "redis", "memory":
		*b = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: file, redis, memory)", v)
	}
}

// RedisConfig describes the Redis endpoint used by the redis token backend.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"127.0.0.1:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
	Key      string `env:"KEY"      envDefault:"jobdesk:token"`
}

// StorageConfig groups durable token storage configuration.
type StorageConfig struct {
	// Backend determines which token store implementation to use.
	Backend StorageBackend `env:"BACKEND" envDefault:"file"`

	// FilePath overrides the token file location (used when Backend=file).
	// Empty means <user config dir>/jobdesk/token.
	FilePath string `env:"FILE_PATH" envDefault:""`

	// Redis configuration (used when Backend=redis).
	Redis RedisConfig `envPrefix:"REDIS_"`
}

// Sanitize applies guardrails to storage configuration values.
func (s *StorageConfig) Sanitize() {
	s.FilePath = strings.TrimSpace(s.FilePath)
	s.Redis.Addr = strings.TrimSpace(s.Redis.Addr)
	if s.Backend == StorageBackendRedis && s.Redis.Addr == "" {
		s.Backend = StorageBackendFile
	}
}
