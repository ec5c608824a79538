// Package secretsource loads the shared token-signing secret the gateway
// verifies against. The secret must be byte-identical to the one held by
// the token-issuing account service.
package secretsource

import (
	"bytes"
	"fmt"
	"os"
)

// Config selects where the secret comes from. When several sources are set,
// file wins over env, env over the inline value; inline values are only
// meant for development configs.
type Config struct {
	Value string `mapstructure:"value"` // inline secret (dev only)
	Env   string `mapstructure:"env"`   // name of an environment variable holding the secret
	File  string `mapstructure:"file"`  // path to a file holding the secret
}

// Load resolves the secret from the configured sources. A completely empty
// configuration is not an error: the gateway starts without a secret and
// answers every request fail-closed with 503 until one is provided.
func Load(cfg Config) ([]byte, error) {
	if cfg.File != "" {
		data, err := os.ReadFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("read secret file: %w", err)
		}
		return bytes.TrimSpace(data), nil
	}

	if cfg.Env != "" {
		if v := os.Getenv(cfg.Env); v != "" {
			return []byte(v), nil
		}
		return nil, nil
	}

	if cfg.Value != "" {
		return []byte(cfg.Value), nil
	}

	return nil, nil
}
