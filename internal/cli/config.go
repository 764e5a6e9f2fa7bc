package cli

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds CLI configuration, resolved from the environment with flag
// overrides applied on top
type Config struct {
	ServerURL string `env:"MATCHROOM_SERVER" envDefault:"http://localhost:8080"`
	Token     string `env:"MATCHROOM_TOKEN"`
	TokenFile string `env:"MATCHROOM_TOKEN_FILE"`
	Output    string `env:"MATCHROOM_OUTPUT" envDefault:"text"`
}

// DefaultConfig resolves configuration from the environment
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		cfg = &Config{ServerURL: "http://localhost:8080", Output: "text"}
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = defaultTokenFile()
	}
	return cfg
}

// LoadToken loads the token from file if not already set
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No token file is fine
		}
		return err
	}

	c.Token = string(data)
	return nil
}

// SaveToken saves the token to the token file
func (c *Config) SaveToken(token string) error {
	c.Token = token

	dir := filepath.Dir(c.TokenFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.TokenFile, []byte(token), 0600)
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".matchroom/token"
	}
	return filepath.Join(home, ".matchroom", "token")
}
