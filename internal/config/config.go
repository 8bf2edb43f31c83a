package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds CLI configuration stored at ~/.talawa/config.
type Config struct {
	APIURL   string `yaml:"api_url"`
	APIKey   string `yaml:"api_key"`
	OrgID    string `yaml:"org_id"`
	MemberID string `yaml:"member_id"`
	Username string `yaml:"username,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

// Env is the set of environment overrides. Empty values leave the file
// settings untouched.
type Env struct {
	Home     string `env:"TALAWA_HOME"`
	APIURL   string `env:"TALAWA_API_URL"`
	APIKey   string `env:"TALAWA_API_KEY"`
	OrgID    string `env:"TALAWA_ORG_ID"`
	MemberID string `env:"TALAWA_MEMBER_ID"`
	LogLevel string `env:"TALAWA_LOG_LEVEL"`
}

// ParseEnv reads the TALAWA_* environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// LoadDotEnv loads the given .env files that exist and reports how many were
// read. Variables already present in the environment win.
func LoadDotEnv(files ...string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if info, err := os.Stat(f); err == nil && !info.IsDir() {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return 0, fmt.Errorf("load env files: %w", err)
	}
	return len(existing), nil
}

// Home returns the directory holding the config, cache and log files.
func Home() string {
	if e, err := ParseEnv(); err == nil && e.Home != "" {
		return e.Home
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".talawa")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Home(), "config")
}

// Load reads and parses the config file, then applies environment overrides.
// Returns error if the file is insecure, or if no api key is configured.
// A missing file is tolerated when the environment supplies the api key.
func Load() (*Config, error) {
	e, err := ParseEnv()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := readFile(Path(), &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || e.APIKey == "" {
			return nil, err
		}
	}
	cfg.apply(e)

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("config missing api_key")
	}
	return &cfg, nil
}

func readFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c *Config) apply(e Env) {
	overrides := []struct {
		dst *string
		src string
	}{
		{&c.APIURL, e.APIURL},
		{&c.APIKey, e.APIKey},
		{&c.OrgID, e.OrgID},
		{&c.MemberID, e.MemberID},
		{&c.LogLevel, e.LogLevel},
	}
	for _, o := range overrides {
		if o.src != "" {
			*o.dst = o.src
		}
	}
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
