package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	var c Config
	c.Env = "dev"
	c.Log.Format = "text"
	c.HTTP.Addr = ":8080"
	c.Postgres.URL = "postgres://localhost:5432/quiz"
	c.Redis.Addr = "localhost:6379"
	c.Auth.Secret = "dev-secret-change-me"
	c.Game.FastestFingerWindow = 10 * time.Second
	c.Game.AskTheAudienceWindow = 15 * time.Second
	return c
}

func TestValidateOK(t *testing.T) {
	c := validConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty http addr", func(c *Config) { c.HTTP.Addr = "" }, "HTTP addr"},
		{"empty database url", func(c *Config) { c.Postgres.URL = "" }, "DATABASE_URL"},
		{"empty redis addr", func(c *Config) { c.Redis.Addr = "" }, "REDIS_ADDR"},
		{"empty jwt secret", func(c *Config) { c.Auth.Secret = "" }, "JWT_SECRET"},
		{"default secret in prod", func(c *Config) { c.Env = "prod" }, "default JWT_SECRET"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "LOG_FORMAT"},
		{"zero fastest finger window", func(c *Config) { c.Game.FastestFingerWindow = 0 }, "FASTEST_FINGER_WINDOW"},
		{"negative audience window", func(c *Config) { c.Game.AskTheAudienceWindow = -time.Second }, "ASK_THE_AUDIENCE_WINDOW"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromEnvDefaults(t *testing.T) {
	c, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if c.Env != "dev" {
		t.Fatalf("Env = %q, want dev", c.Env)
	}
	if c.HTTP.Addr == "" {
		t.Fatal("HTTP addr default is empty")
	}
	if c.Game.HostActionDelay <= 0 {
		t.Fatal("host action delay default is not positive")
	}
	if c.Auth.TokenTTL <= 0 {
		t.Fatal("token TTL default is not positive")
	}
}
