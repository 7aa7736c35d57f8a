package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestConfig_DefaultPriceBounds(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Research.MinPrice != 10 {
		t.Errorf("Research.MinPrice default = %v, want 10", cfg.Research.MinPrice)
	}
	if cfg.Research.MaxPrice != 500000 {
		t.Errorf("Research.MaxPrice default = %v, want 500000", cfg.Research.MaxPrice)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("STOCKPULSE_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_IndianAPIKeyEnvOverride(t *testing.T) {
	t.Setenv("INDIAN_API_KEY", "from-env")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Clients.IndianAPI.APIKey != "from-env" {
		t.Errorf("IndianAPI.APIKey = %q, want %q", cfg.Clients.IndianAPI.APIKey, "from-env")
	}
}

func TestConfig_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stockpulse.toml")
	content := `
environment = "production"

[server]
port = 9999

[clients.indianapi]
api_key = "file-key"
timeout = "5s"

[research]
min_price = 1
max_price = 1000000
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Clients.IndianAPI.APIKey != "file-key" {
		t.Errorf("IndianAPI.APIKey = %q, want file-key", cfg.Clients.IndianAPI.APIKey)
	}
	if cfg.Clients.IndianAPI.GetTimeout() != 5*time.Second {
		t.Errorf("IndianAPI timeout = %v, want 5s", cfg.Clients.IndianAPI.GetTimeout())
	}
	if cfg.Research.MinPrice != 1 {
		t.Errorf("Research.MinPrice = %v, want 1", cfg.Research.MinPrice)
	}
}

func TestConfig_LoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("does/not/exist.toml")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestConfig_TimeoutFallback(t *testing.T) {
	c := IndianAPIConfig{Timeout: "not-a-duration"}
	if c.GetTimeout() != 10*time.Second {
		t.Errorf("GetTimeout = %v, want 10s fallback", c.GetTimeout())
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"prod", true},
		{"PROD ", true},
		{"development", false},
		{"", false},
	}
	for _, tt := range tests {
		cfg := &Config{Environment: tt.env}
		if got := cfg.IsProduction(); got != tt.want {
			t.Errorf("IsProduction(%q) = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestResolveAPIKey_EnvWins(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	key, err := ResolveAPIKey("gemini_api_key", "fallback-key")
	if err != nil {
		t.Fatalf("ResolveAPIKey failed: %v", err)
	}
	if key != "env-key" {
		t.Errorf("key = %q, want env-key", key)
	}
}

func TestResolveAPIKey_PlaceholderRejected(t *testing.T) {
	_, err := ResolveAPIKey("indian_api_key", "your_indian_api_key_here")
	if err == nil {
		t.Error("expected error for placeholder fallback")
	}
}
