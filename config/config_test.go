package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	var c AppConfig
	applyDefaults(&c)

	if c.AppPort != "8080" {
		t.Errorf("AppPort = %q, want 8080", c.AppPort)
	}
	if c.DBHost != "127.0.0.1" || c.DBPort != "3306" {
		t.Errorf("db defaults = %q:%q", c.DBHost, c.DBPort)
	}
	if c.RedisPort != 6379 {
		t.Errorf("RedisPort = %d, want 6379", c.RedisPort)
	}
	if len(c.AllowedOrigins) != 1 || c.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", c.AllowedOrigins)
	}
	if c.RateLimitPerMinute != 30 {
		t.Errorf("RateLimitPerMinute = %d, want 30", c.RateLimitPerMinute)
	}
	if c.GinMode != "release" {
		t.Errorf("GinMode = %q, want release", c.GinMode)
	}
	if c.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", c.LogLevel)
	}
}

func TestApplyDefaults_KeepsExistingValues(t *testing.T) {
	c := AppConfig{AppPort: "9000", RedisPort: 6380, RateLimitPerMinute: 5}
	applyDefaults(&c)

	if c.AppPort != "9000" {
		t.Errorf("AppPort = %q, want 9000", c.AppPort)
	}
	if c.RedisPort != 6380 {
		t.Errorf("RedisPort = %d, want 6380", c.RedisPort)
	}
	if c.RateLimitPerMinute != 5 {
		t.Errorf("RateLimitPerMinute = %d, want 5", c.RateLimitPerMinute)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "3000")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("REDIS_PORT", "6390")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "12")
	t.Setenv("LOG_COMPRESS", "true")

	var c AppConfig
	applyDefaults(&c)
	applyEnvOverrides(&c)

	if c.AppPort != "3000" {
		t.Errorf("AppPort = %q, want 3000", c.AppPort)
	}
	if c.JWTSecret != "env-secret" {
		t.Errorf("JWTSecret = %q, want env-secret", c.JWTSecret)
	}
	if c.RedisPort != 6390 {
		t.Errorf("RedisPort = %d, want 6390", c.RedisPort)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(c.AllowedOrigins) != 2 || c.AllowedOrigins[0] != want[0] || c.AllowedOrigins[1] != want[1] {
		t.Errorf("AllowedOrigins = %v, want %v", c.AllowedOrigins, want)
	}
	if c.RateLimitPerMinute != 12 {
		t.Errorf("RateLimitPerMinute = %d, want 12", c.RateLimitPerMinute)
	}
	if !c.LogCompress {
		t.Error("LogCompress = false, want true")
	}
}

func TestApplyEnvOverrides_IgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("REDIS_PORT", "not-a-number")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "-3")

	var c AppConfig
	applyDefaults(&c)
	applyEnvOverrides(&c)

	if c.RedisPort != 6379 {
		t.Errorf("RedisPort = %d, want default 6379", c.RedisPort)
	}
	if c.RateLimitPerMinute != 30 {
		t.Errorf("RateLimitPerMinute = %d, want default 30", c.RateLimitPerMinute)
	}
}

func TestLoadJSONConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"app": {
			"AppPort": "8090",
			"JWTSecret": "file-secret",
			"RateLimitPerMinute": 10,
			"AllowedOrigins": ["https://board.example"]
		},
		"database": {
			"DBHost": "db.internal",
			"DBPort": "3307",
			"DBUser": "board",
			"DBPassword": "pw",
			"DBName": "board"
		},
		"redis": {
			"RedisHost": "cache.internal",
			"RedisPort": 6380
		},
		"log": {
			"Level": "debug",
			"Path": "logs/test.log",
			"MaxSizeMB": 64,
			"Compress": true
		}
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	var c AppConfig
	if err := loadJSONConfig(path, &c); err != nil {
		t.Fatalf("loadJSONConfig: %v", err)
	}

	if c.AppPort != "8090" || c.JWTSecret != "file-secret" {
		t.Errorf("app section not loaded: %+v", c)
	}
	if c.RateLimitPerMinute != 10 {
		t.Errorf("RateLimitPerMinute = %d, want 10", c.RateLimitPerMinute)
	}
	if c.DBHost != "db.internal" || c.DBPort != "3307" || c.DBName != "board" {
		t.Errorf("database section not loaded: %+v", c)
	}
	if c.RedisHost != "cache.internal" || c.RedisPort != 6380 {
		t.Errorf("redis section not loaded: %+v", c)
	}
	if c.LogLevel != "debug" || c.LogMaxSizeMB != 64 || !c.LogCompress {
		t.Errorf("log section not loaded: %+v", c)
	}
}

func TestLoadJSONConfig_MissingFileIsIgnored(t *testing.T) {
	var c AppConfig
	if err := loadJSONConfig(filepath.Join(t.TempDir(), "absent.json"), &c); err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
}

func TestLoadJSONConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	var c AppConfig
	if err := loadJSONConfig(path, &c); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
