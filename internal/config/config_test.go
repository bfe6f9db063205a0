package config

import (
	"os"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	os.Unsetenv("STORE_BACKEND")
	os.Unsetenv("STORE_PATH")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Store.Backend != "file" {
		t.Fatalf("default store backend = %q, want %q", cfg.Store.Backend, "file")
	}
	if cfg.Store.Path != "db.json" {
		t.Fatalf("default store path = %q, want %q", cfg.Store.Path, "db.json")
	}
	if cfg.Server.Port == "" || cfg.Server.Host == "" {
		t.Fatalf("unexpected empty server config: %+v", cfg.Server)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	os.Setenv("STORE_BACKEND", "mongo")
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	os.Setenv("MONGODB_DATABASE", "rosterd_test")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	defer func() {
		os.Unsetenv("STORE_BACKEND")
		os.Unsetenv("MONGODB_URI")
		os.Unsetenv("MONGODB_DATABASE")
		os.Unsetenv("REDIS_HOST")
		os.Unsetenv("REDIS_PORT")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Store.Backend != "mongo" {
		t.Fatalf("store backend = %q, want %q", cfg.Store.Backend, "mongo")
	}
	if cfg.MongoDB.URI == "" || cfg.Redis.Host == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
}
