package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/cache"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadConfig(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "36h"

[server]
addr = "127.0.0.1:9000"
max_depth = 12
`)

	cfg, err := readConfig(path)
	if err != nil {
		t.Fatalf("readConfig() error: %v", err)
	}
	if cfg.Cache.Backend != cache.BackendRedis || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != 36*time.Hour {
		t.Errorf("ttl = %v, want 36h", cfg.Cache.TTL.Duration)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.MaxDepth != 12 {
		t.Errorf("server = %+v", cfg.Server)
	}
	// unset keys keep their defaults
	if cfg.Cache.MongoDatabase != defaultMongoDB {
		t.Errorf("mongo_database = %q, want default %q", cfg.Cache.MongoDatabase, defaultMongoDB)
	}
}

func TestReadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[cache]\nbackend = \"file\"\ncolour = \"blue\"\n"},
		{"bad duration", "[cache]\nttl = \"soon\"\n"},
		{"negative duration", "[cache]\nttl = \"-1h\"\n"},
		{"negative max depth", "[server]\nmax_depth = -1\n"},
		{"malformed", "[cache\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readConfig(writeConfig(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("readConfig() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != defaultServerAddr || cfg.Server.MaxDepth != pipeline.DefaultMaxDepth {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.ConfigPath = filepath.Join(t.TempDir(), "missing.toml")

	if _, err := c.loadConfig(); err == nil {
		t.Error("loadConfig() with a missing explicit file should fail")
	}
}

func TestLoadConfigFromXDG(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Cache.Backend != cache.BackendNone {
		t.Errorf("backend = %q, want none", cfg.Cache.Backend)
	}
}

func TestCacheConfig(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	cfg := defaultConfig()
	cc, err := cfg.cacheConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cc.Dir != filepath.Join(cacheHome, appName) {
		t.Errorf("dir = %q, want XDG cache dir", cc.Dir)
	}

	cfg.Cache.Dir = "/srv/cfggen"
	if cc, _ = cfg.cacheConfig(); cc.Dir != "/srv/cfggen" {
		t.Errorf("configured dir = %q, want /srv/cfggen", cc.Dir)
	}

	cfg = defaultConfig()
	cfg.Cache.Backend = cache.BackendRedis
	if cc, _ = cfg.cacheConfig(); cc.Dir != "" {
		t.Errorf("redis backend should not get a dir, got %q", cc.Dir)
	}
}
