package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/cache"
	cfgerrors "github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/pipeline"
)

const (
	configFile        = "config.toml"
	defaultServerAddr = ":8080"
	defaultMongoDB    = appName
)

// Config is the optional TOML config file. Every key may be omitted.
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	max_depth = 10
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	MaxDepth int    `toml:"max_depth"`
}

// Duration is a time.Duration written as a Go duration string ("36h").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend:       cache.BackendFile,
			MongoDatabase: defaultMongoDB,
		},
		Server: ServerConfig{
			Addr:     defaultServerAddr,
			MaxDepth: pipeline.DefaultMaxDepth,
		},
	}
}

// configPath returns the default config file location.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// loadConfig reads the config file named by --config, or the default one.
// A missing default file yields the defaults; a missing explicit file is an error.
func (c *CLI) loadConfig() (*Config, error) {
	path := c.ConfigPath
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return defaultConfig(), nil
		}
		path = p
	}

	cfg, err := readConfig(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// readConfig decodes path over the defaults. Unknown keys are rejected.
func readConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, cfgerrors.Wrap(cfgerrors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, cfgerrors.New(cfgerrors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Server.MaxDepth < 0 {
		return nil, cfgerrors.New(cfgerrors.ErrCodeInvalidInput, "config %s: server.max_depth must be non-negative", path)
	}
	return cfg, nil
}

// cacheConfig resolves the cache backend settings, placing the file cache
// under the XDG cache directory unless a dir is configured.
func (cfg *Config) cacheConfig() (cache.Config, error) {
	cc := cache.Config{
		Backend:       cfg.Cache.Backend,
		Dir:           cfg.Cache.Dir,
		RedisAddr:     cfg.Cache.RedisAddr,
		MongoURI:      cfg.Cache.MongoURI,
		MongoDatabase: cfg.Cache.MongoDatabase,
	}
	if cc.Dir == "" && (cc.Backend == "" || cc.Backend == cache.BackendFile) {
		dir, err := cacheDir()
		if err != nil {
			return cc, err
		}
		cc.Dir = dir
	}
	return cc, nil
}
