package server

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/pipeline"
)

const (
	defaultAddr            = ":8080"
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxBodyBytes    = 1 << 20
)

// Option configures a [Server].
type Option func(Config) Config

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(cfg Config) Config {
		if addr != "" {
			cfg.addr = addr
		}
		return cfg
	}
}

// WithMaxDepth caps the depth a request may ask for. Zero removes the cap.
func WithMaxDepth(depth int) Option {
	return func(cfg Config) Config {
		cfg.maxDepth = depth
		return cfg
	}
}

// WithGrammarDir serves the grammar documents under dir by name.
func WithGrammarDir(dir string) Option {
	return func(cfg Config) Config {
		cfg.grammarDir = dir
		return cfg
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *log.Logger) Option {
	return func(cfg Config) Config {
		if logger != nil {
			cfg.logger = logger
		}
		return cfg
	}
}

// WithShutdownTimeout bounds how long Run waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(cfg Config) Config {
		if d > 0 {
			cfg.shutdownTimeout = d
		}
		return cfg
	}
}

// Config holds the server settings.
type Config struct {
	addr            string
	maxDepth        int
	grammarDir      string
	maxBodyBytes    int64
	shutdownTimeout time.Duration
	logger          *log.Logger
}

// NewConfig applies opts over the defaults.
func NewConfig(opts ...Option) *Config {
	cfg := Config{
		addr:            defaultAddr,
		maxDepth:        pipeline.DefaultMaxDepth,
		maxBodyBytes:    defaultMaxBodyBytes,
		shutdownTimeout: defaultShutdownTimeout,
		logger:          log.Default(),
	}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	return &cfg
}

// Addr returns the listen address.
func (cfg *Config) Addr() string {
	return cfg.addr
}
