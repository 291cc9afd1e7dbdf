package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration loaded from file.
type Config struct {
	RPCURL            string        `yaml:"rpc_url"`
	ListenAddr        string        `yaml:"listen_addr"`
	GraceTimeout      time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`

	RPCCallTimeout     time.Duration `yaml:"rpc_call_timeout"`
	PoolSize           int           `yaml:"pool_size"`
	PoolAcquireTimeout time.Duration `yaml:"pool_acquire_timeout"`

	// DisableStatic routes simple transfers to the node instead of the
	// local intrinsic-cost answer.
	DisableStatic bool `yaml:"disable_static"`
}

// Load reads the config from a YAML file path.
// Fails fatally if config is invalid or file is missing.
func Load(path string) Config {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open config file: os.Open: %v", err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			log.Printf("failed to close config file: f.Close: %v", err)
		}
	}(f)

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to parse config file: decoder.Decode: %v", err)
	}

	// Fallbacks
	const (
		defaultTimeout        = 5 * time.Second
		defaultRPCCallTimeout = 10 * time.Second
		defaultPoolSize       = 10
		defaultRPCURL         = "https://ethereum-rpc.publicnode.com"
	)
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":3000"
	}
	if cfg.GraceTimeout == 0 {
		cfg.GraceTimeout = defaultTimeout
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultTimeout
	}
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = defaultTimeout
	}
	if cfg.RPCCallTimeout == 0 {
		cfg.RPCCallTimeout = defaultRPCCallTimeout
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = defaultPoolSize
	}
	if cfg.PoolAcquireTimeout == 0 {
		cfg.PoolAcquireTimeout = defaultTimeout
	}
	if cfg.RPCURL == "" {
		cfg.RPCURL = defaultRPCURL
	}

	return cfg
}
