// Package config loads node configuration from YAML with environment
// overrides (HLT_*).
package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Store   StoreConfig   `yaml:"store"`
	RPC     RPCConfig     `yaml:"rpc"`
	Network NetworkConfig `yaml:"network"`

	// OwnerWallet is the wallet file whose address acts as caller for
	// owner commands when none is given explicitly.
	OwnerWallet string `yaml:"ownerWallet"`
}

type StoreConfig struct {
	Engine string `yaml:"engine"` // badger | leveldb
	Path   string `yaml:"path"`
}

type RPCConfig struct {
	Listen    string  `yaml:"listen"`
	RateRPS   float64 `yaml:"rateRps"`
	RateBurst int     `yaml:"rateBurst"`
}

type NetworkConfig struct {
	Bootstrap []string `yaml:"bootstrap"`
	PeersFile string   `yaml:"peersFile"`
}

func Default() Config {
	return Config{
		Store: StoreConfig{
			Engine: "badger",
			Path:   "hyperlux_token_db",
		},
		RPC: RPCConfig{
			Listen:    ":8640",
			RateRPS:   50,
			RateBurst: 100,
		},
		Network: NetworkConfig{
			PeersFile: "peers.json",
		},
		OwnerWallet: "owner.json",
	}
}

// Load reads the first config file that parses, falling back to
// defaults, then applies env overrides on top.
func Load(configPath string) Config {
	cfg := Default()

	candidates := make([]string, 0, 2)
	if configPath != "" {
		candidates = append(candidates, configPath)
	} else {
		candidates = append(candidates, "config.yaml", "configs/config.yaml")
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var parsed Config
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			continue
		}
		merge(&cfg, parsed)
		break
	}

	applyEnvOverrides(&cfg)
	return cfg
}

func merge(dst *Config, src Config) {
	if src.Store.Engine != "" {
		dst.Store.Engine = src.Store.Engine
	}
	if src.Store.Path != "" {
		dst.Store.Path = src.Store.Path
	}
	if src.RPC.Listen != "" {
		dst.RPC.Listen = src.RPC.Listen
	}
	if src.RPC.RateRPS != 0 {
		dst.RPC.RateRPS = src.RPC.RateRPS
	}
	if src.RPC.RateBurst != 0 {
		dst.RPC.RateBurst = src.RPC.RateBurst
	}
	if len(src.Network.Bootstrap) > 0 {
		dst.Network.Bootstrap = src.Network.Bootstrap
	}
	if src.Network.PeersFile != "" {
		dst.Network.PeersFile = src.Network.PeersFile
	}
	if src.OwnerWallet != "" {
		dst.OwnerWallet = src.OwnerWallet
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HLT_STORE_ENGINE"); v != "" {
		cfg.Store.Engine = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("HLT_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("HLT_RPC_LISTEN"); v != "" {
		cfg.RPC.Listen = v
	}
	if v := os.Getenv("HLT_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RPC.RateRPS = f
		}
	}
	if v := os.Getenv("HLT_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RPC.RateBurst = n
		}
	}
	if v := os.Getenv("HLT_BOOTSTRAP"); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, s := range parts {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			cfg.Network.Bootstrap = out
		}
	}
	if v := os.Getenv("HLT_OWNER_WALLET"); v != "" {
		cfg.OwnerWallet = v
	}
}
