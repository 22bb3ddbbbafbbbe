package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Store.Engine != "badger" {
		t.Fatalf("default engine = %q", cfg.Store.Engine)
	}
	if cfg.RPC.Listen == "" {
		t.Fatal("default listen address empty")
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
store:
  engine: leveldb
  path: /tmp/ledger-db
rpc:
  listen: ":9000"
  rateRps: 10
network:
  bootstrap:
    - /ip4/10.0.0.1/udp/4001/quic-v1/p2p/QmPeer
ownerWallet: treasury.json
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if cfg.Store.Engine != "leveldb" {
		t.Fatalf("engine = %q, want leveldb", cfg.Store.Engine)
	}
	if cfg.Store.Path != "/tmp/ledger-db" {
		t.Fatalf("path = %q", cfg.Store.Path)
	}
	if cfg.RPC.Listen != ":9000" {
		t.Fatalf("listen = %q", cfg.RPC.Listen)
	}
	if cfg.RPC.RateRPS != 10 {
		t.Fatalf("rateRps = %v", cfg.RPC.RateRPS)
	}
	// unset fields keep defaults
	if cfg.RPC.RateBurst != Default().RPC.RateBurst {
		t.Fatalf("rateBurst = %d, want default", cfg.RPC.RateBurst)
	}
	if len(cfg.Network.Bootstrap) != 1 {
		t.Fatalf("bootstrap = %v", cfg.Network.Bootstrap)
	}
	if cfg.OwnerWallet != "treasury.json" {
		t.Fatalf("ownerWallet = %q", cfg.OwnerWallet)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HLT_STORE_ENGINE", "LevelDB")
	t.Setenv("HLT_RPC_LISTEN", ":7777")
	t.Setenv("HLT_BOOTSTRAP", " /ip4/1.2.3.4/udp/1/quic-v1/p2p/QmA , /ip4/5.6.7.8/udp/2/quic-v1/p2p/QmB ")
	t.Setenv("HLT_RATE_RPS", "2.5")

	cfg := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if cfg.Store.Engine != "leveldb" {
		t.Fatalf("engine = %q, want leveldb", cfg.Store.Engine)
	}
	if cfg.RPC.Listen != ":7777" {
		t.Fatalf("listen = %q", cfg.RPC.Listen)
	}
	if len(cfg.Network.Bootstrap) != 2 {
		t.Fatalf("bootstrap = %v", cfg.Network.Bootstrap)
	}
	if cfg.RPC.RateRPS != 2.5 {
		t.Fatalf("rateRps = %v", cfg.RPC.RateRPS)
	}
}
