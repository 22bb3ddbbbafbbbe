package network

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// Peer registry, persisted to a JSON file so restarts keep their view of
// the network.

type PeerInfo struct {
	ID   string `json:"id"`
	Addr string `json:"addr,omitempty"`
	Seen int64  `json:"seen"`
}

var (
	regMu     sync.RWMutex
	peers     = map[string]PeerInfo{} // by ID
	peersFile = "peers.json"
)

// SetPeersFile overrides where the registry persists. Call before Start.
func SetPeersFile(path string) {
	regMu.Lock()
	peersFile = path
	regMu.Unlock()
}

func LoadPeers() {
	regMu.RLock()
	path := peersFile
	regMu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var list []PeerInfo
	if json.Unmarshal(data, &list) == nil {
		regMu.Lock()
		defer regMu.Unlock()
		for _, p := range list {
			peers[p.ID] = p
		}
	}
}

func savePeers() {
	regMu.RLock()
	defer regMu.RUnlock()
	list := make([]PeerInfo, 0, len(peers))
	for _, p := range peers {
		list = append(list, p)
	}
	b, _ := json.MarshalIndent(list, "", "  ")
	_ = os.WriteFile(peersFile, b, 0644)
}

func RegisterPeer(id, addr string) {
	regMu.Lock()
	peers[id] = PeerInfo{ID: id, Addr: addr, Seen: time.Now().Unix()}
	regMu.Unlock()
	savePeers()
}

func ListPeers() []PeerInfo {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]PeerInfo, 0, len(peers))
	for _, p := range peers {
		out = append(out, p)
	}
	return out
}
