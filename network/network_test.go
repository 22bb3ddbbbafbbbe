package network

import (
	"path/filepath"
	"testing"

	"github.com/soden46/hyperlux-token/token"
)

func TestSinkIsFireAndForget(t *testing.T) {
	// without the p2p tag broadcasting is a no-op; the sink must still
	// accept events silently
	sink := Sink()
	sink.Emit(token.Event{Kind: token.EventTransfer, From: "a", To: "b", Amount: 1})
}

func TestPeerRegistryPersists(t *testing.T) {
	SetPeersFile(filepath.Join(t.TempDir(), "peers.json"))
	t.Cleanup(func() { SetPeersFile("peers.json") })

	RegisterPeer("node-1", "/ip4/127.0.0.1/udp/4001/quic-v1/p2p/QmNode1")

	// wipe the in-memory registry, then reload from disk
	regMu.Lock()
	peers = map[string]PeerInfo{}
	regMu.Unlock()

	LoadPeers()
	list := ListPeers()
	if len(list) != 1 || list[0].ID != "node-1" {
		t.Fatalf("ListPeers = %+v", list)
	}
}
