//go:build !p2p

package network

import (
	"errors"
	"fmt"

	"github.com/soden46/hyperlux-token/token"
)

// Stub: no-op P2P so local builds and tests run without libp2p.

var ErrP2PDisabled = errors.New("p2p disabled")

func StartP2P(_ []string) error { return nil }

func BroadcastEvent(_ token.Event) error { return nil }

func StartGossip(_ EventHandler) {
	fmt.Println("🗣️ Gossip (local-only): P2P not active")
}
