// Package network broadcasts ledger events over gossipsub. Real P2P is
// behind the p2p build tag; without it every broadcast is a local no-op,
// so the node runs standalone by default.
package network

import (
	"fmt"

	"github.com/soden46/hyperlux-token/token"
)

// EventHandler receives events gossiped by remote nodes.
type EventHandler func(token.Event)

// Start brings up P2P (if compiled in) and the gossip loop. handler may
// be nil when the node only publishes.
func Start(bootstrap []string, handler EventHandler) error {
	if err := StartP2P(bootstrap); err != nil {
		return err
	}
	StartGossip(handler)
	return nil
}

// Sink adapts the broadcaster to token.Sink. Publish failures are
// dropped: event delivery is fire-and-forget by contract.
func Sink() token.Sink {
	return token.SinkFunc(func(ev token.Event) {
		_ = BroadcastEvent(ev)
	})
}

// LogSink prints events to stdout, for CLI runs.
func LogSink() token.Sink {
	return token.SinkFunc(func(ev token.Event) {
		switch ev.Kind {
		case token.EventIssue:
			fmt.Printf("🪙 issued %d to %s\n", ev.Amount, ev.To)
		case token.EventDestroy:
			fmt.Printf("🔥 destroyed %d from %s\n", ev.Amount, ev.From)
		case token.EventTransfer:
			fmt.Printf("💸 transfer %d: %s -> %s\n", ev.Amount, ev.From, ev.To)
		case token.EventDelegate:
			fmt.Printf("🤝 %s delegated %d to %s\n", ev.From, ev.Amount, ev.To)
		}
	})
}
