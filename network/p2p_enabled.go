//go:build p2p

package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	libp2p "github.com/libp2p/go-libp2p"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	host "github.com/libp2p/go-libp2p/core/host"
	peer "github.com/libp2p/go-libp2p/core/peer"
	quic "github.com/libp2p/go-libp2p/p2p/transport/quic"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/soden46/hyperlux-token/token"
)

var (
	Host        host.Host
	PubSub      *pubsub.PubSub
	TopicEvents *pubsub.Topic

	subEvents *pubsub.Subscription
)

const topicEvents = "hyperluxtoken/events/v1"

func StartP2P(bootstrap []string) error {
	h, err := libp2p.New(
		libp2p.Transport(quic.NewTransport),
	)
	if err != nil {
		return err
	}
	Host = h

	for _, a := range h.Addrs() {
		addr := fmt.Sprintf("%s/p2p/%s", a.String(), h.ID().String())
		RegisterPeer(h.ID().String(), addr)
		fmt.Println("📡 Listening on", addr)
	}

	for _, bs := range bootstrap {
		_ = connectMultiaddr(h, bs)
	}

	ps, err := pubsub.NewGossipSub(context.Background(), h)
	if err != nil {
		return err
	}
	PubSub = ps

	if TopicEvents, err = ps.Join(topicEvents); err != nil {
		return err
	}
	if subEvents, err = TopicEvents.Subscribe(); err != nil {
		return err
	}
	return nil
}

func connectMultiaddr(h host.Host, addr string) error {
	maddr, err := ma.NewMultiaddr(addr)
	if err != nil {
		return err
	}
	info, err := peer.AddrInfoFromP2pAddr(maddr)
	if err != nil {
		return err
	}
	if err := h.Connect(context.Background(), *info); err != nil {
		return err
	}
	fmt.Println("🤝 Connected to", addr)
	return nil
}

// BroadcastEvent publishes one ledger event on the events topic.
func BroadcastEvent(ev token.Event) error {
	if Host == nil || PubSub == nil || TopicEvents == nil {
		return errors.New("p2p not ready")
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return TopicEvents.Publish(context.Background(), data)
}

// StartGossip consumes events published by peers and hands them to the
// handler. Malformed payloads are skipped.
func StartGossip(handler EventHandler) {
	if subEvents == nil {
		fmt.Println("🗣️ Gossip (local-only): P2P not active")
		return
	}
	fmt.Println("🗣️ Gossip protocol started")

	go func() {
		for {
			msg, err := subEvents.Next(context.Background())
			if err != nil {
				return
			}
			if Host != nil && msg.ReceivedFrom == Host.ID() {
				continue
			}
			var ev token.Event
			if err := json.Unmarshal(msg.Data, &ev); err != nil {
				continue
			}
			if handler != nil {
				handler(ev)
			}
		}
	}()
}
