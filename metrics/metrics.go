// Package metrics exposes Prometheus counters for the ledger node.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soden46/hyperlux-token/token"
)

var (
	OpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hyperlux_token_ops_total",
		Help: "Ledger operations by op and outcome.",
	}, []string{"op", "outcome"})

	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hyperlux_token_events_total",
		Help: "Ledger events emitted by kind.",
	}, []string{"kind"})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hyperlux_token_rate_limited_total",
		Help: "Dispatch calls rejected by the per-caller rate limiter.",
	})
)

// ObserveOp counts one operation under its outcome label.
func ObserveOp(op string, err error) {
	OpsTotal.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, token.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, token.ErrPaused):
		return "paused"
	case errors.Is(err, token.ErrBlacklisted):
		return "blacklisted"
	case errors.Is(err, token.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, token.ErrAllowanceExceeded):
		return "allowance_exceeded"
	case errors.Is(err, token.ErrLengthMismatch):
		return "length_mismatch"
	default:
		return "error"
	}
}

// Sink counts events by kind; chain it in front of other sinks.
type Sink struct{}

func (Sink) Emit(ev token.Event) {
	EventsTotal.WithLabelValues(string(ev.Kind)).Inc()
}

// Handler serves the default registry, for mounting at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
