package token

// EventKind tags a ledger event.
type EventKind string

const (
	EventIssue    EventKind = "issue"
	EventDestroy  EventKind = "destroy"
	EventTransfer EventKind = "transfer"
	EventDelegate EventKind = "delegate"
)

// Event is emitted once per successful state-changing operation.
// Field use by kind:
//
//	issue:    To, Amount
//	destroy:  From, Amount
//	transfer: From, To, Amount (plain and delegated transfers)
//	delegate: From (owner), To (spender), Amount
type Event struct {
	Kind   EventKind `json:"kind"`
	From   Account   `json:"from,omitempty"`
	To     Account   `json:"to,omitempty"`
	Amount uint64    `json:"amount"`
}

// Sink receives events fire-and-forget. The engine calls Emit only after
// the mutation has committed and ignores anything the sink does; a sink
// must not block.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Emit(ev Event) { f(ev) }

// NopSink drops all events.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// MultiSink fans one event out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) Emit(ev Event) {
	for _, s := range m {
		s.Emit(ev)
	}
}
