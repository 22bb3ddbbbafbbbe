// Package rpc is the HTTP dispatch layer: it routes JSON calls into the
// token engine. Caller identity is taken from the request body verbatim;
// authenticating it is the front end's job, not the ledger's.
package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/soden46/hyperlux-token/metrics"
	"github.com/soden46/hyperlux-token/storage"
	"github.com/soden46/hyperlux-token/token"
)

type Server struct {
	engine  *token.Engine
	store   storage.Store // nil disables persistence
	limiter *callerLimiter
	mux     *http.ServeMux
}

// NewServer wires the dispatch endpoints. When store is non-nil the
// full state is persisted after every successful mutating call.
func NewServer(engine *token.Engine, store storage.Store, rps float64, burst int) *Server {
	s := &Server{
		engine:  engine,
		store:   store,
		limiter: newCallerLimiter(rps, burst),
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("/v1/call", s.handleCall)
	s.mux.Handle("/metrics", metrics.Handler())
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) ListenAndServe(addr string) error {
	fmt.Println("🌐 Dispatch server listening on", addr)
	return http.ListenAndServe(addr, s.mux)
}

// callRequest carries one operation. Unused fields are ignored per op.
type callRequest struct {
	Caller token.Account `json:"caller"`
	Op     string        `json:"op"`

	To      token.Account `json:"to,omitempty"`
	From    token.Account `json:"from,omitempty"`
	Owner   token.Account `json:"owner,omitempty"`
	Spender token.Account `json:"spender,omitempty"`
	Account token.Account `json:"account,omitempty"`
	Amount  uint64        `json:"amount,omitempty"`
	State   bool          `json:"state,omitempty"`

	Recipients []token.Account `json:"recipients,omitempty"`
	Amounts    []uint64        `json:"amounts,omitempty"`
}

type callResponse struct {
	OK     bool    `json:"ok"`
	Error  string  `json:"error,omitempty"`
	Amount *uint64 `json:"amount,omitempty"` // balance_of / allowance / total_supply
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req callRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if !s.limiter.allow(string(req.Caller), time.Now()) {
		metrics.RateLimitedTotal.Inc()
		http.Error(w, "rate limited", http.StatusTooManyRequests)
		return
	}

	resp, status := s.dispatch(req)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) dispatch(req callRequest) (callResponse, int) {
	var err error

	switch req.Op {
	case "issue":
		err = s.engine.Issue(req.Caller, req.To, req.Amount)
	case "destroy":
		err = s.engine.Destroy(req.Caller, req.Amount)
	case "transfer":
		err = s.engine.Transfer(req.Caller, req.To, req.Amount)
	case "delegate":
		err = s.engine.Delegate(req.Caller, req.Spender, req.Amount)
	case "delegated_transfer":
		err = s.engine.DelegatedTransfer(req.Caller, req.From, req.To, req.Amount)
	case "set_paused":
		err = s.engine.SetPaused(req.Caller, req.State)
	case "set_blacklist":
		err = s.engine.SetBlacklist(req.Caller, req.Account, req.State)
	case "batch_transfer":
		err = s.engine.BatchTransfer(req.Caller, req.Recipients, req.Amounts)
	case "balance_of":
		bal := s.engine.BalanceOf(req.Account)
		metrics.ObserveOp(req.Op, nil)
		return callResponse{OK: true, Amount: &bal}, http.StatusOK
	case "allowance":
		amt := s.engine.Allowance(req.Owner, req.Spender)
		metrics.ObserveOp(req.Op, nil)
		return callResponse{OK: true, Amount: &amt}, http.StatusOK
	case "total_supply":
		sup := s.engine.TotalSupply()
		metrics.ObserveOp(req.Op, nil)
		return callResponse{OK: true, Amount: &sup}, http.StatusOK
	default:
		return callResponse{OK: false, Error: "unknown op: " + req.Op}, http.StatusBadRequest
	}

	metrics.ObserveOp(req.Op, err)
	if err != nil {
		// Batch partial commits still changed state; persist them.
		if s.store != nil && req.Op == "batch_transfer" && !errors.Is(err, token.ErrLengthMismatch) {
			if perr := token.SaveState(s.store, s.engine); perr != nil {
				return callResponse{OK: false, Error: perr.Error()}, http.StatusInternalServerError
			}
		}
		return callResponse{OK: false, Error: err.Error()}, http.StatusOK
	}
	if s.store != nil {
		if perr := token.SaveState(s.store, s.engine); perr != nil {
			return callResponse{OK: false, Error: perr.Error()}, http.StatusInternalServerError
		}
	}
	return callResponse{OK: true}, http.StatusOK
}
