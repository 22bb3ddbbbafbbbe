package rpc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soden46/hyperlux-token/storage"
	"github.com/soden46/hyperlux-token/token"
)

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Put(key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Get(key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return v, nil
}

func (m *memStore) Delete(key string) error { delete(m.data, key); return nil }
func (m *memStore) Close() error            { return nil }

func call(t *testing.T, srv *httptest.Server, req callRequest) (callResponse, int) {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(srv.URL+"/v1/call", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/call: %v", err)
	}
	defer resp.Body.Close()

	var out callResponse
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusBadRequest {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return out, resp.StatusCode
}

func newTestServer(t *testing.T, store storage.Store) (*httptest.Server, *token.Engine) {
	t.Helper()
	engine := token.NewEngine("owner", nil)
	srv := httptest.NewServer(NewServer(engine, store, 0, 0).Handler())
	t.Cleanup(srv.Close)
	return srv, engine
}

func TestDispatchIssueAndQuery(t *testing.T) {
	srv, engine := newTestServer(t, nil)

	resp, status := call(t, srv, callRequest{Caller: "owner", Op: "issue", To: "alice", Amount: 1000})
	if status != http.StatusOK || !resp.OK {
		t.Fatalf("issue: status=%d resp=%+v", status, resp)
	}
	if got := engine.BalanceOf("alice"); got != 1000 {
		t.Fatalf("alice = %d, want 1000", got)
	}

	resp, status = call(t, srv, callRequest{Caller: "anyone", Op: "balance_of", Account: "alice"})
	if status != http.StatusOK || !resp.OK || resp.Amount == nil || *resp.Amount != 1000 {
		t.Fatalf("balance_of: status=%d resp=%+v", status, resp)
	}

	resp, status = call(t, srv, callRequest{Caller: "anyone", Op: "total_supply"})
	if status != http.StatusOK || resp.Amount == nil || *resp.Amount != 1000 {
		t.Fatalf("total_supply: status=%d resp=%+v", status, resp)
	}
}

func TestDispatchLedgerErrorsAreOKResponses(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, status := call(t, srv, callRequest{Caller: "mallory", Op: "issue", To: "mallory", Amount: 5})
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if resp.OK || resp.Error == "" {
		t.Fatalf("resp = %+v, want ok=false with error", resp)
	}
}

func TestDispatchUnknownOp(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	_, status := call(t, srv, callRequest{Caller: "x", Op: "mint_nft"})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestDispatchPersistsState(t *testing.T) {
	store := newMemStore()
	srv, _ := newTestServer(t, store)

	if resp, _ := call(t, srv, callRequest{Caller: "owner", Op: "issue", To: "alice", Amount: 100}); !resp.OK {
		t.Fatalf("issue failed: %+v", resp)
	}

	restored, err := token.LoadState(store, nil)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got := restored.BalanceOf("alice"); got != 100 {
		t.Fatalf("persisted alice = %d, want 100", got)
	}
}

func TestDispatchPersistsBatchPartialCommit(t *testing.T) {
	store := newMemStore()
	srv, _ := newTestServer(t, store)

	if resp, _ := call(t, srv, callRequest{Caller: "owner", Op: "issue", To: "alice", Amount: 250}); !resp.OK {
		t.Fatal("issue failed")
	}

	resp, _ := call(t, srv, callRequest{
		Caller:     "alice",
		Op:         "batch_transfer",
		Recipients: []token.Account{"bob", "zed"},
		Amounts:    []uint64{100, 100000},
	})
	if resp.OK {
		t.Fatal("batch should have failed on the second element")
	}

	restored, err := token.LoadState(store, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := restored.BalanceOf("bob"); got != 100 {
		t.Fatalf("persisted bob = %d, want 100 (partial commit saved)", got)
	}
	if got := restored.BalanceOf("alice"); got != 150 {
		t.Fatalf("persisted alice = %d, want 150", got)
	}
}

func TestRateLimiter(t *testing.T) {
	engine := token.NewEngine("owner", nil)
	srv := httptest.NewServer(NewServer(engine, nil, 1, 2).Handler())
	t.Cleanup(srv.Close)

	limited := false
	for i := 0; i < 10; i++ {
		_, status := call(t, srv, callRequest{Caller: "spammer", Op: "balance_of", Account: "a"})
		if status == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Fatal("burst of 10 calls was never rate limited")
	}
}
