// Package testutils provides a scripted JSON-RPC node for tests. Handlers are
// registered per method and every request is recorded, so tests can assert
// both responses and the exact traffic a code path produced.
package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RPCError is the error member of a JSON-RPC response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// HandlerFunc answers a single JSON-RPC request. Return a non-nil *RPCError
// to produce an error response.
type HandlerFunc func(params []json.RawMessage) (any, *RPCError)

// Request is one recorded JSON-RPC request.
type Request struct {
	Method string
	Params []json.RawMessage
}

// RPCNode is an httptest-backed JSON-RPC server with scripted per-method
// handlers. Unscripted methods answer with a standard "method not found"
// error. Safe for concurrent use.
type RPCNode struct {
	srv *httptest.Server

	mu       sync.Mutex
	handlers map[string]HandlerFunc
	requests []Request
}

// NewRPCNode starts a node that already answers eth_blockNumber (for health
// checks) and eth_chainId. The server is closed when the test finishes.
func NewRPCNode(t *testing.T) *RPCNode {
	t.Helper()

	n := &RPCNode{handlers: make(map[string]HandlerFunc)}
	n.Respond("eth_blockNumber", "0x1")
	n.Respond("eth_chainId", "0xa")

	n.srv = httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(n.srv.Close)

	return n
}

// URL returns the HTTP endpoint to dial.
func (n *RPCNode) URL() string {
	return n.srv.URL
}

// Close shuts the server down before test cleanup. Subsequent requests fail
// at the transport level.
func (n *RPCNode) Close() {
	n.srv.Close()
}

// Handle scripts a method with a dynamic handler.
func (n *RPCNode) Handle(method string, fn HandlerFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[method] = fn
}

// Respond scripts a method with a fixed result.
func (n *RPCNode) Respond(method string, result any) {
	n.Handle(method, func([]json.RawMessage) (any, *RPCError) {
		return result, nil
	})
}

// RespondError scripts a method with a fixed JSON-RPC error.
func (n *RPCNode) RespondError(method string, code int, message string, data any) {
	n.Handle(method, func([]json.RawMessage) (any, *RPCError) {
		return nil, &RPCError{Code: code, Message: message, Data: data}
	})
}

// Requests returns the recorded requests for a method, in arrival order.
func (n *RPCNode) Requests(method string) []Request {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []Request
	for _, req := range n.requests {
		if req.Method == method {
			out = append(out, req)
		}
	}

	return out
}

// RequestCount returns how many requests arrived for a method.
func (n *RPCNode) RequestCount(method string) int {
	return len(n.Requests(method))
}

// TotalRequests returns how many requests arrived overall.
func (n *RPCNode) TotalRequests() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.requests)
}

func (n *RPCNode) serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	type rpcReq struct {
		JSONRPC string            `json:"jsonrpc"`
		Method  string            `json:"method"`
		Params  []json.RawMessage `json:"params"`
		ID      json.RawMessage   `json:"id"`
	}
	var req rpcReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      nil,
			"error":   map[string]any{"code": -32700, "message": "parse error"},
		})

		return
	}

	n.mu.Lock()
	n.requests = append(n.requests, Request{Method: req.Method, Params: req.Params})
	handler, ok := n.handlers[req.Method]
	n.mu.Unlock()

	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error":   map[string]any{"code": -32601, "message": "method not found"},
		})

		return
	}

	result, rpcErr := handler(req.Params)
	if rpcErr != nil {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error":   rpcErr,
		})

		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"id":      req.ID,
		"result":  result,
	})
}

// RevertError builds the JSON-RPC error an execution client reports for a
// reverted eth_call, with the revert payload attached as 0x-prefixed hex in
// the data field.
func RevertError(dataHex string) *RPCError {
	return &RPCError{Code: -32000, Message: "execution reverted", Data: dataHex}
}
