// Package node implements the JSON-RPC client for the remote wallet node.
// Requests authenticate with the fixed credentials configured at startup and
// are bounded by the configured timeout; there are no retries — callers
// decide whether to surface a failure or translate it.
package node

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/btcsuite/btcd/btcjson"

	"github.com/hobbleabbas/bapu-gateway/internal/common"
)

// Caller is the node surface the services depend on. Satisfied by *Client
// and by test fakes.
type Caller interface {
	// Call issues method against the unscoped node endpoint.
	Call(ctx context.Context, method string, params ...any) (json.RawMessage, error)

	// CallWallet issues method against a specific wallet's sub-resource
	// (the node's /wallet/<id> path).
	CallWallet(ctx context.Context, wallet, method string, params ...any) (json.RawMessage, error)
}

// RPCError is an error object returned by the node itself, as opposed to a
// transport failure reaching it.
type RPCError struct {
	Code    btcjson.RPCErrorCode
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("node rpc error %d: %s", e.Code, e.Message)
}

// Config holds the node endpoint and its fixed credentials.
type Config struct {
	URL      string
	User     string
	Password string
	Timeout  time.Duration
}

// Client issues JSON-RPC requests over HTTP POST.
type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	return c.call(ctx, c.cfg.URL, method, params)
}

func (c *Client) CallWallet(ctx context.Context, wallet, method string, params ...any) (json.RawMessage, error) {
	path := c.cfg.URL + "/wallet/" + url.PathEscape(wallet)
	return c.call(ctx, path, method, params)
}

// call posts a single JSON-RPC request and decodes the response envelope.
// The node answers errors with non-2xx statuses but still ships a valid
// JSON-RPC body, so the body is decoded first and the status only matters
// when the body is unusable.
func (c *Client) call(ctx context.Context, endpoint, method string, params []any) (json.RawMessage, error) {
	rpcReq, err := btcjson.NewRequest(btcjson.RpcVersion1, 1, method, params)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", method, err)
	}

	body, err := json.Marshal(rpcReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request for %s: %w", method, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	httpReq.SetBasicAuth(c.cfg.User, c.cfg.Password)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer httpResp.Body.Close()

	var rpcResp btcjson.Response
	if err := json.NewDecoder(httpResp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("%w: %s returned status %d with undecodable body", common.ErrTransport, method, httpResp.StatusCode)
	}

	if rpcResp.Error != nil {
		return nil, &RPCError{Code: rpcResp.Error.Code, Message: rpcResp.Error.Message}
	}

	// A well-formed reply always carries a result key, even if null. An
	// absent result means the envelope was truncated or foreign, which
	// callers must not confuse with a meaningful null.
	if len(rpcResp.Result) == 0 {
		return nil, fmt.Errorf("%w: %s returned no result", common.ErrTransport, method)
	}

	return rpcResp.Result, nil
}
