package node

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/stretchr/testify/require"

	"github.com/hobbleabbas/bapu-gateway/internal/common"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{URL: srv.URL, User: "rpcuser", Password: "rpcpass", Timeout: 2 * time.Second}), srv
}

func TestCall_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "rpcuser", user)
		require.Equal(t, "rpcpass", pass)

		var req btcjson.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "listwallets", req.Method)

		w.Write([]byte(`{"jsonrpc":"1.0","result":["a","b"],"error":null,"id":1}`))
	})

	result, err := client.Call(context.Background(), "listwallets")
	require.NoError(t, err)

	var wallets []string
	require.NoError(t, json.Unmarshal(result, &wallets))
	require.Equal(t, []string{"a", "b"}, wallets)
}

func TestCallWallet_ScopesPath(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wallet/u-1_savings", r.URL.Path)
		w.Write([]byte(`{"jsonrpc":"1.0","result":{},"error":null,"id":1}`))
	})

	_, err := client.CallWallet(context.Background(), "u-1_savings", "getwalletinfo")
	require.NoError(t, err)
}

func TestCall_PassesParamsInOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req btcjson.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Params, 2)
		require.JSONEq(t, `"txid123"`, string(req.Params[0]))
		require.JSONEq(t, `true`, string(req.Params[1]))

		w.Write([]byte(`{"jsonrpc":"1.0","result":null,"error":null,"id":1}`))
	})

	_, err := client.Call(context.Background(), "getrawtransaction", "txid123", true)
	require.NoError(t, err)
}

func TestCall_RemoteError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// the node ships JSON-RPC errors with a 500 status
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"jsonrpc":"1.0","result":null,"error":{"code":-4,"message":"Wallet already exists."},"id":1}`))
	})

	_, err := client.Call(context.Background(), "createwallet", "u-1_savings")
	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	require.EqualValues(t, -4, rpcErr.Code)
}

func TestCall_NullResultPassesThrough(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"1.0","result":null,"error":null,"id":1}`))
	})

	result, err := client.Call(context.Background(), "createwallet", "u-1_savings")
	require.NoError(t, err)
	require.Equal(t, "null", string(result))
}

func TestCall_MissingResultIsTransportError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"1.0","error":null,"id":1}`))
	})

	_, err := client.Call(context.Background(), "getwalletinfo")
	require.ErrorIs(t, err, common.ErrTransport)
}

func TestCall_UndecodableBodyIsTransportError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	})

	_, err := client.Call(context.Background(), "getwalletinfo")
	require.ErrorIs(t, err, common.ErrTransport)
}

func TestCall_NodeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client := New(Config{URL: srv.URL, User: "u", Password: "p", Timeout: time.Second})
	srv.Close()

	_, err := client.Call(context.Background(), "listwallets")
	require.ErrorIs(t, err, common.ErrTransport)
}
