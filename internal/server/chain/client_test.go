package chain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/certledger/internal/common"
	"github.com/dmitrijs2005/certledger/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const certType = "0x2::devnet_nft::DevNetNFT"

type object struct {
	id, typ string
}

func page(objs []object, next string) map[string]any {
	data := make([]map[string]any, 0, len(objs))
	for _, o := range objs {
		data = append(data, map[string]any{"data": map[string]any{
			"objectId": o.id, "version": "1", "digest": "d-" + o.id, "type": o.typ,
		}})
	}
	res := map[string]any{"data": data, "hasNextPage": next != ""}
	if next != "" {
		res["nextCursor"] = next
	} else {
		res["nextCursor"] = nil
	}
	return map[string]any{"jsonrpc": "2.0", "id": 1, "result": res}
}

func decodeParams(t *testing.T, r *http.Request) []json.RawMessage {
	t.Helper()
	var req struct {
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
	require.Equal(t, "suix_getOwnedObjects", req.Method)
	return req.Params
}

func newClient(url string, attempts int) *Client {
	return NewClient(url, "devnet_nft::DevNetNFT", attempts, time.Millisecond, logging.Nop{})
}

func TestOwnedCertificates_FiltersAndPaginates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := decodeParams(t, r)
		assert.JSONEq(t, `"0xA"`, string(params[0]))
		if string(params[2]) == "null" {
			_ = json.NewEncoder(w).Encode(page([]object{{"1", certType}, {"2", "0x2::coin::Coin<0x2::sui::SUI>"}}, "c1"))
			return
		}
		assert.JSONEq(t, `"c1"`, string(params[2]))
		_ = json.NewEncoder(w).Encode(page([]object{{"3", certType}}, ""))
	}))
	defer srv.Close()

	got, err := newClient(srv.URL, 1).OwnedCertificates(context.Background(), "0xA")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ObjectID)
	assert.Equal(t, "3", got[1].ObjectID)
	assert.Equal(t, "d-3", got[1].Digest)
}

func TestOwnedCertificates_RPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"invalid owner"}}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 1).OwnedCertificates(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid owner")
}

func TestOwnedCertificates_HTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 1).OwnedCertificates(context.Background(), "0xA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestWaitForObject_EventuallyIndexed(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			_ = json.NewEncoder(w).Encode(page(nil, ""))
			return
		}
		_ = json.NewEncoder(w).Encode(page([]object{{"0xOBJ", certType}}, ""))
	}))
	defer srv.Close()

	got, err := newClient(srv.URL, 5).WaitForObject(context.Background(), "0xA", "0xOBJ")
	require.NoError(t, err)
	assert.Equal(t, "0xOBJ", got.ObjectID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWaitForObject_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(page(nil, ""))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 3).WaitForObject(context.Background(), "0xA", "0xOBJ")
	assert.True(t, errors.Is(err, common.ErrorNotFound), "got %v", err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestNewClient_NonPositiveBackoff(t *testing.T) {
	for _, backoff := range []time.Duration{0, -time.Second} {
		c := NewClient("http://unused", "x", 0, backoff, logging.Nop{})
		assert.Equal(t, defaultBackoff, c.backoff)
		assert.Equal(t, 1, c.attempts)
	}
}

func TestWaitForObject_ZeroBackoff(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(page(nil, ""))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "devnet_nft::DevNetNFT", 2, 0, logging.Nop{})
	require.NotPanics(t, func() {
		_, err := c.WaitForObject(context.Background(), "0xA", "0xOBJ")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
	assert.Equal(t, int32(2), calls.Load())
}

func TestWaitForObject_RetriesTransportErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(page([]object{{"0xOBJ", certType}}, ""))
	}))
	defer srv.Close()

	got, err := newClient(srv.URL, 2).WaitForObject(context.Background(), "0xA", "0xOBJ")
	require.NoError(t, err)
	assert.Equal(t, "0xOBJ", got.ObjectID)
}

func TestWaitForObject_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(page(nil, ""))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(srv.URL, 5).WaitForObject(ctx, "0xA", "0xOBJ")
	assert.ErrorIs(t, err, context.Canceled)
}
