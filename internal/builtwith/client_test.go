package builtwith

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/builtwith/builtwith-mcp/internal/common"
)

func testLogger() *common.Logger {
	return common.NewSilentLogger()
}

// callErr unwraps a *CallError or fails the test.
func callErr(t *testing.T, err error) *CallError {
	t.Helper()
	var ce *CallError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CallError, got %T: %v", err, err)
	}
	return ce
}

func TestCall_MissingKey_NoNetworkCall(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, "", testLogger())

	_, err := c.Call(context.Background(), "v21/api.json", map[string]string{"LOOKUP": "example.com"})
	ce := callErr(t, err)
	if ce.Kind != KindAuthMissing {
		t.Errorf("expected kind %s, got %s", KindAuthMissing, ce.Kind)
	}
	if ce.Message != "Missing API key" {
		t.Errorf("unexpected message: %s", ce.Message)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("expected zero upstream calls, got %d", calls)
	}
}

func TestCall_FallbackKey(t *testing.T) {
	var gotKey string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("KEY")
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, "fallback-key-123", testLogger())

	if _, err := c.Call(context.Background(), "v21/api.json", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "fallback-key-123" {
		t.Errorf("expected fallback key, got %q", gotKey)
	}
}

func TestCall_ContextKeyOverridesFallback(t *testing.T) {
	var gotKey string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("KEY")
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, "fallback-key-123", testLogger())

	ctx := WithAPIKey(context.Background(), "request-key-456")
	if _, err := c.Call(ctx, "v21/api.json", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "request-key-456" {
		t.Errorf("expected request key, got %q", gotKey)
	}
}

func TestCall_OmitsEmptyParams(t *testing.T) {
	var query map[string][]string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, "key-1234567890", testLogger())

	_, err := c.Call(context.Background(), "lists11/api.json", map[string]string{
		"TECH":   "Shopify",
		"SINCE":  "",
		"OFFSET": "",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := query["TECH"]; len(got) != 1 || got[0] != "Shopify" {
		t.Errorf("expected TECH=Shopify, got %v", got)
	}
	if _, present := query["SINCE"]; present {
		t.Error("empty SINCE should be omitted, not sent as empty string")
	}
	if _, present := query["OFFSET"]; present {
		t.Error("empty OFFSET should be omitted, not sent as empty string")
	}
}

func TestCall_NetworkError(t *testing.T) {
	// Port 1 is never listening
	c := NewClient("http://127.0.0.1:1", "key-1234567890", testLogger())

	_, err := c.Call(context.Background(), "v21/api.json", nil)
	ce := callErr(t, err)
	if ce.Kind != KindNetworkError {
		t.Errorf("expected kind %s, got %s", KindNetworkError, ce.Kind)
	}
}

func TestCall_NonJSONBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>Bad Gateway</html>"))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, "key-1234567890", testLogger())

	_, err := c.Call(context.Background(), "v21/api.json", nil)
	ce := callErr(t, err)
	if ce.Kind != KindBadUpstreamResponse {
		t.Errorf("expected kind %s, got %s", KindBadUpstreamResponse, ce.Kind)
	}
	if ce.Status != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", ce.Status)
	}
}

func TestCall_UpstreamErrorRetainsBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"Errors":[{"Message":"invalid key"}]}`))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, "key-1234567890", testLogger())

	_, err := c.Call(context.Background(), "v21/api.json", nil)
	ce := callErr(t, err)
	if ce.Kind != KindUpstreamError {
		t.Errorf("expected kind %s, got %s", KindUpstreamError, ce.Kind)
	}
	if ce.Status != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", ce.Status)
	}
	if string(ce.Body) != `{"Errors":[{"Message":"invalid key"}]}` {
		t.Errorf("expected raw body retained, got %s", ce.Body)
	}
}

func TestCall_Success(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v21/api.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"Results":[]}`))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, "key-1234567890", testLogger())

	payload, err := c.Call(context.Background(), "v21/api.json", map[string]string{"LOOKUP": "example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != `{"Results":[]}` {
		t.Errorf("unexpected payload: %s", payload)
	}
}

// Two concurrent invocations with distinct context keys must each reach
// upstream with their own key, never the other's.
func TestCall_ConcurrentCredentialIsolation(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Echo the received key so each caller can verify its own
		json.NewEncoder(w).Encode(map[string]string{"key": r.URL.Query().Get("KEY")})
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, "fallback-key-000", testLogger())

	const iterations = 50
	var wg sync.WaitGroup
	for _, key := range []string{"tenant-a-key-111", "tenant-b-key-222"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			ctx := WithAPIKey(context.Background(), key)
			for i := 0; i < iterations; i++ {
				payload, err := c.Call(ctx, "v21/api.json", nil)
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				var resp struct {
					Key string `json:"key"`
				}
				if err := json.Unmarshal(payload, &resp); err != nil {
					t.Errorf("bad echo payload: %v", err)
					return
				}
				if resp.Key != key {
					t.Errorf("credential leak: sent under %q, upstream saw %q", key, resp.Key)
					return
				}
			}
		}(key)
	}
	wg.Wait()
}
