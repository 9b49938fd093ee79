package reasoning

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProviderExplainSuccess(t *testing.T) {
	var gotPath string
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotPrompt = body["prompt"]
		json.NewEncoder(w).Encode(map[string]string{"reasoning": "Ms. Iyer shares the subject."})
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, time.Second)
	text, err := provider.Explain(context.Background(), fallbackPayload())

	require.NoError(t, err)
	assert.Equal(t, "Ms. Iyer shares the subject.", text)
	assert.Equal(t, "/explain", gotPath)
	assert.Contains(t, gotPrompt, "Ms. Iyer")
	assert.Contains(t, gotPrompt, "Dr. Verma")
	assert.Contains(t, gotPrompt, "88 out of 100")
}

func TestHTTPProviderExplainServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, time.Second)
	_, err := provider.Explain(context.Background(), fallbackPayload())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHTTPProviderExplainEmptyReasoning(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"reasoning": "   "})
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, time.Second)
	_, err := provider.Explain(context.Background(), fallbackPayload())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing reasoning")
}

func TestHTTPProviderExplainMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, time.Second)
	_, err := provider.Explain(context.Background(), fallbackPayload())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode explain response")
}

func TestHTTPProviderExplainNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider := NewHTTPProvider(server.URL, time.Second)
	_, err := provider.Explain(context.Background(), fallbackPayload())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "call explanation service")
}

func TestHTTPProviderExplainContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	provider := NewHTTPProvider(server.URL, time.Second)
	_, err := provider.Explain(ctx, fallbackPayload())
	require.Error(t, err)
}
