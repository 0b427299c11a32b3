package llm

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

func completionResponse(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` +
		string(mustJSON(content)) + `}}]}`
}

func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func TestChatSuccess(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionResponse("SELECT 1")))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "qwen/qwen-2.5-72b-instruct", 0.3, 5*time.Second)
	reply, err := c.Invoke(context.Background(), "How many projects?", "system prompt")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", reply)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "qwen/qwen-2.5-72b-instruct", gotBody["model"])
	assert.Equal(t, 0.3, gotBody["temperature"])

	msgs, ok := gotBody["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, msgs, 2)
	first := msgs[0].(map[string]interface{})
	assert.Equal(t, "system", first["role"])
}

func TestChatAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key", "m", 0.3, 5*time.Second)
	_, err := c.Invoke(context.Background(), "hi", "")
	require.Error(t, err)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, KindAuth, gwErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, gwErr.StatusCode)
	assert.Contains(t, gwErr.UserMessage(), "OPENROUTER_API_KEY")
}

func TestChatRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "m", 0.3, 5*time.Second)
	_, err := c.Invoke(context.Background(), "hi", "")

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, KindRateLimited, gwErr.Kind)
}

func TestChatServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "m", 0.3, 5*time.Second)
	_, err := c.Invoke(context.Background(), "hi", "")

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, KindHTTP, gwErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, gwErr.StatusCode)
}

func TestChatTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(completionResponse("late")))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "m", 0.3, 20*time.Millisecond)
	_, err := c.Invoke(context.Background(), "hi", "")

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, KindTimeout, gwErr.Kind)
}

func TestChatConnectionRefused(t *testing.T) {
	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "k", "m", 0.3, 5*time.Second)
	_, err := c.Invoke(context.Background(), "hi", "")

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, KindConnection, gwErr.Kind)
}

func TestChatMalformedResponse(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"choices":`},
		{"no choices", `{"choices":[]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "k", "m", 0.3, 5*time.Second)
			_, err := c.Invoke(context.Background(), "hi", "")

			var gwErr *Error
			require.ErrorAs(t, err, &gwErr)
			assert.Equal(t, KindMalformed, gwErr.Kind)
		})
	}
}

func TestUserMessageFallback(t *testing.T) {
	assert.Contains(t, UserMessage(assert.AnError), "Unexpected error occurred")
}
