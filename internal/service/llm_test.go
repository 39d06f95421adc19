package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/ladle/backend/config"
)

func newStubAPI(t *testing.T, handler http.HandlerFunc) *DeepSeekClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewDeepSeekClient(&config.Config{
		DeepSeekAPIKey: "test-key",
		DeepSeekAPIURL: srv.URL,
		DeepSeekModel:  "deepseek-chat",
	})
	require.NoError(t, err)
	return client
}

func TestNewDeepSeekClientRequiresKey(t *testing.T) {
	_, err := NewDeepSeekClient(&config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEEPSEEK_API_KEY")
}

func TestDeepSeekComplete(t *testing.T) {
	var captured Request
	client := newStubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	})

	out, err := client.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "deepseek-chat", captured.Model)
	assert.Equal(t, 0.3, captured.Temperature)
	assert.Equal(t, map[string]string{"type": "json_object"}, captured.ResponseFormat)
}

func TestDeepSeekCompleteErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		client := newStubAPI(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusPaymentRequired)
		})
		_, err := client.Complete(context.Background(), "s", "u")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "402")
	})

	t.Run("empty choices", func(t *testing.T) {
		client := newStubAPI(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"choices":[]}`))
		})
		_, err := client.Complete(context.Background(), "s", "u")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no response")
	})
}
