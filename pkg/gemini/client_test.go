package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Configured(t *testing.T) {
	assert.False(t, NewClient("http://example.com", "", "gemini-pro").Configured())
	assert.True(t, NewClient("http://example.com", "key", "gemini-pro").Configured())
}

func TestGenerateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-pro:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "which rug?", req.Contents[0].Parts[0].Text)

		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []part{{Text: "A wool rug."}}}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gemini-pro")
	reply, err := client.GenerateContent(context.Background(), "which rug?")
	require.NoError(t, err)
	assert.Equal(t, "A wool rug.", reply)
}

func TestGenerateContent_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gemini-pro")
	reply, err := client.GenerateContent(context.Background(), "hello")
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestGenerateContent_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gemini-pro")
	_, err := client.GenerateContent(context.Background(), "hello")
	assert.Error(t, err)
}
