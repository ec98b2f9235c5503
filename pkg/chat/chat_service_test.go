package chat

import (
	"Billfold-Backend/domain"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(baseURL string) *chatService {
	return &chatService{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		apiKey:     "test-key",
		model:      "gemini-test",
		baseURL:    baseURL,
	}
}

func generateContentResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{
						{"text": text},
					},
				},
			},
		},
	}
}

func TestAskReturnsModelAnswer(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(generateContentResponse("  Keep receipts for warranty claims.  "))
	}))
	defer server.Close()

	service := newTestService(server.URL)
	res, err := service.Ask(context.Background(), domain.ChatRequest{Question: "Why keep receipts?"})
	require.NoError(t, err)
	assert.Equal(t, "Keep receipts for warranty claims.", res.Answer)
	assert.Equal(t, "/v1beta/models/gemini-test:generateContent", gotPath)

	contents := gotBody["contents"].([]interface{})
	parts := contents[0].(map[string]interface{})["parts"].([]interface{})
	text := parts[0].(map[string]interface{})["text"].(string)
	assert.Contains(t, text, "Why keep receipts?")
}

func TestAskFailsWithoutAPIKey(t *testing.T) {
	service := newTestService("http://unused")
	service.apiKey = ""

	_, err := service.Ask(context.Background(), domain.ChatRequest{Question: "hi"})
	require.Error(t, err)
}

func TestAskUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	service := newTestService(server.URL)
	_, err := service.Ask(context.Background(), domain.ChatRequest{Question: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestAskEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer server.Close()

	service := newTestService(server.URL)
	_, err := service.Ask(context.Background(), domain.ChatRequest{Question: "hi"})
	require.ErrorIs(t, err, domain.ErrChatProcessingFailed)
}

func TestAskBlankAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateContentResponse("   "))
	}))
	defer server.Close()

	service := newTestService(server.URL)
	_, err := service.Ask(context.Background(), domain.ChatRequest{Question: "hi"})
	require.ErrorIs(t, err, domain.ErrChatProcessingFailed)
}
