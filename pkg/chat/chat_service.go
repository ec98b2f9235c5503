package chat

import (
	"Billfold-Backend/domain"
	"Billfold-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type (
	// ChatService is a stateless proxy in front of the generative model.
	ChatService interface {
		Ask(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error)
	}

	chatService struct {
		httpClient *http.Client
		apiKey     string
		model      string
		baseURL    string
	}
)

func NewChatService() ChatService {
	return &chatService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     utils.GetConfig("GEMINI_API_KEY"),
		model:      utils.GetConfig("GEMINI_MODEL"),
		baseURL:    "https://generativelanguage.googleapis.com",
	}
}

func (s *chatService) Ask(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	if s.apiKey == "" {
		return domain.ChatResponse{}, fmt.Errorf("GEMINI_API_KEY not set")
	}
	if s.model == "" {
		return domain.ChatResponse{}, fmt.Errorf("GEMINI_MODEL not set")
	}

	endpoint := fmt.Sprintf(
		"%s/v1beta/models/%s:generateContent?key=%s",
		s.baseURL, s.model, s.apiKey,
	)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": "You are a helpful assistant for a bill-management application. Answer the user's question concisely. Question: " + req.Question,
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.4,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return domain.ChatResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(requestJSON))
	if err != nil {
		return domain.ChatResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return domain.ChatResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return domain.ChatResponse{}, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return domain.ChatResponse{}, err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return domain.ChatResponse{}, domain.ErrChatProcessingFailed
	}

	answer := strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text)
	if answer == "" {
		return domain.ChatResponse{}, domain.ErrChatProcessingFailed
	}

	return domain.ChatResponse{Answer: answer}, nil
}
