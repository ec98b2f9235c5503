package domain

import (
	"errors"
)

var (
	MessageSuccessChatQuery = "chat response generated successfully"

	MessageFailedChatQuery = "failed to generate chat response"

	ErrChatProcessingFailed = errors.New("chat model processing failed")
)

type (
	ChatRequest struct {
		Question string `json:"question" validate:"required"`
	}

	ChatResponse struct {
		Answer string `json:"answer"`
	}
)
