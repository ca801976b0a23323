package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	summaryout "lumina/internal/modules/summary/port/out"
	"lumina/internal/platform/apperrors"
)

const (
	chatCompletionsEndpoint = "https://api.openai.com/v1/chat/completions"
	requestTimeout          = 60 * time.Second
	maxSourceChars          = 24_000
)

const systemPrompt = "You are an expert reading assistant. Extract the " +
	"essentials of long documents into a concise, structured summary of the " +
	"key points, in clean markdown."

type OpenAISummarizer struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

func NewOpenAISummarizer(apiKey, model string) summaryout.Summarizer {
	return &OpenAISummarizer{
		apiKey:     apiKey,
		model:      model,
		endpoint:   chatCompletionsEndpoint,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if s.apiKey == "" {
		return "", apperrors.ErrUnconfigured
	}
	if len(text) > maxSourceChars {
		text = text[:maxSourceChars]
	}
	payload, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Summarize the following document for a reader who wants the key points:\n\n" + text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call summarizer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("summarizer returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("summarizer returned no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}
