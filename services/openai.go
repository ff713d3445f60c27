package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

const slideDeveloperPrompt = "You are a professional presentation creator. Respond only with the JSON array of slides you are asked for."

type OpenAIRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatGPT generates slide text through the OpenAI chat completions API.
type ChatGPT struct {
	APIKey string
	URL    string
	Model  string
	client *http.Client
}

func NewChatGPT(apiKey, model string) *ChatGPT {
	return &ChatGPT{
		APIKey: apiKey,
		URL:    openAIChatURL,
		Model:  model,
		client: &http.Client{},
	}
}

func (c *ChatGPT) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.Chat(ctx, c.Model, slideDeveloperPrompt, prompt)
}

func (c *ChatGPT) Chat(ctx context.Context, model, developerPrompt, userMessage string) (string, error) {
	requestData := OpenAIRequest{
		Model: model,
		Messages: []Message{
			{Role: "developer", Content: developerPrompt},
			{Role: "user", Content: userMessage},
		},
	}

	payload, err := json.Marshal(requestData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var responseData struct {
		Choices []struct {
			Message Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &responseData); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(responseData.Choices) > 0 {
		return responseData.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("unexpected response format")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
