package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"neuroforge-backend/internal/generation"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"

	// SpeechInputLimit is the longest input the speech endpoint accepts.
	SpeechInputLimit = 4096
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// SpeechIn is the request body for /audio/speech.
type SpeechIn struct {
	Model          string `json:"model"`
	Voice          string `json:"voice"`
	Input          string `json:"input"`
	ResponseFormat string `json:"response_format,omitempty"`
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// CreateSpeech returns the synthesized audio bytes (mp3).
func (c *Client) CreateSpeech(ctx context.Context, in SpeechIn) ([]byte, error) {
	if c.apiKey == "" {
		return nil, generation.ErrNotConfigured
	}

	jsonData, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/speech", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", generation.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", generation.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: failed to create speech: status %d, body: %s", generation.ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty audio response", generation.ErrUpstreamUnavailable)
	}

	return body, nil
}
