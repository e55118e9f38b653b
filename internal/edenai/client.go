package edenai

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
	"neuroforge-backend/internal/models"
)

const DefaultBaseURL = "https://api.edenai.run/v2"

type Client struct {
	baseURL    string
	apiKey     string
	provider   string
	httpClient *http.Client
}

var _ generation.ImageGenerator = (*Client)(nil)

// ImageGenerationIn is the request body for /image/generation.
type ImageGenerationIn struct {
	Providers  string `json:"providers"`
	Text       string `json:"text"`
	Resolution string `json:"resolution"`
	NumImages  int    `json:"num_images"`
}

type imageItem struct {
	ImageResourceURL string `json:"image_resource_url"`
}

// providerResult is one provider's entry in the response, keyed by provider name.
type providerResult struct {
	Status string      `json:"status"`
	Items  []imageItem `json:"items"`
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   apiKey,
		provider: "openai",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Resolution returns the image size for a content type: portrait for
// vertical formats, landscape otherwise.
func Resolution(contentType models.ContentType) string {
	if contentType.IsVertical() {
		return "512x768"
	}
	return "768x512"
}

func (c *Client) GenerateImage(ctx context.Context, prompt string, contentType models.ContentType) (string, error) {
	if c.apiKey == "" {
		return "", generation.ErrNotConfigured
	}

	reqBody := ImageGenerationIn{
		Providers:  c.provider,
		Text:       fmt.Sprintf("Professional %s visual: %s", contentType, prompt),
		Resolution: Resolution(contentType),
		NumImages:  1,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/image/generation", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", generation.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response body: %v", generation.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: failed to generate image: status %d, body: %s", generation.ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}

	var result map[string]providerResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v, body: %s", generation.ErrUpstreamUnavailable, err, string(body))
	}

	entry, ok := result[c.provider]
	if !ok || len(entry.Items) == 0 || entry.Items[0].ImageResourceURL == "" {
		return "", fmt.Errorf("%w: no image in response, body: %s", generation.ErrUpstreamUnavailable, string(body))
	}

	return entry.Items[0].ImageResourceURL, nil
}
