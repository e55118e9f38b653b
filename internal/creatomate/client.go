package creatomate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"neuroforge-backend/internal/generation"
)

const DefaultBaseURL = "https://api.creatomate.com/v1"

type Client struct {
	baseURL    string
	apiKey     string
	templates  *Templates
	httpClient *http.Client
	backoffs   []time.Duration
}

var _ generation.VideoAssembler = (*Client)(nil)

// RenderIn is the request body for POST /renders.
type RenderIn struct {
	TemplateID    string            `json:"template_id"`
	Modifications map[string]string `json:"modifications"`
}

// Render is one render job as returned by the API.
type Render struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	URL          string `json:"url"`
	ErrorMessage string `json:"error_message"`
}

// statusError marks responses that are worth retrying.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d, body: %s", e.code, e.body)
}

func NewClient(baseURL, apiKey string, templates *Templates) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if templates == nil {
		templates = NewTemplates(nil)
	}
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		apiKey:    apiKey,
		templates: templates,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		backoffs: []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
	}
}

// SubmitRender starts a render of the category template with the script,
// background image and narration filled in. Returns the render id.
func (c *Client) SubmitRender(ctx context.Context, req generation.RenderRequest) (string, error) {
	if c.apiKey == "" {
		return "", generation.ErrNotConfigured
	}

	reqBody := RenderIn{
		TemplateID: c.templates.For(req.Type),
		Modifications: map[string]string{
			"text-content":     req.Script,
			"background-image": req.ImageURL,
			"audio-track":      req.AudioURL,
		},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var body []byte
	err = c.retryWithBackoff(ctx, func() error {
		var doErr error
		body, doErr = c.do(ctx, http.MethodPost, "/renders", jsonData, http.StatusOK, http.StatusAccepted, http.StatusCreated)
		return doErr
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to submit render: %v", generation.ErrUpstreamUnavailable, err)
	}

	renders, err := decodeRenders(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrUpstreamUnavailable, err)
	}
	if len(renders) == 0 || renders[0].ID == "" {
		return "", fmt.Errorf("%w: no render id in response, body: %s", generation.ErrUpstreamUnavailable, string(body))
	}
	return renders[0].ID, nil
}

func (c *Client) RenderStatus(ctx context.Context, jobID string) (*generation.RenderJob, error) {
	if c.apiKey == "" {
		return nil, generation.ErrNotConfigured
	}

	body, err := c.do(ctx, http.MethodGet, "/renders/"+jobID, nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get render status: %v", generation.ErrUpstreamUnavailable, err)
	}

	var render Render
	if err := json.Unmarshal(body, &render); err != nil {
		return nil, fmt.Errorf("%w: failed to decode render: %v, body: %s", generation.ErrUpstreamUnavailable, err, string(body))
	}

	return &generation.RenderJob{
		ID:           render.ID,
		Status:       generation.RenderStatus(render.Status),
		URL:          render.URL,
		ErrorMessage: render.ErrorMessage,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, okStatus ...int) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	for _, code := range okStatus {
		if resp.StatusCode == code {
			return body, nil
		}
	}
	return nil, &statusError{code: resp.StatusCode, body: string(body)}
}

// retryWithBackoff retries fn after transport errors and 5xx responses.
// Client errors are returned immediately.
func (c *Client) retryWithBackoff(ctx context.Context, fn func() error) error {
	var lastErr error
	for i := 0; i <= len(c.backoffs); i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var se *statusError
		if errors.As(err, &se) && se.code < http.StatusInternalServerError {
			return err
		}
		if i == len(c.backoffs) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoffs[i]):
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", len(c.backoffs)+1, lastErr)
}

// decodeRenders accepts both the array the API returns for template renders
// and a single render object.
func decodeRenders(body []byte) ([]Render, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var renders []Render
		if err := json.Unmarshal(trimmed, &renders); err != nil {
			return nil, fmt.Errorf("failed to decode renders: %v, body: %s", err, string(body))
		}
		return renders, nil
	}
	var render Render
	if err := json.Unmarshal(trimmed, &render); err != nil {
		return nil, fmt.Errorf("failed to decode render: %v, body: %s", err, string(body))
	}
	return []Render{render}, nil
}
