// Package gemini validates prompts and writes scripts with Gemini on Vertex AI.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
	"neuroforge-backend/internal/generation"
	"neuroforge-backend/internal/models"
)

const (
	DefaultModel  = "gemini-2.5-flash"
	DefaultRegion = "us-central1"

	scriptMaxTokens = 1500
)

// contentGenerator is satisfied by *genai.GenerativeModel.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Config struct {
	ProjectID       string
	Region          string
	Model           string
	CredentialsFile string
}

type Client struct {
	validator  contentGenerator
	writer     contentGenerator
	baseClient *genai.Client
}

var (
	_ generation.PromptValidator = (*Client)(nil)
	_ generation.ScriptGenerator = (*Client)(nil)
)

// NewClient builds the Vertex AI models. Without a project id the client is
// returned unconfigured and every call reports generation.ErrNotConfigured.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ProjectID == "" {
		return &Client{}, nil
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	baseClient, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Region, opts...)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	validatorModel := baseClient.GenerativeModel(cfg.Model)
	validatorModel.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.0),
	}

	writerModel := baseClient.GenerativeModel(cfg.Model)
	writerModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(ScriptSystemPrompt)},
	}
	writerModel.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: genai.Ptr[int32](scriptMaxTokens),
	}

	return &Client{
		validator:  validatorModel,
		writer:     writerModel,
		baseClient: baseClient,
	}, nil
}

type validationResponse struct {
	Approved *bool  `json:"approved"`
	Reason   string `json:"reason"`
	Analysis string `json:"analysis"`
}

func (c *Client) ValidatePrompt(ctx context.Context, prompt string, contentType models.ContentType) (*generation.Validation, error) {
	if c.validator == nil {
		return nil, generation.ErrNotConfigured
	}

	resp, err := c.validator.GenerateContent(ctx, genai.Text(validationPrompt(prompt, contentType)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate validation: %v", generation.ErrUpstreamUnavailable, err)
	}

	return ParseValidation(extractText(resp), contentType)
}

// ParseValidation decodes the validator's JSON verdict. A missing "approved"
// field counts as approval.
func ParseValidation(text string, contentType models.ContentType) (*generation.Validation, error) {
	text = stripFences(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty validation response", generation.ErrUpstreamUnavailable)
	}

	var parsed validationResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode validation: %v", generation.ErrUpstreamUnavailable, err)
	}

	v := &generation.Validation{
		Approved: parsed.Approved == nil || *parsed.Approved,
		Reason:   parsed.Reason,
		Analysis: parsed.Analysis,
	}
	if v.Analysis == "" {
		v.Analysis = fmt.Sprintf("Conteúdo %s aprovado para produção.", contentType)
	}
	return v, nil
}

func (c *Client) GenerateScript(ctx context.Context, prompt string, contentType models.ContentType) (string, error) {
	if c.writer == nil {
		return "", generation.ErrNotConfigured
	}

	resp, err := c.writer.GenerateContent(ctx, genai.Text(scriptPrompt(prompt, contentType)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to generate script: %v", generation.ErrUpstreamUnavailable, err)
	}

	script := stripFences(extractText(resp))
	if script == "" {
		return "", fmt.Errorf("%w: empty script response", generation.ErrUpstreamUnavailable)
	}
	return script, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func (c *Client) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}
