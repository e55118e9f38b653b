package generation

import (
	"context"

	"neuroforge-backend/internal/models"
)

// Validation is the verdict of a prompt validator.
type Validation struct {
	Approved bool
	Reason   string
	Analysis string
}

type PromptValidator interface {
	ValidatePrompt(ctx context.Context, prompt string, contentType models.ContentType) (*Validation, error)
}

type ScriptGenerator interface {
	GenerateScript(ctx context.Context, prompt string, contentType models.ContentType) (string, error)
}

type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, contentType models.ContentType) (string, error)
}

// SpeechSynthesizer narrates text and returns a URL to the audio.
// Callers must not pass more than MaxInputLength runes.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
	MaxInputLength() int
}

// HostedSpeech is implemented by synthesizers whose URLs already live on the
// media host. Hosting reuses those URLs instead of uploading the audio again.
type HostedSpeech interface {
	HostsAudio() bool
}

type RenderRequest struct {
	Script   string
	ImageURL string
	AudioURL string
	Type     models.ContentType
}

type RenderStatus string

const (
	RenderPlanned   RenderStatus = "planned"
	RenderWaiting   RenderStatus = "waiting"
	RenderRendering RenderStatus = "rendering"
	RenderSucceeded RenderStatus = "succeeded"
	RenderFailed    RenderStatus = "failed"
)

type RenderJob struct {
	ID           string
	Status       RenderStatus
	URL          string
	ErrorMessage string
}

// VideoAssembler renders asynchronously: SubmitRender returns a job id that
// is polled through RenderStatus.
type VideoAssembler interface {
	SubmitRender(ctx context.Context, req RenderRequest) (string, error)
	RenderStatus(ctx context.Context, jobID string) (*RenderJob, error)
}

// MediaHost stores an asset durably and returns its public URL.
type MediaHost interface {
	Host(ctx context.Context, asset Asset) (string, error)
}
