package openai

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"neuroforge-backend/internal/generation"
)

// Synthesizer narrates text with OpenAI TTS and hosts the mp3 so the render
// step can reference it by URL.
type Synthesizer struct {
	client *Client
	host   generation.MediaHost
	model  string
	voice  string
	newID  func() string
}

var (
	_ generation.SpeechSynthesizer = (*Synthesizer)(nil)
	_ generation.HostedSpeech      = (*Synthesizer)(nil)
)

func NewSynthesizer(client *Client, host generation.MediaHost) *Synthesizer {
	return &Synthesizer{
		client: client,
		host:   host,
		model:  "tts-1",
		voice:  "alloy",
		newID:  uuid.NewString,
	}
}

func (s *Synthesizer) MaxInputLength() int {
	return SpeechInputLimit
}

// HostsAudio is true because every narration is uploaded before its URL is returned.
func (s *Synthesizer) HostsAudio() bool {
	return s.host != nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	if s.host == nil {
		return "", generation.ErrNotConfigured
	}

	audio, err := s.client.CreateSpeech(ctx, SpeechIn{
		Model:          s.model,
		Voice:          s.voice,
		Input:          text,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return "", err
	}

	url, err := s.host.Host(ctx, generation.Asset{
		Kind:        generation.AssetAudio,
		Name:        fmt.Sprintf("audio_%s.mp3", s.newID()),
		Data:        audio,
		ContentType: "audio/mpeg",
	})
	if err != nil {
		return "", fmt.Errorf("failed to host narration: %w", err)
	}
	return url, nil
}
