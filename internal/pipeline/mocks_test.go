package pipeline_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"neuroforge-backend/internal/generation"
	"neuroforge-backend/internal/models"
)

type mockValidator struct{ mock.Mock }

func (m *mockValidator) ValidatePrompt(ctx context.Context, prompt string, contentType models.ContentType) (*generation.Validation, error) {
	args := m.Called(ctx, prompt, contentType)
	v, _ := args.Get(0).(*generation.Validation)
	return v, args.Error(1)
}

type mockScripts struct{ mock.Mock }

func (m *mockScripts) GenerateScript(ctx context.Context, prompt string, contentType models.ContentType) (string, error) {
	args := m.Called(ctx, prompt, contentType)
	return args.String(0), args.Error(1)
}

type mockImages struct{ mock.Mock }

func (m *mockImages) GenerateImage(ctx context.Context, prompt string, contentType models.ContentType) (string, error) {
	args := m.Called(ctx, prompt, contentType)
	return args.String(0), args.Error(1)
}

type mockSpeech struct {
	mock.Mock
	maxInput int
}

func (m *mockSpeech) Synthesize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *mockSpeech) MaxInputLength() int {
	return m.maxInput
}

// hostedSpeech narrates straight onto the media host.
type hostedSpeech struct{ mockSpeech }

func (m *hostedSpeech) HostsAudio() bool { return true }

type mockVideo struct{ mock.Mock }

func (m *mockVideo) SubmitRender(ctx context.Context, req generation.RenderRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockVideo) RenderStatus(ctx context.Context, jobID string) (*generation.RenderJob, error) {
	args := m.Called(ctx, jobID)
	job, _ := args.Get(0).(*generation.RenderJob)
	return job, args.Error(1)
}

type mockHost struct{ mock.Mock }

func (m *mockHost) Host(ctx context.Context, asset generation.Asset) (string, error) {
	args := m.Called(ctx, asset)
	return args.String(0), args.Error(1)
}

func assetOfKind(kind generation.AssetKind) interface{} {
	return mock.MatchedBy(func(a generation.Asset) bool { return a.Kind == kind })
}
