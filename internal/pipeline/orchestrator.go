package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"neuroforge-backend/internal/generation"
	"neuroforge-backend/internal/models"
)

const (
	DefaultPollInterval    = 2 * time.Second
	DefaultMaxPollAttempts = 30
)

// Dependencies are the capabilities a run calls, in call order. A nil
// capability behaves like an unconfigured one.
type Dependencies struct {
	Validator generation.PromptValidator
	Scripts   generation.ScriptGenerator
	Images    generation.ImageGenerator
	Speech    generation.SpeechSynthesizer
	Video     generation.VideoAssembler
	Host      generation.MediaHost
}

type Options struct {
	PollInterval    time.Duration
	MaxPollAttempts int
	Now             func() time.Time
}

type Request struct {
	ProjectID uuid.UUID
	Prompt    string
	Type      models.ContentType
}

// Orchestrator runs the six generation steps for one project. Every step
// after validation degrades to a fallback instead of failing the run.
type Orchestrator struct {
	deps Dependencies
	opts Options
}

func New(deps Dependencies, opts Options) *Orchestrator {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.MaxPollAttempts <= 0 {
		opts.MaxPollAttempts = DefaultMaxPollAttempts
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Orchestrator{deps: deps, opts: opts}
}

// Run executes the steps strictly in order. It never returns a nil Result;
// Result.Err is set only for a rejected prompt.
func (o *Orchestrator) Run(ctx context.Context, req Request) *Result {
	result := &Result{}
	logf := func(format string, args ...interface{}) {
		log.Printf("[pipeline][project %s] "+format, append([]interface{}{req.ProjectID}, args...)...)
	}

	validation := o.validate(ctx, req, result, logf)
	result.Analysis = validation.Analysis
	if !validation.Approved {
		result.Err = &RejectedError{Reason: validation.Reason}
		logf("prompt rejected: %s", validation.Reason)
		return result
	}

	result.Script = o.script(ctx, req, result, logf)
	result.ImageURL = o.image(ctx, req, result, logf)
	result.AudioURL = o.audio(ctx, result.Script, result, logf)
	result.VideoURL = o.video(ctx, req, result, logf)
	result.Hosted = o.host(ctx, req, result, logf)

	logf("finished (degraded=%t)", result.Degraded())
	return result
}

type logFunc func(format string, args ...interface{})

func (o *Orchestrator) validate(ctx context.Context, req Request, result *Result, logf logFunc) generation.Validation {
	var (
		v   *generation.Validation
		err = generation.ErrNotConfigured
	)
	if o.deps.Validator != nil {
		v, err = o.deps.Validator.ValidatePrompt(ctx, req.Prompt, req.Type)
	}
	if err == nil && v == nil {
		err = fmt.Errorf("%w: validator returned no verdict", generation.ErrUpstreamUnavailable)
	}
	if err != nil {
		logf("validation unavailable, treating prompt as approved: %v", err)
		result.record(StepValidate, OutcomeFallback, err)
		return generation.Validation{Approved: true, Analysis: generation.PreApprovedAnalysis(req.Type)}
	}

	if !v.Approved {
		result.record(StepValidate, OutcomeRejected, nil)
		return *v
	}
	if v.Analysis == "" {
		v.Analysis = generation.PreApprovedAnalysis(req.Type)
	}
	result.record(StepValidate, OutcomeSucceeded, nil)
	return *v
}

func (o *Orchestrator) script(ctx context.Context, req Request, result *Result, logf logFunc) string {
	var (
		text string
		err  = generation.ErrNotConfigured
	)
	if o.deps.Scripts != nil {
		text, err = o.deps.Scripts.GenerateScript(ctx, req.Prompt, req.Type)
	}
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("%w: empty script", generation.ErrUpstreamUnavailable)
	}
	if err != nil {
		logf("script generation failed, using fallback: %v", err)
		result.record(StepScript, OutcomeFallback, err)
		return generation.FallbackScript(req.Type)
	}
	result.record(StepScript, OutcomeSucceeded, nil)
	return text
}

func (o *Orchestrator) image(ctx context.Context, req Request, result *Result, logf logFunc) string {
	var (
		url string
		err = generation.ErrNotConfigured
	)
	if o.deps.Images != nil {
		url, err = o.deps.Images.GenerateImage(ctx, req.Prompt, req.Type)
	}
	if err == nil && url == "" {
		err = fmt.Errorf("%w: empty image url", generation.ErrUpstreamUnavailable)
	}
	if err != nil {
		logf("image generation failed, using fallback: %v", err)
		result.record(StepImage, OutcomeFallback, err)
		return generation.FallbackImageURL(req.Type)
	}
	result.record(StepImage, OutcomeSucceeded, nil)
	return url
}

func (o *Orchestrator) audio(ctx context.Context, script string, result *Result, logf logFunc) string {
	var (
		url string
		err = generation.ErrNotConfigured
	)
	if o.deps.Speech != nil {
		url, err = o.deps.Speech.Synthesize(ctx, truncateRunes(script, o.deps.Speech.MaxInputLength()))
	}
	if err == nil && url == "" {
		err = fmt.Errorf("%w: empty audio url", generation.ErrUpstreamUnavailable)
	}
	if err != nil {
		logf("speech synthesis failed, using fallback: %v", err)
		result.record(StepAudio, OutcomeFallback, err)
		return generation.FallbackAudioURL
	}
	result.record(StepAudio, OutcomeSucceeded, nil)
	return url
}

func (o *Orchestrator) video(ctx context.Context, req Request, result *Result, logf logFunc) string {
	url, err := o.renderVideo(ctx, generation.RenderRequest{
		Script:   result.Script,
		ImageURL: result.ImageURL,
		AudioURL: result.AudioURL,
		Type:     req.Type,
	})
	if err != nil {
		logf("video assembly failed, using mock video: %v", err)
		result.record(StepVideo, OutcomeFallback, err)
		return generation.FallbackVideoURL(req.Type, o.opts.Now())
	}
	result.record(StepVideo, OutcomeSucceeded, nil)
	return url
}

func (o *Orchestrator) renderVideo(ctx context.Context, req generation.RenderRequest) (string, error) {
	if o.deps.Video == nil {
		return "", generation.ErrNotConfigured
	}
	jobID, err := o.deps.Video.SubmitRender(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to submit render: %w", err)
	}
	return o.pollRender(ctx, jobID)
}

// host uploads the deliverables concurrently. Placeholder media from a
// fallback step is not uploaded, narration already on the media host is
// reused as is, and any upload error empties the whole set.
func (o *Orchestrator) host(ctx context.Context, req Request, result *Result, logf logFunc) HostedURLs {
	if o.deps.Host == nil {
		result.record(StepHosting, OutcomeSkipped, generation.ErrNotConfigured)
		return HostedURLs{}
	}

	var hosted HostedURLs
	g, gctx := errgroup.WithContext(ctx)

	if result.Outcome(StepVideo) == OutcomeSucceeded {
		g.Go(func() error {
			url, err := o.deps.Host.Host(gctx, generation.Asset{
				Kind:      generation.AssetVideo,
				Name:      assetName(req, o.opts.Now(), "mp4"),
				SourceURL: result.VideoURL,
			})
			hosted.Video = url
			return err
		})
	}
	if result.Outcome(StepAudio) == OutcomeSucceeded && o.speechIsHosted() {
		hosted.Audio = result.AudioURL
	} else if result.Outcome(StepAudio) == OutcomeSucceeded {
		g.Go(func() error {
			url, err := o.deps.Host.Host(gctx, generation.Asset{
				Kind:      generation.AssetAudio,
				Name:      assetName(req, o.opts.Now(), "mp3"),
				SourceURL: result.AudioURL,
			})
			hosted.Audio = url
			return err
		})
	}
	g.Go(func() error {
		url, err := o.deps.Host.Host(gctx, generation.Asset{
			Kind:        generation.AssetScript,
			Name:        assetName(req, o.opts.Now(), "txt"),
			Data:        []byte(result.Script),
			ContentType: "text/plain; charset=utf-8",
		})
		hosted.Script = url
		return err
	})

	if err := g.Wait(); err != nil {
		err = fmt.Errorf("%w: %v", generation.ErrHostingUnavailable, err)
		logf("hosting failed, returning no hosted urls: %v", err)
		result.record(StepHosting, OutcomeSkipped, err)
		return HostedURLs{}
	}
	result.record(StepHosting, OutcomeSucceeded, nil)
	return hosted
}

func (o *Orchestrator) speechIsHosted() bool {
	h, ok := o.deps.Speech.(generation.HostedSpeech)
	return ok && h.HostsAudio()
}

func assetName(req Request, at time.Time, ext string) string {
	if req.ProjectID == uuid.Nil {
		return fmt.Sprintf("%d_%s.%s", at.UnixMilli(), req.Type, ext)
	}
	return fmt.Sprintf("%s.%s", req.ProjectID, ext)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
