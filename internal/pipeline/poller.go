package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"neuroforge-backend/internal/generation"
)

// pollRender waits for a submitted render to reach a terminal state.
// A status call error stops polling immediately.
func (o *Orchestrator) pollRender(ctx context.Context, jobID string) (string, error) {
	ticker := time.NewTicker(o.opts.PollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= o.opts.MaxPollAttempts; attempt++ {
		job, err := o.deps.Video.RenderStatus(ctx, jobID)
		if err != nil {
			return "", fmt.Errorf("failed to poll render %s: %w", jobID, err)
		}

		switch job.Status {
		case generation.RenderSucceeded:
			if job.URL == "" {
				return "", fmt.Errorf("%w: render %s succeeded without url", generation.ErrRenderFailed, jobID)
			}
			return job.URL, nil
		case generation.RenderFailed:
			if job.ErrorMessage != "" {
				return "", fmt.Errorf("%w: %s", generation.ErrRenderFailed, job.ErrorMessage)
			}
			return "", generation.ErrRenderFailed
		}

		log.Printf("[pipeline] render %s is %s (attempt %d/%d)", jobID, job.Status, attempt, o.opts.MaxPollAttempts)
		if attempt == o.opts.MaxPollAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}

	return "", fmt.Errorf("%w: render %s after %d attempts", generation.ErrRenderTimeout, jobID, o.opts.MaxPollAttempts)
}
