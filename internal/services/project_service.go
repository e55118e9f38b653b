package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"neuroforge-backend/internal/models"
	"neuroforge-backend/internal/pipeline"
	"neuroforge-backend/internal/store"
)

const interruptedMessage = "processing interrupted by server restart"

// Runner executes one pipeline run.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) *pipeline.Result
}

// EventPublisher pushes project lifecycle events to subscribed dashboards.
type EventPublisher interface {
	PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error
}

// ProjectService accepts generation requests and runs them in the
// background. It is the only writer of terminal project status.
type ProjectService struct {
	store   store.Store
	runner  Runner
	events  EventPublisher
	timeout time.Duration
	now     func() time.Time

	runCtx    context.Context
	cancelRun context.CancelFunc
	wg        sync.WaitGroup
}

func NewProjectService(s store.Store, runner Runner, events EventPublisher, timeout time.Duration) *ProjectService {
	runCtx, cancelRun := context.WithCancel(context.Background())
	return &ProjectService{
		store:     s,
		runner:    runner,
		events:    events,
		timeout:   timeout,
		now:       func() time.Time { return time.Now().UTC() },
		runCtx:    runCtx,
		cancelRun: cancelRun,
	}
}

// Submit records the project as processing and starts the pipeline without
// waiting for it.
func (s *ProjectService) Submit(ctx context.Context, ownerID uuid.UUID, contentType models.ContentType, prompt string) (*models.Project, error) {
	project, err := s.store.CreateProject(ctx, ownerID, contentType, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.publish(project.ID, "processing_started", ProcessingStartedPayload(project))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.process(project.ID, pipeline.Request{
			ProjectID: project.ID,
			Prompt:    prompt,
			Type:      contentType,
		})
	}()

	return project, nil
}

// Wait blocks until every dispatched run has written its terminal status.
func (s *ProjectService) Wait() {
	s.wg.Wait()
}

// Shutdown cancels in-flight runs and waits for their terminal updates until
// ctx is done. Canceled runs are recorded as interrupted.
func (s *ProjectService) Shutdown(ctx context.Context) error {
	s.cancelRun()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("runs still in flight: %w", ctx.Err())
	}
}

func (s *ProjectService) process(projectID uuid.UUID, req pipeline.Request) {
	ctx := s.runCtx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result := s.runner.Run(ctx, req)
	if s.runCtx.Err() != nil {
		if err := s.failInterrupted(context.Background(), projectID); err != nil {
			log.Printf("[project %s] failed to mark interrupted project: %v", projectID, err)
		}
		return
	}
	s.complete(projectID, result)
}

// complete writes the single terminal update for a run.
func (s *ProjectService) complete(projectID uuid.UUID, result *pipeline.Result) {
	// Detached from the run context so a timed-out run still records its outcome.
	ctx := context.Background()

	if result.Rejected() {
		status := models.StatusFailed
		_, err := s.store.UpdateProject(ctx, projectID, models.ProjectUpdate{
			Status: &status,
			Metadata: map[string]interface{}{
				"error":    result.Err.Error(),
				"failedAt": s.now().Format(time.RFC3339),
				"steps":    result.Steps,
			},
		})
		if err != nil {
			log.Printf("[project %s] failed to record rejection: %v", projectID, err)
			return
		}
		s.publish(projectID, "processing_failed", ProcessingFailedPayload(projectID, result.Err.Error()))
		return
	}

	status := models.StatusCompleted
	metadata := map[string]interface{}{
		"analysis":    result.Analysis,
		"processedAt": s.now().Format(time.RFC3339),
		"imageUrl":    result.ImageURL,
		"steps":       result.Steps,
		"degraded":    result.Degraded(),
	}
	if !result.Hosted.IsEmpty() {
		metadata["hostedUrls"] = result.Hosted
	}

	_, err := s.store.UpdateProject(ctx, projectID, models.ProjectUpdate{
		Status:      &status,
		LinkVideo:   &result.VideoURL,
		LinkRoteiro: &result.Script,
		LinkAudio:   &result.AudioURL,
		Metadata:    metadata,
	})
	if err != nil {
		log.Printf("[project %s] failed to record completion: %v", projectID, err)
		return
	}
	s.publish(projectID, "processing_completed", ProcessingCompletedPayload(projectID, result))
}

// FailInterrupted marks projects left in processing by a previous process as
// failed. Their runs were lost with that process and are not resumed.
func (s *ProjectService) FailInterrupted(ctx context.Context, olderThan time.Duration) (int, error) {
	stuck, err := s.store.ListProjectsByStatus(ctx, models.StatusProcessing, s.now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to list processing projects: %w", err)
	}

	failed := 0
	for _, p := range stuck {
		if err := s.failInterrupted(ctx, p.ID); err != nil {
			log.Printf("[project %s] failed to mark interrupted project: %v", p.ID, err)
			continue
		}
		failed++
	}
	return failed, nil
}

func (s *ProjectService) failInterrupted(ctx context.Context, projectID uuid.UUID) error {
	status := models.StatusFailed
	_, err := s.store.UpdateProject(ctx, projectID, models.ProjectUpdate{
		Status: &status,
		Metadata: map[string]interface{}{
			"error":    interruptedMessage,
			"failedAt": s.now().Format(time.RFC3339),
		},
	})
	if err != nil {
		return err
	}
	s.publish(projectID, "processing_failed", ProcessingFailedPayload(projectID, interruptedMessage))
	return nil
}

func (s *ProjectService) publish(projectID uuid.UUID, event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishProjectEvent(projectID, event, payload); err != nil {
		log.Printf("[project %s] failed to publish %s: %v", projectID, event, err)
	}
}
