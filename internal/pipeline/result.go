package pipeline

import (
	"errors"
	"fmt"

	"neuroforge-backend/internal/generation"
)

type Step string

const (
	StepValidate Step = "validate"
	StepScript   Step = "script"
	StepImage    Step = "image"
	StepAudio    Step = "audio"
	StepVideo    Step = "video"
	StepHosting  Step = "hosting"
)

// Outcome says how a step ended. A fallback step carries a static substitute;
// a skipped step produced nothing and nothing was substituted.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFallback  Outcome = "fallback"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeRejected  Outcome = "rejected"
)

type StepReport struct {
	Step    Step    `json:"step"`
	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`
}

type HostedURLs struct {
	Video  string `json:"video,omitempty"`
	Audio  string `json:"audio,omitempty"`
	Script string `json:"script,omitempty"`
}

func (h HostedURLs) IsEmpty() bool {
	return h.Video == "" && h.Audio == "" && h.Script == ""
}

// RejectedError is returned when the validator refuses a prompt.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Reason == "" {
		return "Prompt rejeitado"
	}
	return fmt.Sprintf("Prompt rejeitado: %s", e.Reason)
}

func (e *RejectedError) Is(target error) bool {
	return target == generation.ErrValidationRejected
}

// Result accumulates one run's outputs.
type Result struct {
	Analysis string
	Script   string
	ImageURL string
	AudioURL string
	VideoURL string
	Hosted   HostedURLs
	Steps    []StepReport
	// Err is set only when the run was rejected.
	Err error
}

func (r *Result) Rejected() bool {
	return errors.Is(r.Err, generation.ErrValidationRejected)
}

// Degraded reports whether any step fell back or was skipped.
func (r *Result) Degraded() bool {
	for _, s := range r.Steps {
		if s.Outcome == OutcomeFallback || s.Outcome == OutcomeSkipped {
			return true
		}
	}
	return false
}

// Outcome returns the recorded outcome of step, or "" if it never ran.
func (r *Result) Outcome(step Step) Outcome {
	for _, s := range r.Steps {
		if s.Step == step {
			return s.Outcome
		}
	}
	return ""
}

func (r *Result) record(step Step, outcome Outcome, err error) {
	report := StepReport{Step: step, Outcome: outcome}
	if err != nil {
		report.Error = err.Error()
	}
	r.Steps = append(r.Steps, report)
}
