package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	StatusProcessing ProjectStatus = "processing"
	StatusCompleted  ProjectStatus = "completed"
	StatusFailed     ProjectStatus = "failed"
)

// IsTerminal reports whether the status will never change again.
func (s ProjectStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Project is one generation request and its deliverables. The JSON shape is
// the one the dashboard polls.
type Project struct {
	ID          uuid.UUID              `json:"id"`
	UserID      uuid.UUID              `json:"userId"`
	Type        ContentType            `json:"type"`
	Prompt      string                 `json:"prompt"`
	Status      ProjectStatus          `json:"status"`
	LinkVideo   *string                `json:"linkVideo"`
	LinkRoteiro *string                `json:"linkRoteiro"`
	LinkAudio   *string                `json:"linkAudio"`
	Metadata    map[string]interface{} `json:"metadata"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// ProjectUpdate is a partial update. Nil fields are left untouched and
// Metadata keys are merged into the existing map.
type ProjectUpdate struct {
	Status      *ProjectStatus
	LinkVideo   *string
	LinkRoteiro *string
	LinkAudio   *string
	Metadata    map[string]interface{}
}

// Apply merges the update into p.
func (u ProjectUpdate) Apply(p *Project) {
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.LinkVideo != nil {
		p.LinkVideo = u.LinkVideo
	}
	if u.LinkRoteiro != nil {
		p.LinkRoteiro = u.LinkRoteiro
	}
	if u.LinkAudio != nil {
		p.LinkAudio = u.LinkAudio
	}
	if len(u.Metadata) > 0 {
		if p.Metadata == nil {
			p.Metadata = make(map[string]interface{}, len(u.Metadata))
		}
		for k, v := range u.Metadata {
			p.Metadata[k] = v
		}
	}
}
