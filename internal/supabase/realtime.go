package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

const eventsTable = "project_events"

// eventInserter is the slice of the PostgREST client the realtime client uses.
type eventInserter interface {
	insertEvent(row projectEventRow) error
}

type projectEventRow struct {
	ProjectID string                 `json:"project_id"`
	Event     string                 `json:"event"`
	Payload   map[string]interface{} `json:"payload"`
}

type postgrestInserter struct {
	client *supabase.Client
}

func (p postgrestInserter) insertEvent(row projectEventRow) error {
	_, _, err := p.client.From(eventsTable).Insert(row, false, "", "minimal", "").Execute()
	return err
}

// RealtimeClient publishes project events by inserting rows into
// project_events; Supabase Realtime broadcasts the inserts to subscribers.
type RealtimeClient struct {
	inserter eventInserter
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	if client == nil {
		return &RealtimeClient{}
	}
	return &RealtimeClient{inserter: postgrestInserter{client: client}}
}

// Enabled reports whether events are actually delivered.
func (r *RealtimeClient) Enabled() bool {
	return r.inserter != nil
}

func (r *RealtimeClient) PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error {
	if r.inserter == nil {
		return nil
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["channel"] = fmt.Sprintf("project:%s", projectID.String())

	if err := r.inserter.insertEvent(projectEventRow{
		ProjectID: projectID.String(),
		Event:     event,
		Payload:   payload,
	}); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event, err)
	}
	return nil
}
