package supabase

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInserter struct {
	rows []projectEventRow
	err  error
}

func (f *fakeInserter) insertEvent(row projectEventRow) error {
	f.rows = append(f.rows, row)
	return f.err
}

func TestRealtimeClient_Disabled(t *testing.T) {
	client := NewRealtimeClient(nil)
	assert.False(t, client.Enabled())
	assert.NoError(t, client.PublishProjectEvent(uuid.New(), "processing_started", nil))
}

func TestRealtimeClient_PublishProjectEvent(t *testing.T) {
	inserter := &fakeInserter{}
	client := &RealtimeClient{inserter: inserter}
	projectID := uuid.New()

	err := client.PublishProjectEvent(projectID, "processing_completed", map[string]interface{}{"status": "completed"})
	require.NoError(t, err)

	require.Len(t, inserter.rows, 1)
	row := inserter.rows[0]
	assert.Equal(t, projectID.String(), row.ProjectID)
	assert.Equal(t, "processing_completed", row.Event)
	assert.Equal(t, "completed", row.Payload["status"])
	assert.Equal(t, "project:"+projectID.String(), row.Payload["channel"])
}

func TestRealtimeClient_PublishError(t *testing.T) {
	client := &RealtimeClient{inserter: &fakeInserter{err: errors.New("401")}}

	err := client.PublishProjectEvent(uuid.New(), "processing_failed", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "processing_failed")
}
