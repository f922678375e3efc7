package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devsrctool/pkg/domain"
)

func TestNotifyDebuggeeAdded(t *testing.T) {
	n := NewNotifier(nil)
	pipeline, err := domain.NewPipelineID(1, 4)
	require.NoError(t, err)
	worker, err := domain.ParseWorkerID("936da01f-9abd-4d9d-80c7-02af85c822a8")
	require.NoError(t, err)

	var order []string
	n.Register(func(ev domain.DebuggeeAddedEvent) {
		order = append(order, "first")
		assert.Equal(t, pipeline, ev.PipelineID)
		require.NotNil(t, ev.WorkerID)
		assert.Equal(t, worker.String(), ev.WorkerID.String())
	})
	n.Register(func(ev domain.DebuggeeAddedEvent) {
		order = append(order, "second")
	})

	status := n.NotifyDebuggeeAdded(pipeline, &worker)
	assert.Equal(t, StatusNotCanceled, status)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestUnregister(t *testing.T) {
	n := NewNotifier(nil)
	pipeline, err := domain.NewPipelineID(1, 1)
	require.NoError(t, err)

	calls := 0
	unregister := n.Register(func(domain.DebuggeeAddedEvent) { calls++ })

	n.NotifyDebuggeeAdded(pipeline, nil)
	unregister()
	n.NotifyDebuggeeAdded(pipeline, nil)

	assert.Equal(t, 1, calls)
}

func TestNotifyWithoutListeners(t *testing.T) {
	n := NewNotifier(nil)
	pipeline, err := domain.NewPipelineID(2, 3)
	require.NoError(t, err)

	assert.Equal(t, StatusNotCanceled, n.NotifyDebuggeeAdded(pipeline, nil))
}
