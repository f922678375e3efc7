package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devsrctool/internal/sink"
	"devsrctool/pkg/domain"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(nil)

	s := m.Create(4)
	require.NotEmpty(t, s.ID)

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Len(t, m.List(), 1)

	require.NoError(t, m.Delete(s.ID))
	_, ok = m.Get(s.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, m.Delete(s.ID), ErrNotFound)
}

func TestDeleteClosesSink(t *testing.T) {
	m := NewManager(nil)
	s := m.Create(1)

	require.NoError(t, m.Delete(s.ID))

	pipeline, err := domain.NewPipelineID(1, 1)
	require.NoError(t, err)
	err = s.Sink().Send(domain.ControlMsg{Type: domain.ControlMsgCreateSourceActor, PipelineID: pipeline})
	assert.ErrorIs(t, err, sink.ErrClosed)
}

func TestClear(t *testing.T) {
	m := NewManager(nil)
	m.Create(1)
	m.Create(1)

	m.Clear()
	assert.Empty(t, m.List())
}
