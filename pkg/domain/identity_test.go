package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipelineID(t *testing.T) {
	tests := []struct {
		name        string
		namespaceID uint32
		index       uint32
		wantErr     bool
	}{
		{name: "valid", namespaceID: 1, index: 2, wantErr: false},
		{name: "zero namespace is allowed", namespaceID: 0, index: 1, wantErr: false},
		{name: "zero index rejected", namespaceID: 1, index: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewPipelineID(tt.namespaceID, tt.index)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrZeroPipelineIndex)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.namespaceID, id.NamespaceID)
			assert.Equal(t, tt.index, id.Index)
		})
	}
}

func TestPipelineIDString(t *testing.T) {
	id, err := NewPipelineID(3, 7)
	require.NoError(t, err)
	assert.Equal(t, "(3,7)", id.String())
}

func TestParseWorkerID(t *testing.T) {
	const raw = "936da01f-9abd-4d9d-80c7-02af85c822a8"

	id, err := ParseWorkerID(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, id.String())

	_, err = ParseWorkerID("not-a-worker-id")
	assert.Error(t, err)
}
