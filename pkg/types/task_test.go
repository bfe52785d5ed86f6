package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   NewTask
		wantErr error
	}{
		{
			name:    "missing title",
			input:   NewTask{},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "whitespace-only title",
			input:   NewTask{Title: "   "},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "unknown priority",
			input:   NewTask{Title: "x", Priority: "Critical"},
			wantErr: ErrInvalidPriority,
		},
		{
			name:    "title only is valid",
			input:   NewTask{Title: "x"},
			wantErr: nil,
		},
		{
			name:    "empty priority defaults later and is valid",
			input:   NewTask{Title: "x", Priority: ""},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTaskJSONOptionalsOmitted(t *testing.T) {
	// Absent optionals must not appear as nulls on the wire.
	data, err := json.Marshal(Task{ID: "1", Title: "x", Priority: PriorityMedium})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotContains(t, m, "due")
	assert.NotContains(t, m, "step")
	assert.Equal(t, "Medium", m["priority"])
}
