// Unit tests for the tri-state patch type: omitted keys stay unset,
// explicit nulls record a clear, and values round-trip.
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskPatchUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, p TaskPatch)
	}{
		{
			name: "omitted keys remain unset",
			body: `{}`,
			check: func(t *testing.T, p TaskPatch) {
				assert.True(t, p.Empty())
				assert.False(t, p.Due.Set)
				assert.False(t, p.Title.Set)
			},
		},
		{
			name: "explicit null records a clear",
			body: `{"due": null}`,
			check: func(t *testing.T, p TaskPatch) {
				assert.True(t, p.Due.Set)
				assert.True(t, p.Due.Null)
				assert.False(t, p.Step.Set)
			},
		},
		{
			name: "value is carried",
			body: `{"title": "buy milk", "completed": true}`,
			check: func(t *testing.T, p TaskPatch) {
				require.True(t, p.Title.Set)
				assert.False(t, p.Title.Null)
				assert.Equal(t, "buy milk", p.Title.Value)
				require.True(t, p.Completed.Set)
				assert.True(t, p.Completed.Value)
			},
		},
		{
			name: "null and value in the same patch",
			body: `{"step": null, "priority": "High"}`,
			check: func(t *testing.T, p TaskPatch) {
				assert.True(t, p.Step.Set)
				assert.True(t, p.Step.Null)
				require.True(t, p.Priority.Set)
				assert.Equal(t, PriorityHigh, p.Priority.Value)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p TaskPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			tt.check(t, p)
		})
	}
}

func TestTaskPatchValidate(t *testing.T) {
	tests := []struct {
		name    string
		patch   TaskPatch
		wantErr error
	}{
		{
			name:    "empty patch is valid",
			patch:   TaskPatch{},
			wantErr: nil,
		},
		{
			name:    "whitespace title is rejected",
			patch:   TaskPatch{Title: Some("   ")},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "null title is rejected",
			patch:   TaskPatch{Title: Null[string]()},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "unknown priority is rejected",
			patch:   TaskPatch{Priority: Some(Priority("Urgent"))},
			wantErr: ErrInvalidPriority,
		},
		{
			name:    "null priority is rejected",
			patch:   TaskPatch{Priority: Null[Priority]()},
			wantErr: ErrInvalidPriority,
		},
		{
			name: "clearing optionals is valid",
			patch: TaskPatch{
				Due:  Null[string](),
				Step: Null[string](),
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOptionalMarshal(t *testing.T) {
	data, err := json.Marshal(Some("x"))
	require.NoError(t, err)
	assert.JSONEq(t, `"x"`, string(data))

	data, err = json.Marshal(Null[string]())
	require.NoError(t, err)
	assert.JSONEq(t, `null`, string(data))
}
