package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "staffdir/pkg/domain-errors"
)

// TestParseEmployeeID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty UUIDs"
func TestParseEmployeeID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseEmployeeID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseEmployeeID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts nil UUID as well formed", func(t *testing.T) {
		id, err := ParseEmployeeID(uuid.Nil.String())
		require.NoError(t, err)
		assert.True(t, id.IsNil())
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseEmployeeID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, EmployeeID(validUUID), id)
	})
}

// TestParseEmployeeID_BoundaryInputs covers inputs that arrive as path
// segments and must never be accepted.
func TestParseEmployeeID_BoundaryInputs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Unicode zero-width space", "550e8400\u200B-e29b-41d4-a716-446655440000", true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEmployeeID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewEmployeeID_Distinct(t *testing.T) {
	seen := make(map[EmployeeID]struct{}, 1000)
	for range 1000 {
		id := NewEmployeeID()
		require.False(t, id.IsNil())
		_, dup := seen[id]
		require.False(t, dup, "duplicate id generated")
		seen[id] = struct{}{}
	}
}

func TestEmployeeID_JSON(t *testing.T) {
	id := NewEmployeeID()

	b, err := json.Marshal(struct {
		ID EmployeeID `json:"id"`
	}{ID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+id.String()+`"}`, string(b))

	var decoded struct {
		ID EmployeeID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, id, decoded.ID)
}
