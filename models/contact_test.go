package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteContactNormalize(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantName  string
		wantPhone *string
		wantEmail *string
	}{
		{
			name:      "Full record",
			payload:   `{"name": " Alice ", "phone": "1 2 3", "email": "a@example.com"}`,
			wantName:  "Alice",
			wantPhone: strPtr("123"),
			wantEmail: strPtr("a@example.com"),
		},
		{
			name:      "Missing name falls back to placeholder",
			payload:   `{"phone": "123"}`,
			wantName:  "(No name)",
			wantPhone: strPtr("123"),
		},
		{
			name:     "Whitespace-only phone becomes null",
			payload:  `{"name": "A", "phone": "  \t "}`,
			wantName: "A",
		},
		{
			name:      "Numeric fields are accepted",
			payload:   `{"name": 42, "phone": 5550100}`,
			wantName:  "42",
			wantPhone: strPtr("5550100"),
		},
		{
			name:     "Null and nested values collapse",
			payload:  `{"name": null, "phone": {"x": 1}, "email": null}`,
			wantName: "(No name)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rc RemoteContact
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &rc))

			name, phone, email := rc.Normalize()
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantPhone, phone)
			assert.Equal(t, tt.wantEmail, email)
		})
	}
}

func strPtr(s string) *string { return &s }
