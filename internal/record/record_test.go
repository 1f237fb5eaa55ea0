package record_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgdesk/admin/internal/record"
)

func TestID_UnmarshalJSON(t *testing.T) {
	type payload struct {
		ID       record.ID `json:"id"`
		ParentID record.ID `json:"parent_id"`
	}

	tests := []struct {
		name       string
		input      string
		wantID     record.ID
		wantParent record.ID
	}{
		{name: "Numbers", input: `{"id": 12, "parent_id": 3}`, wantID: "12", wantParent: "3"},
		{name: "Strings", input: `{"id": "a", "parent_id": "b"}`, wantID: "a", wantParent: "b"},
		{name: "NullParent", input: `{"id": 1, "parent_id": null}`, wantID: "1", wantParent: ""},
		{name: "MissingParent", input: `{"id": 1}`, wantID: "1", wantParent: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, tt.wantParent, got.ParentID)
		})
	}
}

func TestID_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(map[string]record.ID{"a": "7", "b": "x-1", "c": ""})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 7, "b": "x-1", "c": null}`, string(out))
}

func TestID_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "Number", input: `{"id":42}`},
		{name: "NegativeNumber", input: `{"id":-3}`},
		{name: "LeadingZeros", input: `{"id":"007"}`},
		{name: "PlusSign", input: `{"id":"+5"}`},
		{name: "NegativeZero", input: `{"id":"-0"}`},
		{name: "Text", input: `{"id":"ab-1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got struct {
				ID record.ID `json:"id"`
			}

			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))

			out, err := json.Marshal(got)
			require.NoError(t, err)
			assert.JSONEq(t, tt.input, string(out))
		})
	}
}

func TestFlag_UnmarshalJSON(t *testing.T) {
	var got struct {
		A record.Flag `json:"a"`
		B record.Flag `json:"b"`
		C record.Flag `json:"c"`
		D record.Flag `json:"d"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a": 1, "b": 0, "c": true, "d": false}`), &got))
	assert.True(t, bool(got.A))
	assert.False(t, bool(got.B))
	assert.True(t, bool(got.C))
	assert.False(t, bool(got.D))

	assert.Error(t, json.Unmarshal([]byte(`{"a": 2}`), &got))
}
