package team

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	alice := map[string]any{"name": "Alice"}
	bob := map[string]any{"name": "Bob"}

	testCases := []struct {
		name     string
		input    any
		expected []any
	}{
		{
			name:     "direct list",
			input:    map[string]any{"team_members": []any{alice, bob}},
			expected: []any{alice, bob},
		},
		{
			name:     "camelCase container key",
			input:    map[string]any{"teamMembers": []any{alice}},
			expected: []any{alice},
		},
		{
			name:     "members container key",
			input:    map[string]any{"members": []any{bob}},
			expected: []any{bob},
		},
		{
			name:     "JSON-encoded list",
			input:    map[string]any{"team_members": `[{"name":"Alice"}]`},
			expected: []any{alice},
		},
		{
			name:     "JSON-encoded object with members",
			input:    map[string]any{"team_members": `{"members":[{"name":"Bob"}]}`},
			expected: []any{bob},
		},
		{
			name:     "nested object with members list",
			input:    map[string]any{"team_members": map[string]any{"members": []any{alice}}},
			expected: []any{alice},
		},
		{
			name:     "raw value instead of a registration",
			input:    []any{alice, bob},
			expected: []any{alice, bob},
		},
		{
			name:     "raw JSON string instead of a registration",
			input:    `[{"name":"Alice"}]`,
			expected: []any{alice},
		},
		{
			name:     "json.RawMessage straight from the store",
			input:    json.RawMessage(`[{"name":"Bob"}]`),
			expected: []any{bob},
		},
		{
			name:     "stored string literal wrapping an encoded list",
			input:    json.RawMessage(`"[{\"name\":\"Alice\"}]"`),
			expected: []any{alice},
		},
		{
			name:     "stored string literal wrapping a members object",
			input:    json.RawMessage(`"{\"members\":[{\"name\":\"Bob\"}]}"`),
			expected: []any{bob},
		},
		{
			name:     "malformed JSON swallowed",
			input:    map[string]any{"team_members": `[{"name": busted`},
			expected: []any{},
		},
		{
			name:     "JSON scalar is not a member list",
			input:    map[string]any{"team_members": `42`},
			expected: []any{},
		},
		{
			name:     "unknown shape",
			input:    map[string]any{"team_members": 17},
			expected: []any{},
		},
		{
			name:     "nil registration",
			input:    nil,
			expected: []any{},
		},
		{
			name:     "object without any container key",
			input:    map[string]any{"name": "solo"},
			expected: []any{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Extract(tc.input))
		})
	}
}

func TestExtractIsStable(t *testing.T) {
	input := map[string]any{"team_members": `[{"name":"Alice"},{"name":"Bob"}]`}
	first := Extract(input)
	second := Extract(input)
	assert.Equal(t, first, second)
}

// Registration arriving with a JSON-string team_members field flows through
// Extract and Normalize into a display-ready member.
func TestExtractThenNormalize(t *testing.T) {
	reg := map[string]any{
		"team_members": `[{"name":"X","email":"x@y.com","cnic":"3520112345671"}]`,
	}

	raw := Extract(reg)
	require.Len(t, raw, 1)

	member := Normalize(raw[0])
	assert.Equal(t, "X", member.Name)
	assert.Equal(t, "x@y.com", member.Email)
	assert.Equal(t, "35201-1234567-1", member.CNICFormatted)
}

func TestMembers(t *testing.T) {
	members := Members(json.RawMessage(`{"members":[{"member_name":"Z","cnic_digits":"3520112345671"}]}`))
	require.Len(t, members, 1)
	assert.Equal(t, "Z", members[0].Name)
	assert.Equal(t, "35201-1234567-1", members[0].CNICFormatted)

	assert.Empty(t, Members(nil))
	assert.Empty(t, Members(json.RawMessage(`not json`)))
}

// A registration created with team_members as a JSON-encoded string is stored
// as a JSON string literal; reading it back must still yield the team.
func TestMembersFromStoredStringLiteral(t *testing.T) {
	var reg struct {
		TeamMembers json.RawMessage `json:"team_members"`
	}
	body := `{"team_members":"[{\"name\":\"X\",\"email\":\"x@y.com\",\"cnic\":\"3520112345671\"}]"}`
	require.NoError(t, json.Unmarshal([]byte(body), &reg))

	members := Members(reg.TeamMembers)
	require.Len(t, members, 1)
	assert.Equal(t, "X", members[0].Name)
	assert.Equal(t, "x@y.com", members[0].Email)
	assert.Equal(t, "35201-1234567-1", members[0].CNICFormatted)
}
