package team

import (
	"encoding/json"

	"github.com/memalihaider/techverse-portal/internal/models"
)

var containerKeys = []string{"team_members", "teamMembers", "members"}

// Extract flattens a registration's team-membership data into an ordered list
// of raw member records. The input may be a whole registration object, or the
// team-members value itself in any of the shapes legacy records hold: a plain
// array, a JSON-encoded string (array or {"members": [...]}), or an object
// wrapping a members array. Broken JSON and unknown shapes come back as an
// empty list; callers never see an error from here.
//
// This is the single shape-detection chokepoint. Admin listing, the portal,
// exports and the bot all go through it instead of sniffing shapes locally.
func Extract(registration any) []any {
	if registration == nil {
		return []any{}
	}

	raw := registration
	if obj, ok := registration.(map[string]any); ok {
		for _, key := range containerKeys {
			if v, found := obj[key]; found && v != nil {
				raw = v
				break
			}
		}
	}

	return coerce(raw)
}

func coerce(raw any) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case string:
		return parseEncoded([]byte(v))
	case []byte:
		return parseEncoded(v)
	case json.RawMessage:
		return parseEncoded(v)
	case map[string]any:
		if members, ok := v["members"].([]any); ok {
			return members
		}
	}
	return []any{}
}

func parseEncoded(data []byte) []any {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return []any{}
	}
	switch v := parsed.(type) {
	case []any:
		return v
	case string:
		// A stored JSON string literal holds another encoded layer.
		return parseEncoded([]byte(v))
	case map[string]any:
		if members, ok := v["members"].([]any); ok {
			return members
		}
	}
	return []any{}
}

// Members runs Extract and Normalize in one go, yielding canonical members
// ready for display or export.
func Members(registration any) []models.TeamMember {
	raw := Extract(registration)
	members := make([]models.TeamMember, 0, len(raw))
	for _, entry := range raw {
		members = append(members, Normalize(entry))
	}
	return members
}
