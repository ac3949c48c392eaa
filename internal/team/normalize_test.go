package team

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/memalihaider/techverse-portal/internal/models"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		raw      any
		expected models.TeamMember
	}{
		{
			name: "canonical field names",
			raw: map[string]any{
				"name":       "Ayesha Khan",
				"email":      "ayesha@uni.edu.pk",
				"university": "UMT",
				"rollNo":     "F21-1234",
				"cnic":       "3520112345671",
			},
			expected: models.TeamMember{
				Name:          "Ayesha Khan",
				Email:         "ayesha@uni.edu.pk",
				University:    "UMT",
				RollNo:        "F21-1234",
				CNICDigits:    "3520112345671",
				CNICFormatted: "35201-1234567-1",
			},
		},
		{
			name: "legacy field name variants",
			raw: map[string]any{
				"full_name":     "Bilal Ahmed",
				"email_address": "bilal@uni.edu.pk",
				"uni":           "LUMS",
				"roll_no":       "2021-0042",
				"CNIC":          "35201-7654321-9",
			},
			expected: models.TeamMember{
				Name:          "Bilal Ahmed",
				Email:         "bilal@uni.edu.pk",
				University:    "LUMS",
				RollNo:        "2021-0042",
				CNICDigits:    "3520176543219",
				CNICFormatted: "35201-7654321-9",
			},
		},
		{
			name: "first variant wins over later ones",
			raw: map[string]any{
				"name":        "Primary",
				"member_name": "Fallback",
			},
			expected: models.TeamMember{Name: "Primary"},
		},
		{
			name: "nil values are skipped",
			raw: map[string]any{
				"name":        nil,
				"member_name": "Fallback",
			},
			expected: models.TeamMember{Name: "Fallback"},
		},
		{
			name: "numeric roll number and cnic survive",
			raw: map[string]any{
				"name": "Numbers",
				"roll": float64(1234),
				"cnic": float64(3520112345671),
			},
			expected: models.TeamMember{
				Name:          "Numbers",
				RollNo:        "1234",
				CNICDigits:    "3520112345671",
				CNICFormatted: "35201-1234567-1",
			},
		},
		{
			name: "malformed cnic degrades gracefully",
			raw: map[string]any{
				"cnic_no": "12-34",
			},
			expected: models.TeamMember{
				CNICDigits:    "1234",
				CNICFormatted: "1234",
			},
		},
		{
			name:     "empty object",
			raw:      map[string]any{},
			expected: models.TeamMember{},
		},
		{
			name:     "nil input",
			raw:      nil,
			expected: models.TeamMember{},
		},
		{
			name:     "non-object input",
			raw:      "just a string",
			expected: models.TeamMember{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.raw))
		})
	}
}
