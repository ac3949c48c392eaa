package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memalihaider/techverse-portal/internal/models"
)

func TestWriteRegistrations(t *testing.T) {
	regs := []models.Registration{
		{
			ID:        1,
			CreatedAt: 1767175200,
			Name:      "Ayesha Khan",
			Email:     "ayesha@uni.edu.pk",
			CNIC:      "3520112345671",
			Module:    models.ModuleBusinessInnovation,
			TeamName:  "AgriSense",
			Status:    models.StatusApproved,
			TeamMembers: json.RawMessage(
				`[{"name":"Bilal","email":"bilal@uni.edu.pk","roll_no":"F2026-002","cnic":"3520176543219"},
				  {"full_name":"Sana","member_email":"sana@uni.edu.pk"}]`),
		},
		{
			ID:          2,
			Name:        "Solo Entry",
			Email:       "solo@uni.edu.pk",
			CNIC:        "junk",
			Module:      "speed_programming",
			Status:      models.StatusPending,
			TeamMembers: json.RawMessage(`[]`),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRegistrations(&buf, regs))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	header := rows[0]
	// 16 base columns plus 4 per member slot, sized to the largest team.
	assert.Len(t, header, 16+2*4)
	assert.Equal(t, "member1_name", header[16])
	assert.Equal(t, "member2_cnic", header[23])

	first := rows[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "35201-1234567-1", first[4])
	assert.Equal(t, "2", first[15])
	assert.Equal(t, "Bilal", first[16])
	assert.Equal(t, "35201-7654321-9", first[19])
	assert.Equal(t, "Sana", first[20])
	assert.Equal(t, "", first[23])

	second := rows[2]
	assert.Equal(t, "junk", second[4])
	assert.Equal(t, "0", second[15])
	for _, cell := range second[16:] {
		assert.Equal(t, "", cell)
	}
}

func TestWriteRegistrationsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRegistrations(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 16)
}
