package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/memalihaider/techverse-portal/internal/models"
	"github.com/memalihaider/techverse-portal/internal/team"
)

// WriteRegistrations writes one CSV row per registration with the canonical
// team members flattened into memberN_* columns. The member column count is
// sized to the largest team in the batch, so every row has the same width.
func WriteRegistrations(w io.Writer, regs []models.Registration) error {
	teams := make([][]models.TeamMember, len(regs))
	maxMembers := 0
	for i, reg := range regs {
		teams[i] = team.Members(reg.TeamMembers)
		if len(teams[i]) > maxMembers {
			maxMembers = len(teams[i])
		}
	}

	cw := csv.NewWriter(w)

	header := []string{
		"id", "registered_at", "name", "email", "cnic", "phone", "university",
		"roll_no", "module", "team_name", "status", "certificate_id",
		"current_phase", "submission_status", "github_repo", "team_size",
	}
	for n := 1; n <= maxMembers; n++ {
		header = append(header,
			fmt.Sprintf("member%d_name", n),
			fmt.Sprintf("member%d_email", n),
			fmt.Sprintf("member%d_roll_no", n),
			fmt.Sprintf("member%d_cnic", n),
		)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, reg := range regs {
		members := teams[i]
		row := []string{
			fmt.Sprintf("%d", reg.ID),
			time.Unix(reg.CreatedAt, 0).UTC().Format("2006-01-02 15:04:05"),
			reg.Name,
			reg.Email,
			team.FormatCNIC(reg.CNIC),
			reg.Phone,
			reg.University,
			reg.RollNo,
			reg.Module,
			reg.TeamName,
			reg.Status,
			reg.CertificateID,
			reg.CurrentPhase,
			reg.SubmissionStatus,
			reg.GithubRepo,
			fmt.Sprintf("%d", len(members)),
		}
		for n := 0; n < maxMembers; n++ {
			if n < len(members) {
				row = append(row,
					members[n].Name,
					members[n].Email,
					members[n].RollNo,
					members[n].CNICFormatted,
				)
			} else {
				row = append(row, "", "", "", "")
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
