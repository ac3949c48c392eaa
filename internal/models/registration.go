package models

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ModuleBusinessInnovation is the one competition track with phases,
// submissions and peer evaluation. Every other module is registration-only.
const ModuleBusinessInnovation = "business_innovation"

type Registration struct {
	ID        int64  `db:"id" json:"id"`
	CreatedAt int64  `db:"created_at" json:"created_at"`
	Name      string `db:"name" json:"name" validate:"required"`
	Email     string `db:"email" json:"email" validate:"required,email"`
	CNIC      string `db:"cnic" json:"cnic" validate:"required"`
	Phone     string `db:"phone" json:"phone"`

	University string `db:"university" json:"university"`
	RollNo     string `db:"roll_no" json:"rollNo"`
	Module     string `db:"module" json:"module" validate:"required,max=32"`
	TeamName   string `db:"team_name" json:"team_name"`

	// TeamMembers holds whatever shape the record was created with: an array,
	// a JSON-encoded string, or an object wrapping a members array. Always go
	// through team.Extract / team.Members rather than decoding this directly.
	TeamMembers json.RawMessage `db:"team_members" json:"team_members,omitempty"`

	Status        string `db:"status" json:"status"`
	AccessCode    string `db:"access_code" json:"-"`
	CertificateID string `db:"certificate_id" json:"certificate_id"`

	// Business Innovation only, empty for other modules.
	CurrentPhase     string          `db:"current_phase" json:"current_phase,omitempty"`
	SubmissionStatus string          `db:"submission_status" json:"submission_status,omitempty"`
	GithubRepo       string          `db:"github_repo" json:"github_repo,omitempty"`
	BusinessIdea     json.RawMessage `db:"business_idea" json:"business_idea,omitempty"`
}

func (r *Registration) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// IdeaMap decodes business_idea tolerantly. Broken or empty payloads come
// back as nil, the same way a record that never touched the portal looks.
func (r *Registration) IdeaMap() map[string]any {
	if len(r.BusinessIdea) == 0 {
		return nil
	}
	var idea map[string]any
	if err := json.Unmarshal(r.BusinessIdea, &idea); err != nil {
		return nil
	}
	return idea
}
