package models

// TeamMember is the canonical, field-name-unified shape of one team member.
// Derived by team.Normalize from whatever a raw record happens to call its
// fields; immutable once produced.
type TeamMember struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	University    string `json:"university"`
	RollNo        string `json:"rollNo"`
	CNICDigits    string `json:"cnic_digits"`
	CNICFormatted string `json:"cnic_formatted"`
}
