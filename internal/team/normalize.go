package team

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/memalihaider/techverse-portal/internal/models"
)

// Accepted field-name variants per canonical field, in probe order. These
// cover every shape historical registration records have used.
var (
	nameKeys       = []string{"name", "full_name", "member_name"}
	emailKeys      = []string{"email", "email_address", "member_email"}
	universityKeys = []string{"university", "university_name", "uni"}
	rollNoKeys     = []string{"rollNo", "roll_no", "roll", "rollNumber"}
	cnicKeys       = []string{"cnic", "CNIC", "cnic_no", "CNIC_NO", "cnic_digits"}
)

// Normalize coerces one raw member record into the canonical shape. For each
// field the first present, non-nil name variant wins; missing fields become
// empty strings. Nil and non-object input yield an all-empty member, never an
// error.
func Normalize(raw any) models.TeamMember {
	obj, _ := raw.(map[string]any)

	cnic := probe(obj, cnicKeys)
	digits := Digits(cnic)

	return models.TeamMember{
		Name:          probe(obj, nameKeys),
		Email:         probe(obj, emailKeys),
		University:    probe(obj, universityKeys),
		RollNo:        probe(obj, rollNoKeys),
		CNICDigits:    digits,
		CNICFormatted: FormatCNIC(digits),
	}
}

func probe(obj map[string]any, keys []string) string {
	for _, key := range keys {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		return asString(v)
	}
	return ""
}

// asString renders a probed value without mangling numbers: some old records
// carry roll numbers and CNICs as unquoted JSON numbers.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
