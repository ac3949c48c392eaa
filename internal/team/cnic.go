package team

import "strings"

// Digits strips every non-digit character from raw.
func Digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCNIC renders a 13-digit national ID grouped 5-7-1, e.g.
// "35201-1234567-1". Anything that does not strip down to exactly 13 digits
// is returned unchanged, including the empty string.
func FormatCNIC(raw string) string {
	digits := Digits(raw)
	if len(digits) != 13 {
		return raw
	}
	return digits[:5] + "-" + digits[5:12] + "-" + digits[12:]
}
