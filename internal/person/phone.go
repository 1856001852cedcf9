package person

import "strings"

// FormatPhone renders a Brazilian phone number for display. Non-digits are
// dropped first. Short input yields a partial mask; 12 to 14 digits are read
// as a country code followed by the area code.
func FormatPhone(value string) string {
	d := digitsOnly(value)

	switch n := len(d); {
	case n == 0:
		return ""
	case n <= 2:
		return "(" + d
	case n <= 6:
		return "(" + d[:2] + ") " + d[2:]
	case n <= 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	case n <= 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	default:
		return "+" + d[:2] + " (" + d[2:4] + ") " + d[4:n-4] + "-" + d[n-4:]
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
