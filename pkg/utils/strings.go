package utils

import "strings"

// DefaultCountryCode is prefixed to bare ten-digit numbers.
const DefaultCountryCode = "+91"

// NormalizePhone strips formatting and returns an E.164 number. Ten-digit
// numbers get DefaultCountryCode; anything else keeps its digits with a
// leading '+'. Empty input stays empty.
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case d == "":
		return ""
	case len(d) == 10:
		return DefaultCountryCode + d
	case len(d) == 11 && d[0] == '0':
		return DefaultCountryCode + d[1:]
	default:
		return "+" + d
	}
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

// MaskPhone keeps the last four digits.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return "****" + phone[len(phone)-4:]
}
