package formatting

import (
	"regexp"
	"strings"
)

// MinPhoneDigits is the minimum digit count for a normalized phone number.
const MinPhoneDigits = 10

var (
	nonDigitRegex      = regexp.MustCompile(`\D`)
	emailRegex         = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	invoiceNumberRegex = regexp.MustCompile(`(?i)(INV-[A-Za-z0-9-]+)`)
)

// NormalizePhone strips all non-digit characters from a phone string.
// Returns the digits-only value and true, or "" and false when the
// result falls short of MinPhoneDigits.
func NormalizePhone(phone string) (string, bool) {
	if phone == "" {
		return "", false
	}

	digits := nonDigitRegex.ReplaceAllString(phone, "")
	if len(digits) < MinPhoneDigits {
		return "", false
	}

	return digits, true
}

// ValidEmail reports whether s matches a standard email address shape.
func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ExtractInvoiceNumber finds an invoice identifier pattern (e.g. INV-2024-001)
// in free text. Returns the uppercased match and true, or "" and false.
// Used as a fallback when model extraction yields nothing usable.
func ExtractInvoiceNumber(text string) (string, bool) {
	match := invoiceNumberRegex.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return strings.ToUpper(match[1]), true
}
