package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// NewNullString is a helper for string pointers, returning nil if string is empty.
// Useful for fields that are optional and should be NULL in DB if not provided.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NormalizePhone strips spaces and hyphens from a phone number. The
// normalized form is what gets stored and compared for uniqueness.
func NormalizePhone(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "")
	return replacer.Replace(strings.TrimSpace(phone))
}

// IsValidPhone reports whether a normalized phone number is acceptable:
// at least 10 characters, digits only.
func IsValidPhone(phone string) bool {
	if len(phone) < 10 {
		return false
	}
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// NewReceiptRef issues a unique reference for a payment receipt.
func NewReceiptRef() string {
	return "RCPT-" + strings.ToUpper(uuid.NewString()[:8])
}
