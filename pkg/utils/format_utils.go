package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatDisplayDate turns a stored YYYY-MM-DD date into the DD-Mon-YYYY
// form shown on receipts and lists. Malformed input is returned as-is.
func FormatDisplayDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format("02-Jan-2006")
}

// FormatCurrency renders an amount as rupees with thousands separators,
// e.g. ₹3,200.00.
func FormatCurrency(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s₹%s.%s", sign, b.String(), parts[1])
}
