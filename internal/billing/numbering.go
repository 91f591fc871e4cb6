package billing

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"go-billing-ws/internal/model"
)

// FallbackPrefix is used whenever a derived freeform prefix would be empty
const FallbackPrefix = "INV"

// NextSequential returns the integer the next sequential invoice will
// consume: one past the stored counter, or the configured start number
// when no invoice has been numbered yet. It does not advance the
// counter; persistence does that after a successful create.
func NextSequential(firm *model.FirmDetails) int64 {
	if firm.CurrentNumber != nil {
		return *firm.CurrentNumber + 1
	}
	return firm.StartNumber
}

// FormatSequential renders a sequential number: "{prefix}-{n}" when a
// custom prefix is configured, bare "{n}" otherwise.
func FormatSequential(firm *model.FirmDetails, next int64) string {
	n := strconv.FormatInt(next, 10)
	if prefix := firm.Preferences.InvoicePrefix; prefix != "" {
		return prefix + "-" + n
	}
	return n
}

// FreeformNumber renders a freeform number: "{prefix}-{millis}". The
// prefix is the configured override if set, else derived from the firm
// name. Uniqueness relies on timestamp granularity only; this mode
// gives no ordering or gap-free guarantee.
func FreeformNumber(firm *model.FirmDetails, now time.Time) string {
	prefix := firm.Preferences.InvoicePrefix
	if prefix == "" {
		prefix = DerivePrefix(firm.FirmName)
	}
	return prefix + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// NumberFor produces the display number for an invoice. Editing an
// existing invoice returns its stored number verbatim; numbering is
// never mutated on edit.
func NumberFor(inv *model.Invoice, firm *model.FirmDetails, now time.Time) string {
	if !inv.IsDraft() && inv.InvoiceNumber != "" {
		return inv.InvoiceNumber
	}
	if firm.NumberingMode == model.NumberingFreeform {
		return FreeformNumber(firm, now)
	}
	return FormatSequential(firm, NextSequential(firm))
}

// DerivePrefix builds a freeform prefix from the firm name:
// non-alphanumerics are stripped and the remainder uppercased per word;
// one word keeps its first 4 characters, two words contribute 2 each,
// three or more contribute their first letter (up to 5 words).
func DerivePrefix(firmName string) string {
	var words []string
	for _, w := range strings.Fields(firmName) {
		if cleaned := stripNonAlnum(w); cleaned != "" {
			words = append(words, strings.ToUpper(cleaned))
		}
	}

	var prefix string
	switch len(words) {
	case 0:
		return FallbackPrefix
	case 1:
		prefix = takeRunes(words[0], 4)
	case 2:
		prefix = takeRunes(words[0], 2) + takeRunes(words[1], 2)
	default:
		limit := len(words)
		if limit > 5 {
			limit = 5
		}
		for _, w := range words[:limit] {
			prefix += takeRunes(w, 1)
		}
	}

	if prefix == "" {
		return FallbackPrefix
	}
	return prefix
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func takeRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
