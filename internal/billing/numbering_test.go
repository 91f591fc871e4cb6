package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-billing-ws/internal/model"
)

func TestDerivePrefix(t *testing.T) {
	cases := []struct {
		name string
		firm string
		want string
	}{
		{"three words take initials", "Shree Oil Mill", "SOM"},
		{"one word takes first four", "Shree", "SHRE"},
		{"two words take two each", "Shree Oil", "SHOI"},
		{"short single word kept whole", "Om", "OM"},
		{"empty name falls back", "", "INV"},
		{"blank name falls back", "   ", "INV"},
		{"punctuation only falls back", "!!! ---", "INV"},
		{"non-alphanumerics stripped per word", "Shree's Oil-Mill & Co.", "SOC"},
		{"more than five words capped", "A B C D E F G", "ABCDE"},
		{"digits count as word characters", "24x7 Store", "24ST"},
		{"lowercase input uppercased", "shree oil", "SHOI"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DerivePrefix(tc.firm))
		})
	}
}

func TestNextSequential(t *testing.T) {
	t.Run("no invoice numbered yet starts at the configured start", func(t *testing.T) {
		firm := &model.FirmDetails{StartNumber: 100}
		assert.Equal(t, int64(100), NextSequential(firm))
	})

	t.Run("advances one past the stored counter", func(t *testing.T) {
		current := int64(107)
		firm := &model.FirmDetails{StartNumber: 100, CurrentNumber: &current}
		assert.Equal(t, int64(108), NextSequential(firm))
	})
}

func TestFormatSequential(t *testing.T) {
	t.Run("bare number without a custom prefix", func(t *testing.T) {
		firm := &model.FirmDetails{}
		assert.Equal(t, "42", FormatSequential(firm, 42))
	})

	t.Run("prefix joined with a dash", func(t *testing.T) {
		firm := &model.FirmDetails{}
		firm.Preferences.InvoicePrefix = "TX"
		assert.Equal(t, "TX-42", FormatSequential(firm, 42))
	})
}

func TestFreeformNumber(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	t.Run("derived prefix with millisecond suffix", func(t *testing.T) {
		firm := &model.FirmDetails{FirmName: "Shree Oil Mill", NumberingMode: model.NumberingFreeform}
		assert.Equal(t, "SOM-1700000000000", FreeformNumber(firm, now))
	})

	t.Run("custom prefix wins over derivation", func(t *testing.T) {
		firm := &model.FirmDetails{FirmName: "Shree Oil Mill", NumberingMode: model.NumberingFreeform}
		firm.Preferences.InvoicePrefix = "BILL"
		assert.Equal(t, "BILL-1700000000000", FreeformNumber(firm, now))
	})

	t.Run("empty firm name falls back to INV", func(t *testing.T) {
		firm := &model.FirmDetails{NumberingMode: model.NumberingFreeform}
		assert.Equal(t, "INV-1700000000000", FreeformNumber(firm, now))
	})
}

func TestNumberFor(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	t.Run("editing an existing invoice returns its number verbatim", func(t *testing.T) {
		firm := &model.FirmDetails{NumberingMode: model.NumberingSequential, StartNumber: 1}
		inv := &model.Invoice{InvoiceNumber: "TX-7"}
		inv.ID = uuid.New()

		assert.Equal(t, "TX-7", NumberFor(inv, firm, now))
	})

	t.Run("draft in sequential mode formats the next counter value", func(t *testing.T) {
		current := int64(4)
		firm := &model.FirmDetails{NumberingMode: model.NumberingSequential, StartNumber: 1, CurrentNumber: &current}
		assert.Equal(t, "5", NumberFor(&model.Invoice{}, firm, now))
	})

	t.Run("draft in freeform mode uses the timestamp scheme", func(t *testing.T) {
		firm := &model.FirmDetails{FirmName: "Shree", NumberingMode: model.NumberingFreeform}
		assert.Equal(t, "SHRE-1700000000000", NumberFor(&model.Invoice{}, firm, now))
	})

	t.Run("generator never advances the counter", func(t *testing.T) {
		firm := &model.FirmDetails{NumberingMode: model.NumberingSequential, StartNumber: 1}
		_ = NumberFor(&model.Invoice{}, firm, now)
		_ = NumberFor(&model.Invoice{}, firm, now)
		assert.Nil(t, firm.CurrentNumber, "previews are discardable and regenerable")
	})
}
