package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayPreferencesDefaults(t *testing.T) {
	t.Run("all toggles default to true", func(t *testing.T) {
		prefs := DefaultDisplayPreferences()
		assert.True(t, prefs.HeaderShowLogo)
		assert.True(t, prefs.InvoiceShowTaxID)
		assert.True(t, prefs.InvoiceShowSignature)
		assert.Empty(t, prefs.InvoicePrefix)
	})

	t.Run("toggles absent from stored JSON keep their default", func(t *testing.T) {
		var prefs DisplayPreferences
		require.NoError(t, json.Unmarshal([]byte(`{"invoice_show_logo": false}`), &prefs))

		assert.False(t, prefs.InvoiceShowLogo, "explicit false respected")
		assert.True(t, prefs.HeaderShowLogo, "absent toggle stays true")
		assert.True(t, prefs.InvoiceShowFirmName, "absent toggle stays true")
	})

	t.Run("scanning a NULL column yields the defaults", func(t *testing.T) {
		var prefs DisplayPreferences
		require.NoError(t, prefs.Scan(nil))
		assert.Equal(t, DefaultDisplayPreferences(), prefs)
	})

	t.Run("value then scan round trips the prefix", func(t *testing.T) {
		prefs := DefaultDisplayPreferences()
		prefs.InvoicePrefix = "TX"
		prefs.HeaderShowTagline = false

		raw, err := prefs.Value()
		require.NoError(t, err)

		var restored DisplayPreferences
		require.NoError(t, restored.Scan(raw))
		assert.Equal(t, prefs, restored)
	})
}
