package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// NumberingMode selects how new invoice numbers are produced
type NumberingMode string

const (
	// NumberingSequential consumes the next integer after a stored counter
	NumberingSequential NumberingMode = "sequential"
	// NumberingFreeform derives a prefix from the firm name (or a custom
	// override) and suffixes a timestamp
	NumberingFreeform NumberingMode = "freeform"
)

// DisplayPreferences controls which firm fields render on the app header
// and the printed invoice. Every toggle defaults to true; a preferences
// blob saved before a toggle existed keeps the default for it.
type DisplayPreferences struct {
	HeaderShowLogo       bool `json:"header_show_logo"`
	HeaderShowFirmName   bool `json:"header_show_firm_name"`
	HeaderShowTagline    bool `json:"header_show_tagline"`
	InvoiceShowLogo      bool `json:"invoice_show_logo"`
	InvoiceShowFirmName  bool `json:"invoice_show_firm_name"`
	InvoiceShowAddress   bool `json:"invoice_show_address"`
	InvoiceShowPhone     bool `json:"invoice_show_phone"`
	InvoiceShowEmail     bool `json:"invoice_show_email"`
	InvoiceShowTaxID     bool `json:"invoice_show_tax_id"`
	InvoiceShowTagline   bool `json:"invoice_show_tagline"`
	InvoiceShowCustomer  bool `json:"invoice_show_customer"`
	InvoiceShowSignature bool `json:"invoice_show_signature"`

	// Free-text extras printed under the firm block
	CustomField1 string `json:"custom_field_1,omitempty"`
	CustomField2 string `json:"custom_field_2,omitempty"`

	// Optional custom invoice-number prefix; empty means derive/bare
	InvoicePrefix string `json:"invoice_prefix,omitempty"`
}

// DefaultDisplayPreferences returns the all-toggles-on defaults
func DefaultDisplayPreferences() DisplayPreferences {
	return DisplayPreferences{
		HeaderShowLogo:       true,
		HeaderShowFirmName:   true,
		HeaderShowTagline:    true,
		InvoiceShowLogo:      true,
		InvoiceShowFirmName:  true,
		InvoiceShowAddress:   true,
		InvoiceShowPhone:     true,
		InvoiceShowEmail:     true,
		InvoiceShowTaxID:     true,
		InvoiceShowTagline:   true,
		InvoiceShowCustomer:  true,
		InvoiceShowSignature: true,
	}
}

// UnmarshalJSON starts from the defaults so that toggles absent from the
// stored blob stay true instead of flipping to Go's zero value.
func (p *DisplayPreferences) UnmarshalJSON(data []byte) error {
	type alias DisplayPreferences
	prefs := alias(DefaultDisplayPreferences())
	if err := json.Unmarshal(data, &prefs); err != nil {
		return err
	}
	*p = DisplayPreferences(prefs)
	return nil
}

// Value implements driver.Valuer for JSONB storage
func (p DisplayPreferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB storage
func (p *DisplayPreferences) Scan(value interface{}) error {
	if value == nil {
		*p = DefaultDisplayPreferences()
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for DisplayPreferences")
	}
	if len(raw) == 0 {
		*p = DefaultDisplayPreferences()
		return nil
	}
	return p.UnmarshalJSON(raw)
}

// FirmDetails holds the business configuration, one record per owner.
type FirmDetails struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"owner_id"`

	FirmName          string `gorm:"type:varchar(255);not null" json:"firm_name" validate:"required"`
	LocalizedFirmName string `gorm:"type:varchar(255)" json:"localized_firm_name"`
	Address           string `gorm:"type:text;not null" json:"address" validate:"required"`
	City              string `gorm:"type:varchar(100)" json:"city"`
	State             string `gorm:"type:varchar(100)" json:"state"`
	Pincode           string `gorm:"type:varchar(20)" json:"pincode"`
	Phone             string `gorm:"type:varchar(20)" json:"phone"`
	Email             string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	TaxID             string `gorm:"type:varchar(50)" json:"tax_id"`
	Tagline           string `gorm:"type:varchar(255)" json:"tagline"`
	LocalizedTagline  string `gorm:"type:varchar(255)" json:"localized_tagline"`

	// Embedded logo image, validated for size/type on upload
	Logo            []byte `gorm:"type:bytea" json:"logo,omitempty"`
	LogoContentType string `gorm:"type:varchar(50)" json:"logo_content_type,omitempty"`

	Preferences DisplayPreferences `gorm:"type:jsonb" json:"preferences"`

	// Invoice numbering configuration. CurrentNumber stays nil until the
	// first sequential invoice is persisted and only advances on a
	// successfully saved new invoice, never on edits.
	NumberingMode NumberingMode `gorm:"type:varchar(20);default:'sequential'" json:"numbering_mode"`
	StartNumber   int64         `gorm:"default:1" json:"start_number"`
	CurrentNumber *int64        `json:"current_number,omitempty"`
}

// TableName keeps the collection name from the storage contract
func (FirmDetails) TableName() string {
	return "firm_details"
}
