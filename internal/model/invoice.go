package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one product/quantity/tax-rate entry within an invoice.
// The product fields are a frozen snapshot taken at billing time.
// LineID disambiguates the same product billed twice at different rates.
type LineItem struct {
	LineID   string          `json:"line_id" validate:"required"`
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity" validate:"required,gt=0"`
	// Nil means the configured global default rate applies
	TaxRate *decimal.Decimal `json:"tax_rate,omitempty" validate:"omitempty,drate"`
}

// LineItems is the ordered item sequence, stored as one JSONB column so
// the snapshot survives product deletion.
type LineItems []LineItem

// Value implements driver.Valuer for JSONB storage
func (items LineItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

// Scan implements sql.Scanner for JSONB storage
func (items *LineItems) Scan(value interface{}) error {
	if value == nil {
		*items = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for LineItems")
	}
	if len(raw) == 0 {
		*items = nil
		return nil
	}
	return json.Unmarshal(raw, items)
}

// Invoice is the persisted bill. InvoiceNumber is immutable once
// assigned; edit-and-resave reuses the same number and id.
type Invoice struct {
	BaseModel
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	InvoiceNumber string    `gorm:"type:varchar(50);not null;index" json:"invoice_number"`
	Date          time.Time `gorm:"not null" json:"date"`

	// Customer context frozen at billing time
	CustomerName  string `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerPhone string `gorm:"type:varchar(20)" json:"customer_phone"`

	Items LineItems `gorm:"type:jsonb" json:"items"`

	Subtotal   decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"subtotal"`
	TaxAmount  decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"tax_amount"`
	GrandTotal decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"grand_total"`
}

// IsDraft reports whether the invoice has not been persisted yet
func (inv *Invoice) IsDraft() bool {
	return inv.ID == uuid.Nil
}
