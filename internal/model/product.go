package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is an owner-scoped catalog entry. The UUID primary key is the
// storage key; ProductNo is the human-facing sequence shown on bills,
// assigned per owner on create.
type Product struct {
	BaseModel
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	ProductNo int             `gorm:"not null" json:"product_no"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Price     decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"price" validate:"dgte0"`
}

// Snapshot returns a frozen copy of the product for embedding into an
// invoice line. Later renames, re-prices or deletes never touch it.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ProductID: p.ID,
		ProductNo: p.ProductNo,
		Name:      p.Name,
		Price:     p.Price,
	}
}

// ProductSnapshot is the frozen product copy stored inside invoice items.
type ProductSnapshot struct {
	ProductID uuid.UUID       `json:"product_id"`
	ProductNo int             `json:"product_no"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}
