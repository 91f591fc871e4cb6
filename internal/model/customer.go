package model

import "github.com/google/uuid"

// Customer is owner-maintained master data. Only the name is required;
// listings are kept sorted by name.
type Customer struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name    string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone   string    `gorm:"type:varchar(20)" json:"phone"`
	Address string    `gorm:"type:text" json:"address"`
}
