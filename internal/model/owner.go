package model

import (
	"golang.org/x/crypto/bcrypt"
)

// Owner represents the authenticated shop account. Every product,
// customer, firm record and invoice belongs to exactly one owner.
type Owner struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password     string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName     string `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	PhoneNumber  string `gorm:"type:varchar(20)" json:"phone_number"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
	TokenVersion string `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
}

// SetPassword hashes and sets the owner's password
func (o *Owner) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	o.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (o *Owner) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(o.Password), []byte(password))
	return err == nil
}

// OwnerResponse is used for API responses (without sensitive data)
type OwnerResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	IsActive    bool   `json:"is_active"`
}

// ToResponse converts Owner to OwnerResponse
func (o *Owner) ToResponse() OwnerResponse {
	return OwnerResponse{
		ID:          o.ID.String(),
		Email:       o.Email,
		FullName:    o.FullName,
		PhoneNumber: o.PhoneNumber,
		IsActive:    o.IsActive,
	}
}
