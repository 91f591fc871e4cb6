package repository

import (
	"go-billing-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FirmRepository interface {
	FindByOwner(ownerID uuid.UUID) (*model.FirmDetails, error)
	Save(firm *model.FirmDetails) error
	AdvanceCurrentNumber(ownerID uuid.UUID, consumed int64) error
}

type firmRepo struct {
	db *gorm.DB
}

func NewFirmRepo(db *gorm.DB) FirmRepository {
	return &firmRepo{db}
}

func (r *firmRepo) FindByOwner(ownerID uuid.UUID) (*model.FirmDetails, error) {
	var firm model.FirmDetails
	err := r.db.First(&firm, "owner_id = ?", ownerID).Error
	return &firm, err
}

// Save upserts the single firm record for the owner
func (r *firmRepo) Save(firm *model.FirmDetails) error {
	return r.db.Save(firm).Error
}

// AdvanceCurrentNumber records the sequential number just consumed by a
// successfully created invoice. This is the only code path that mutates
// the counter.
func (r *firmRepo) AdvanceCurrentNumber(ownerID uuid.UUID, consumed int64) error {
	return r.db.Model(&model.FirmDetails{}).
		Where("owner_id = ?", ownerID).
		Update("current_number", consumed).Error
}
