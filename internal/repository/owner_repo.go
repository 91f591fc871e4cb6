package repository

import (
	"go-billing-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OwnerRepository interface {
	FindByEmail(email string) (*model.Owner, error)
	FindByID(id uuid.UUID) (*model.Owner, error)
	Create(owner *model.Owner) error
	Update(owner *model.Owner) error
	UpdatePassword(ownerID uuid.UUID, hashedPassword string) error
	UpdateTokenVersion(ownerID uuid.UUID, version string) error
}

type ownerRepo struct {
	db *gorm.DB
}

func NewOwnerRepo(db *gorm.DB) OwnerRepository {
	return &ownerRepo{db}
}

func (r *ownerRepo) FindByEmail(email string) (*model.Owner, error) {
	var owner model.Owner
	if err := r.db.Where("email = ?", email).First(&owner).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *ownerRepo) FindByID(id uuid.UUID) (*model.Owner, error) {
	var owner model.Owner
	if err := r.db.First(&owner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *ownerRepo) Create(owner *model.Owner) error {
	return r.db.Create(owner).Error
}

func (r *ownerRepo) Update(owner *model.Owner) error {
	return r.db.Save(owner).Error
}

func (r *ownerRepo) UpdatePassword(ownerID uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.Owner{}).Where("id = ?", ownerID).Update("password", hashedPassword).Error
}

func (r *ownerRepo) UpdateTokenVersion(ownerID uuid.UUID, version string) error {
	return r.db.Model(&model.Owner{}).Where("id = ?", ownerID).Update("token_version", version).Error
}
