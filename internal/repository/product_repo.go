package repository

import (
	"go-billing-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(ownerID uuid.UUID) ([]model.Product, error)
	FindByID(ownerID, id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	Delete(ownerID, id uuid.UUID) error
	NextProductNo(tx *gorm.DB, ownerID uuid.UUID) (int, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(ownerID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("owner_id = ?", ownerID).Order("product_no ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ownerID, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ? AND owner_id = ?", id, ownerID).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// Delete removes the product from future bills only; invoices keep
// their frozen snapshots.
func (r *productRepo) Delete(ownerID, id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ? AND owner_id = ?", id, ownerID).Error
}

// NextProductNo runs inside the caller's transaction so the per-owner
// sequence stays gapless under a single session.
func (r *productRepo) NextProductNo(tx *gorm.DB, ownerID uuid.UUID) (int, error) {
	var max int
	err := tx.Model(&model.Product{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(MAX(product_no), 0)").
		Scan(&max).Error
	return max + 1, err
}
