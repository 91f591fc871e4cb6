package repository

import (
	"go-billing-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll(ownerID uuid.UUID) ([]model.Customer, error)
	FindByID(ownerID, id uuid.UUID) (*model.Customer, error)
	Update(customer *model.Customer) error
	Delete(ownerID, id uuid.UUID) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

// FindAll keeps the list sorted by name for the picker UI
func (r *customerRepo) FindAll(ownerID uuid.UUID) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(ownerID, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "id = ? AND owner_id = ?", id, ownerID).Error
	return &customer, err
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) Delete(ownerID, id uuid.UUID) error {
	return r.db.Delete(&model.Customer{}, "id = ? AND owner_id = ?", id, ownerID).Error
}
