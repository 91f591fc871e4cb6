package service

import (
	"errors"
	"fmt"

	"go-billing-ws/internal/model"
	"go-billing-ws/internal/repository"
	"go-billing-ws/internal/ws"
	"go-billing-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService interface {
	CreateProduct(ownerID uuid.UUID, req *model.Product) error
	UpdateProduct(ownerID, id uuid.UUID, req *model.Product) (*model.Product, error)
	DeleteProduct(ownerID, id uuid.UUID) error
	GetAllProducts(ownerID uuid.UUID) ([]model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: pRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *catalogService) CreateProduct(ownerID uuid.UUID, req *model.Product) error {
	// 1. Structural validation before any store call
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Assign the owner-scoped sequence number and save atomically
	err := s.db.Transaction(func(tx *gorm.DB) error {
		no, err := s.productRepo.NextProductNo(tx, ownerID)
		if err != nil {
			return err
		}
		req.ProductNo = no
		req.OwnerID = ownerID
		req.CreatedBy = ownerID.String()
		req.UpdatedBy = ownerID.String()
		return tx.Create(req).Error
	})
	if err != nil {
		return err
	}

	// 3. Broadcast after the write is confirmed
	go s.wsHub.Publish(ws.Event{
		Type:    "catalog_update",
		Action:  "product_created",
		OwnerID: ownerID.String(),
		Data: map[string]interface{}{
			"id":         req.ID,
			"product_no": req.ProductNo,
			"name":       req.Name,
			"price":      req.Price,
		},
		Message: fmt.Sprintf("Product '%s' added", req.Name),
	})

	return nil
}

func (s *catalogService) UpdateProduct(ownerID, id uuid.UUID, req *model.Product) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	var updated *model.Product

	// Lock the row so rename and re-price cannot interleave
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&existing, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
			return errors.New("product not found")
		}

		existing.Name = req.Name
		existing.Price = req.Price
		existing.UpdatedBy = ownerID.String()

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.wsHub.Publish(ws.Event{
		Type:    "catalog_update",
		Action:  "product_updated",
		OwnerID: ownerID.String(),
		Data: map[string]interface{}{
			"id":         updated.ID,
			"product_no": updated.ProductNo,
			"name":       updated.Name,
			"price":      updated.Price,
		},
		Message: fmt.Sprintf("Product '%s' updated", updated.Name),
	})

	return updated, nil
}

// DeleteProduct removes the product from future bills. Invoices already
// saved keep their frozen snapshot of it.
func (s *catalogService) DeleteProduct(ownerID, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ownerID, id)
	if err != nil {
		return errors.New("product not found")
	}

	if err := s.productRepo.Delete(ownerID, id); err != nil {
		return err
	}

	go s.wsHub.Publish(ws.Event{
		Type:    "catalog_update",
		Action:  "product_deleted",
		OwnerID: ownerID.String(),
		Data:    map[string]interface{}{"id": id},
		Message: fmt.Sprintf("Product '%s' removed", product.Name),
	})

	return nil
}

func (s *catalogService) GetAllProducts(ownerID uuid.UUID) ([]model.Product, error) {
	return s.productRepo.FindAll(ownerID)
}
