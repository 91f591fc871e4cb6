package service

import (
	"errors"
	"fmt"

	"go-billing-ws/internal/model"
	"go-billing-ws/internal/repository"
	"go-billing-ws/internal/ws"
	"go-billing-ws/pkg/validator"

	"github.com/google/uuid"
)

type CustomerService interface {
	CreateCustomer(ownerID uuid.UUID, req *model.Customer) error
	UpdateCustomer(ownerID, id uuid.UUID, req *model.Customer) (*model.Customer, error)
	DeleteCustomer(ownerID, id uuid.UUID) error
	GetAllCustomers(ownerID uuid.UUID) ([]model.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	wsHub        *ws.Hub
}

func NewCustomerService(cRepo repository.CustomerRepository, hub *ws.Hub) CustomerService {
	return &customerService{
		customerRepo: cRepo,
		wsHub:        hub,
	}
}

func (s *customerService) CreateCustomer(ownerID uuid.UUID, req *model.Customer) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	req.OwnerID = ownerID
	req.CreatedBy = ownerID.String()
	req.UpdatedBy = ownerID.String()

	if err := s.customerRepo.Create(req); err != nil {
		return err
	}

	go s.wsHub.Publish(ws.Event{
		Type:    "customer_update",
		Action:  "customer_created",
		OwnerID: ownerID.String(),
		Data:    map[string]interface{}{"id": req.ID, "name": req.Name},
		Message: fmt.Sprintf("Customer '%s' added", req.Name),
	})

	return nil
}

func (s *customerService) UpdateCustomer(ownerID, id uuid.UUID, req *model.Customer) (*model.Customer, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, err := s.customerRepo.FindByID(ownerID, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.Address = req.Address
	existing.UpdatedBy = ownerID.String()

	if err := s.customerRepo.Update(existing); err != nil {
		return nil, err
	}

	go s.wsHub.Publish(ws.Event{
		Type:    "customer_update",
		Action:  "customer_updated",
		OwnerID: ownerID.String(),
		Data:    map[string]interface{}{"id": existing.ID, "name": existing.Name},
		Message: fmt.Sprintf("Customer '%s' updated", existing.Name),
	})

	return existing, nil
}

func (s *customerService) DeleteCustomer(ownerID, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ownerID, id)
	if err != nil {
		return errors.New("customer not found")
	}

	if err := s.customerRepo.Delete(ownerID, id); err != nil {
		return err
	}

	go s.wsHub.Publish(ws.Event{
		Type:    "customer_update",
		Action:  "customer_deleted",
		OwnerID: ownerID.String(),
		Data:    map[string]interface{}{"id": id},
		Message: fmt.Sprintf("Customer '%s' removed", customer.Name),
	})

	return nil
}

func (s *customerService) GetAllCustomers(ownerID uuid.UUID) ([]model.Customer, error) {
	return s.customerRepo.FindAll(ownerID)
}
