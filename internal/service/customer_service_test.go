package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-billing-ws/internal/model"
	"go-billing-ws/internal/ws"
)

func newCustomerFixture(t *testing.T) (uuid.UUID, *fakeCustomerRepo, CustomerService) {
	t.Helper()
	hub := ws.NewHub()
	go hub.Run()

	ownerID := uuid.New()
	repo := newFakeCustomerRepo()
	return ownerID, repo, NewCustomerService(repo, hub)
}

func TestCustomerLifecycle(t *testing.T) {
	ownerID, repo, svc := newCustomerFixture(t)

	t.Run("name is required", func(t *testing.T) {
		err := svc.CreateCustomer(ownerID, &model.Customer{Phone: "12345"})
		assert.Error(t, err)
		assert.Empty(t, repo.customers)
	})

	t.Run("phone and address are optional", func(t *testing.T) {
		customer := &model.Customer{Name: "Asha Traders"}
		require.NoError(t, svc.CreateCustomer(ownerID, customer))
		assert.Equal(t, ownerID, customer.OwnerID)
		assert.NotEqual(t, uuid.Nil, customer.ID)
	})

	t.Run("update replaces the editable fields", func(t *testing.T) {
		customer := &model.Customer{Name: "Ratan Stores"}
		require.NoError(t, svc.CreateCustomer(ownerID, customer))

		updated, err := svc.UpdateCustomer(ownerID, customer.ID, &model.Customer{
			Name:    "Ratan General Stores",
			Phone:   "99887",
			Address: "4 Mill Lane",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ratan General Stores", updated.Name)
		assert.Equal(t, "99887", updated.Phone)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		customer := &model.Customer{Name: "Short Lived"}
		require.NoError(t, svc.CreateCustomer(ownerID, customer))
		require.NoError(t, svc.DeleteCustomer(ownerID, customer.ID))

		_, err := repo.FindByID(ownerID, customer.ID)
		assert.Error(t, err)
	})

	t.Run("delete of unknown id fails", func(t *testing.T) {
		err := svc.DeleteCustomer(ownerID, uuid.New())
		assert.Error(t, err)
	})
}
