package service

import (
	"time"

	"go-billing-ws/internal/repository"

	"github.com/google/uuid"
)

type DashboardService interface {
	GetDashboardStats(ownerID uuid.UUID) (*repository.DashboardStats, error)
	GetSalesMovement(ownerID uuid.UUID, startDate, endDate time.Time) ([]repository.SalesMovementData, error)
}

type dashboardService struct {
	invoiceRepo repository.InvoiceRepository
}

func NewDashboardService(iRepo repository.InvoiceRepository) DashboardService {
	return &dashboardService{invoiceRepo: iRepo}
}

func (s *dashboardService) GetDashboardStats(ownerID uuid.UUID) (*repository.DashboardStats, error) {
	return s.invoiceRepo.GetDashboardStats(ownerID)
}

func (s *dashboardService) GetSalesMovement(ownerID uuid.UUID, startDate, endDate time.Time) ([]repository.SalesMovementData, error) {
	return s.invoiceRepo.GetSalesMovement(ownerID, startDate, endDate)
}
