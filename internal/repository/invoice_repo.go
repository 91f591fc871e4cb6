package repository

import (
	"time"

	"go-billing-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(invoice *model.Invoice) error
	UpdateFields(ownerID, id uuid.UUID, fields map[string]interface{}) error
	FindAll(ownerID uuid.UUID) ([]model.Invoice, error)
	FindByID(ownerID, id uuid.UUID) (*model.Invoice, error)
	GetSalesMovement(ownerID uuid.UUID, startDate, endDate time.Time) ([]SalesMovementData, error)
	GetDashboardStats(ownerID uuid.UUID) (*DashboardStats, error)
}

// SalesMovementData is one day's aggregate for the dashboard chart
type SalesMovementData struct {
	Date     string `json:"date"`
	Invoices int    `json:"invoices"`
	Revenue  string `json:"revenue"`
}

// DashboardStats is the owner's overview card data
type DashboardStats struct {
	TotalInvoices  int64  `json:"total_invoices"`
	TotalProducts  int64  `json:"total_products"`
	TotalCustomers int64  `json:"total_customers"`
	TotalRevenue   string `json:"total_revenue"`
}

type invoiceRepo struct {
	db *gorm.DB
}

func NewInvoiceRepo(db *gorm.DB) InvoiceRepository {
	return &invoiceRepo{db}
}

func (r *invoiceRepo) Create(invoice *model.Invoice) error {
	return r.db.Create(invoice).Error
}

// UpdateFields submits a partial update to an existing record. The
// invoice number and id are never part of the patch.
func (r *invoiceRepo) UpdateFields(ownerID, id uuid.UUID, fields map[string]interface{}) error {
	res := r.db.Model(&model.Invoice{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *invoiceRepo) FindAll(ownerID uuid.UUID) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.Where("owner_id = ?", ownerID).Order("date DESC").Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) FindByID(ownerID, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.First(&invoice, "id = ? AND owner_id = ?", id, ownerID).Error
	return &invoice, err
}

func (r *invoiceRepo) GetSalesMovement(ownerID uuid.UUID, startDate, endDate time.Time) ([]SalesMovementData, error) {
	var results []SalesMovementData

	rows, err := r.db.Model(&model.Invoice{}).
		Select(`
			DATE(date) as day,
			COUNT(*) as invoices,
			COALESCE(SUM(grand_total), 0) as revenue
		`).
		Where("owner_id = ? AND date BETWEEN ? AND ?", ownerID, startDate, endDate).
		Group("DATE(date)").
		Order("day ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data SalesMovementData
		if err := rows.Scan(&data.Date, &data.Invoices, &data.Revenue); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *invoiceRepo) GetDashboardStats(ownerID uuid.UUID) (*DashboardStats, error) {
	var stats DashboardStats

	r.db.Model(&model.Invoice{}).Where("owner_id = ?", ownerID).Count(&stats.TotalInvoices)
	r.db.Model(&model.Product{}).Where("owner_id = ?", ownerID).Count(&stats.TotalProducts)
	r.db.Model(&model.Customer{}).Where("owner_id = ?", ownerID).Count(&stats.TotalCustomers)
	r.db.Model(&model.Invoice{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(grand_total), 0)").
		Scan(&stats.TotalRevenue)

	return &stats, nil
}
