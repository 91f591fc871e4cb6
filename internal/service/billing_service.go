package service

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"go-billing-ws/internal/billing"
	"go-billing-ws/internal/model"
	"go-billing-ws/internal/repository"
	"go-billing-ws/internal/ws"
	"go-billing-ws/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrFirmNotConfigured = errors.New("firm details not configured")
)

// LineItemRequest references a catalog product to be frozen into the bill
type LineItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" validate:"uuid_required"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	TaxRate   *decimal.Decimal `json:"tax_rate,omitempty" validate:"omitempty,drate"`
	LineID    string           `json:"line_id,omitempty"`
}

// InvoiceRequest is the save/preview payload. A nil ID means create; a
// present ID means edit-and-resave of an existing invoice.
type InvoiceRequest struct {
	ID            *uuid.UUID        `json:"id,omitempty"`
	Date          *time.Time        `json:"date,omitempty"`
	CustomerID    *uuid.UUID        `json:"customer_id,omitempty"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	Items         []LineItemRequest `json:"items" validate:"dive"`
}

// InvoicePreview is a draft: numbered but discardable, nothing persisted
type InvoicePreview struct {
	InvoiceNumber string          `json:"invoice_number"`
	Date          time.Time       `json:"date"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Items         model.LineItems `json:"items"`
	Totals        billing.Totals  `json:"totals"`
}

// SaveInvoiceResult reports a persisted invoice. NumberingWarning is set
// when the invoice saved fine but the firm counter update failed; the
// save still counts as success.
type SaveInvoiceResult struct {
	Invoice          *model.Invoice `json:"invoice"`
	Created          bool           `json:"created"`
	NumberingWarning string         `json:"numbering_warning,omitempty"`
}

type BillingService interface {
	Preview(ownerID uuid.UUID, req *InvoiceRequest) (*InvoicePreview, error)
	Create(ownerID uuid.UUID, req *InvoiceRequest) (*SaveInvoiceResult, error)
	Update(ownerID, invoiceID uuid.UUID, req *InvoiceRequest) (*SaveInvoiceResult, error)
	GetAll(ownerID uuid.UUID) ([]model.Invoice, error)
	GetByID(ownerID, id uuid.UUID) (*model.Invoice, error)
}

type billingService struct {
	invoiceRepo  repository.InvoiceRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	firmRepo     repository.FirmRepository
	calc         *billing.Calculator
	wsHub        *ws.Hub

	// Serializes saves per owner so a double-submitted save cannot
	// consume the same sequential number twice within this process.
	// Two separate sessions racing remains an accepted limitation.
	saveLocks sync.Map // uuid.UUID -> *sync.Mutex
}

func NewBillingService(
	iRepo repository.InvoiceRepository,
	pRepo repository.ProductRepository,
	cRepo repository.CustomerRepository,
	fRepo repository.FirmRepository,
	calc *billing.Calculator,
	hub *ws.Hub,
) BillingService {
	return &billingService{
		invoiceRepo:  iRepo,
		productRepo:  pRepo,
		customerRepo: cRepo,
		firmRepo:     fRepo,
		calc:         calc,
		wsHub:        hub,
	}
}

func (s *billingService) lockFor(ownerID uuid.UUID) *sync.Mutex {
	mu, _ := s.saveLocks.LoadOrStore(ownerID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// assemble validates the request, freezes product/customer context and
// computes totals. Nothing is persisted here.
func (s *billingService) assemble(ownerID uuid.UUID, req *InvoiceRequest) (*InvoicePreview, error) {
	// 1. Structural validation before any store call
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Freeze customer context
	customerName := req.CustomerName
	customerPhone := req.CustomerPhone
	if req.CustomerID != nil {
		customer, err := s.customerRepo.FindByID(ownerID, *req.CustomerID)
		if err != nil {
			return nil, errors.New("customer not found")
		}
		customerName = customer.Name
		customerPhone = customer.Phone
	}

	// 3. Freeze product snapshots into line items
	items := make(model.LineItems, 0, len(req.Items))
	for _, itemReq := range req.Items {
		product, err := s.productRepo.FindByID(ownerID, itemReq.ProductID)
		if err != nil {
			return nil, ErrProductNotFound
		}

		lineID := itemReq.LineID
		if lineID == "" {
			lineID = uuid.NewString()
		}

		items = append(items, model.LineItem{
			LineID:   lineID,
			Product:  product.Snapshot(),
			Quantity: itemReq.Quantity,
			TaxRate:  itemReq.TaxRate,
		})
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	return &InvoicePreview{
		Date:          date,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		Items:         items,
		Totals:        s.calc.Compute(items),
	}, nil
}

// Preview assembles a draft and generates a candidate number without
// persisting anything. The number is discardable; the counter does not
// move, so an abandoned preview causes no gap. Previewing an edit
// (req.ID set) shows the stored number verbatim, never a fresh one.
func (s *billingService) Preview(ownerID uuid.UUID, req *InvoiceRequest) (*InvoicePreview, error) {
	preview, err := s.assemble(ownerID, req)
	if err != nil {
		return nil, err
	}

	firm, err := s.firmRepo.FindByOwner(ownerID)
	if err != nil {
		return nil, ErrFirmNotConfigured
	}

	draft := &model.Invoice{}
	if req.ID != nil {
		existing, err := s.invoiceRepo.FindByID(ownerID, *req.ID)
		if err != nil {
			return nil, ErrInvoiceNotFound
		}
		draft = existing
		if req.Date == nil {
			preview.Date = existing.Date
		}
	}
	preview.InvoiceNumber = billing.NumberFor(draft, firm, time.Now())
	return preview, nil
}

// Create persists a new invoice and then, for sequential firms,
// advances the consumed counter. A counter failure after the invoice
// write is downgraded to a warning: losing counter exactness beats
// losing a sale record.
func (s *billingService) Create(ownerID uuid.UUID, req *InvoiceRequest) (*SaveInvoiceResult, error) {
	mu := s.lockFor(ownerID)
	mu.Lock()
	defer mu.Unlock()

	preview, err := s.assemble(ownerID, req)
	if err != nil {
		return nil, err
	}

	firm, err := s.firmRepo.FindByOwner(ownerID)
	if err != nil {
		return nil, ErrFirmNotConfigured
	}

	invoice := &model.Invoice{
		OwnerID:       ownerID,
		Date:          preview.Date,
		CustomerName:  preview.CustomerName,
		CustomerPhone: preview.CustomerPhone,
		Items:         preview.Items,
		Subtotal:      preview.Totals.Subtotal,
		TaxAmount:     preview.Totals.TaxAmount,
		GrandTotal:    preview.Totals.GrandTotal,
	}

	var consumed int64
	sequential := firm.NumberingMode != model.NumberingFreeform
	if sequential {
		consumed = billing.NextSequential(firm)
		invoice.InvoiceNumber = billing.FormatSequential(firm, consumed)
	} else {
		invoice.InvoiceNumber = billing.FreeformNumber(firm, time.Now())
	}
	invoice.CreatedBy = ownerID.String()
	invoice.UpdatedBy = ownerID.String()

	// A failed create leaves no id assigned and the counter untouched
	if err := s.invoiceRepo.Create(invoice); err != nil {
		return nil, err
	}

	result := &SaveInvoiceResult{Invoice: invoice, Created: true}

	if sequential {
		if err := s.firmRepo.AdvanceCurrentNumber(ownerID, consumed); err != nil {
			log.Printf("Warning: invoice %s saved but counter update failed: %v", invoice.InvoiceNumber, err)
			result.NumberingWarning = "invoice saved, but the numbering counter could not be updated"
		}
	}

	s.publishInvoiceEvent("invoice_created", invoice)
	return result, nil
}

// Update resaves an edited invoice as a partial update against the same
// record. The original invoice number and id are reused; the numbering
// counter is never touched on edit.
func (s *billingService) Update(ownerID, invoiceID uuid.UUID, req *InvoiceRequest) (*SaveInvoiceResult, error) {
	mu := s.lockFor(ownerID)
	mu.Lock()
	defer mu.Unlock()

	existing, err := s.invoiceRepo.FindByID(ownerID, invoiceID)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}

	preview, err := s.assemble(ownerID, req)
	if err != nil {
		return nil, err
	}

	// An edit payload without a date keeps the stored invoice date
	if req.Date == nil {
		preview.Date = existing.Date
	}

	fields := map[string]interface{}{
		"date":           preview.Date,
		"customer_name":  preview.CustomerName,
		"customer_phone": preview.CustomerPhone,
		"items":          preview.Items,
		"subtotal":       preview.Totals.Subtotal,
		"tax_amount":     preview.Totals.TaxAmount,
		"grand_total":    preview.Totals.GrandTotal,
		"updated_by":     ownerID.String(),
	}
	if err := s.invoiceRepo.UpdateFields(ownerID, invoiceID, fields); err != nil {
		return nil, err
	}

	existing.Date = preview.Date
	existing.CustomerName = preview.CustomerName
	existing.CustomerPhone = preview.CustomerPhone
	existing.Items = preview.Items
	existing.Subtotal = preview.Totals.Subtotal
	existing.TaxAmount = preview.Totals.TaxAmount
	existing.GrandTotal = preview.Totals.GrandTotal

	s.publishInvoiceEvent("invoice_updated", existing)
	return &SaveInvoiceResult{Invoice: existing, Created: false}, nil
}

func (s *billingService) GetAll(ownerID uuid.UUID) ([]model.Invoice, error) {
	return s.invoiceRepo.FindAll(ownerID)
}

func (s *billingService) GetByID(ownerID, id uuid.UUID) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ownerID, id)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *billingService) publishInvoiceEvent(action string, invoice *model.Invoice) {
	if s.wsHub == nil {
		return
	}
	go s.wsHub.Publish(ws.Event{
		Type:    "billing_update",
		Action:  action,
		OwnerID: invoice.OwnerID.String(),
		Data: map[string]interface{}{
			"id":             invoice.ID,
			"invoice_number": invoice.InvoiceNumber,
			"customer_name":  invoice.CustomerName,
			"grand_total":    billing.Display(invoice.GrandTotal),
		},
		Message: fmt.Sprintf("Invoice %s saved for %s", invoice.InvoiceNumber, invoice.CustomerName),
	})
}
