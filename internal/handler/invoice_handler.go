package handler

import (
	"errors"

	"go-billing-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InvoiceHandler struct {
	service service.BillingService
}

func NewInvoiceHandler(s service.BillingService) *InvoiceHandler {
	return &InvoiceHandler{service: s}
}

// Preview assembles totals and a candidate number without persisting
// POST /api/v1/invoices/preview
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var req service.InvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	preview, err := h.service.Preview(ownerID, &req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(preview)
}

// CreateInvoice persists a new invoice. Callers must not retry blindly:
// a success already assigned an id, and retrying would duplicate it.
// POST /api/v1/invoices
func (h *InvoiceHandler) CreateInvoice(c *fiber.Ctx) error {
	var req service.InvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.ID != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invoice already has an id; use PUT /invoices/:id to resave"})
	}

	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	result, err := h.service.Create(ownerID, &req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(result)
}

// UpdateInvoice resaves an edited invoice under its original number
// PUT /api/v1/invoices/:id
func (h *InvoiceHandler) UpdateInvoice(c *fiber.Ctx) error {
	var req service.InvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	invoiceID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}

	result, err := h.service.Update(ownerID, invoiceID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

func (h *InvoiceHandler) GetInvoices(c *fiber.Ctx) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	invoices, err := h.service.GetAll(ownerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(invoices)
}

func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	invoiceID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}

	invoice, err := h.service.GetByID(ownerID, invoiceID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Invoice not found"})
	}
	return c.JSON(invoice)
}
