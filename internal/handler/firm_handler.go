package handler

import (
	"go-billing-ws/internal/model"
	"go-billing-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type FirmHandler struct {
	service service.FirmService
}

func NewFirmHandler(s service.FirmService) *FirmHandler {
	return &FirmHandler{service: s}
}

// GetFirm returns the owner's firm configuration
// GET /api/v1/firm
func (h *FirmHandler) GetFirm(c *fiber.Ctx) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	firm, err := h.service.GetFirm(ownerID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Firm details not configured yet"})
	}
	return c.JSON(firm)
}

// SaveFirm creates or replaces the firm configuration
// PUT /api/v1/firm
func (h *FirmHandler) SaveFirm(c *fiber.Ctx) error {
	var firm model.FirmDetails
	if err := c.BodyParser(&firm); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	saved, err := h.service.SaveFirm(ownerID, &firm)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Firm details saved", "data": saved})
}

// UpdatePreferences replaces the display preference toggles
// PUT /api/v1/firm/preferences
func (h *FirmHandler) UpdatePreferences(c *fiber.Ctx) error {
	prefs := model.DefaultDisplayPreferences()
	if err := c.BodyParser(&prefs); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	firm, err := h.service.UpdatePreferences(ownerID, prefs)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Preferences updated", "data": firm})
}

// UploadLogo stores the firm logo image
// POST /api/v1/firm/logo (raw body, Content-Type: image/png or image/jpeg)
func (h *FirmHandler) UploadLogo(c *fiber.Ctx) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	contentType := c.Get("Content-Type")
	if err := h.service.SetLogo(ownerID, c.Body(), contentType); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Logo uploaded"})
}

// DeleteLogo removes the stored logo
// DELETE /api/v1/firm/logo
func (h *FirmHandler) DeleteLogo(c *fiber.Ctx) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := h.service.ClearLogo(ownerID); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Logo removed"})
}
