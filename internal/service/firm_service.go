package service

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"go-billing-ws/internal/model"
	"go-billing-ws/internal/repository"
	"go-billing-ws/pkg/validator"

	"github.com/google/uuid"
)

const defaultMaxLogoBytes = 512 * 1024

var (
	ErrLogoTooLarge    = errors.New("logo image exceeds the maximum allowed size")
	ErrLogoInvalidType = errors.New("logo must be a PNG or JPEG image")
)

var allowedLogoTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

type FirmService interface {
	GetFirm(ownerID uuid.UUID) (*model.FirmDetails, error)
	SaveFirm(ownerID uuid.UUID, req *model.FirmDetails) (*model.FirmDetails, error)
	UpdatePreferences(ownerID uuid.UUID, prefs model.DisplayPreferences) (*model.FirmDetails, error)
	SetLogo(ownerID uuid.UUID, data []byte, contentType string) error
	ClearLogo(ownerID uuid.UUID) error
}

type firmService struct {
	firmRepo     repository.FirmRepository
	maxLogoBytes int
}

func NewFirmService(fRepo repository.FirmRepository) FirmService {
	maxBytes := defaultMaxLogoBytes
	if env := os.Getenv("MAX_LOGO_BYTES"); env != "" {
		if parsed, err := strconv.Atoi(env); err == nil && parsed > 0 {
			maxBytes = parsed
		}
	}
	return &firmService{
		firmRepo:     fRepo,
		maxLogoBytes: maxBytes,
	}
}

func (s *firmService) GetFirm(ownerID uuid.UUID) (*model.FirmDetails, error) {
	firm, err := s.firmRepo.FindByOwner(ownerID)
	if err != nil {
		return nil, ErrFirmNotConfigured
	}
	return firm, nil
}

// SaveFirm upserts the owner's firm configuration. The numbering
// counter is deliberately not writable through this path: it only
// moves when a new invoice is persisted.
func (s *firmService) SaveFirm(ownerID uuid.UUID, req *model.FirmDetails) (*model.FirmDetails, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if req.NumberingMode == "" {
		req.NumberingMode = model.NumberingSequential
	}
	if req.StartNumber <= 0 {
		req.StartNumber = 1
	}

	existing, err := s.firmRepo.FindByOwner(ownerID)
	if err == nil {
		// Preserve identity, counter state and the stored logo
		req.BaseModel = existing.BaseModel
		req.CurrentNumber = existing.CurrentNumber
		if len(req.Logo) == 0 {
			req.Logo = existing.Logo
			req.LogoContentType = existing.LogoContentType
		}
	} else {
		req.CurrentNumber = nil
		req.CreatedBy = ownerID.String()
	}

	req.OwnerID = ownerID
	req.UpdatedBy = ownerID.String()

	if err := s.firmRepo.Save(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *firmService) UpdatePreferences(ownerID uuid.UUID, prefs model.DisplayPreferences) (*model.FirmDetails, error) {
	firm, err := s.firmRepo.FindByOwner(ownerID)
	if err != nil {
		return nil, ErrFirmNotConfigured
	}

	firm.Preferences = prefs
	firm.UpdatedBy = ownerID.String()

	if err := s.firmRepo.Save(firm); err != nil {
		return nil, err
	}
	return firm, nil
}

// SetLogo validates the upload before any store call: oversized or
// non-image payloads are rejected with nothing mutated.
func (s *firmService) SetLogo(ownerID uuid.UUID, data []byte, contentType string) error {
	if len(data) == 0 {
		return errors.New("logo payload is empty")
	}
	if len(data) > s.maxLogoBytes {
		return ErrLogoTooLarge
	}
	if !allowedLogoTypes[contentType] {
		return ErrLogoInvalidType
	}

	firm, err := s.firmRepo.FindByOwner(ownerID)
	if err != nil {
		return ErrFirmNotConfigured
	}

	firm.Logo = data
	firm.LogoContentType = contentType
	firm.UpdatedBy = ownerID.String()
	return s.firmRepo.Save(firm)
}

func (s *firmService) ClearLogo(ownerID uuid.UUID) error {
	firm, err := s.firmRepo.FindByOwner(ownerID)
	if err != nil {
		return ErrFirmNotConfigured
	}

	firm.Logo = nil
	firm.LogoContentType = ""
	firm.UpdatedBy = ownerID.String()
	return s.firmRepo.Save(firm)
}
