package service

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-billing-ws/internal/model"
)

func newFirmFixture(t *testing.T) (uuid.UUID, *fakeFirmRepo, FirmService) {
	t.Helper()
	ownerID := uuid.New()
	repo := &fakeFirmRepo{}
	return ownerID, repo, NewFirmService(repo)
}

func validFirm(ownerID uuid.UUID) *model.FirmDetails {
	return &model.FirmDetails{
		OwnerID:  ownerID,
		FirmName: "Shree Oil Mill",
		Address:  "12 Market Road",
	}
}

func TestSaveFirmValidation(t *testing.T) {
	ownerID, repo, svc := newFirmFixture(t)

	t.Run("firm name required", func(t *testing.T) {
		firm := validFirm(ownerID)
		firm.FirmName = ""
		_, err := svc.SaveFirm(ownerID, firm)
		assert.Error(t, err)
		assert.Zero(t, repo.saves, "nothing persisted on validation failure")
	})

	t.Run("address required", func(t *testing.T) {
		firm := validFirm(ownerID)
		firm.Address = ""
		_, err := svc.SaveFirm(ownerID, firm)
		assert.Error(t, err)
	})

	t.Run("defaults applied on first save", func(t *testing.T) {
		saved, err := svc.SaveFirm(ownerID, validFirm(ownerID))
		require.NoError(t, err)
		assert.Equal(t, model.NumberingSequential, saved.NumberingMode)
		assert.Equal(t, int64(1), saved.StartNumber)
		assert.Nil(t, saved.CurrentNumber)
	})
}

func TestSaveFirmCannotMoveCounter(t *testing.T) {
	ownerID, repo, svc := newFirmFixture(t)

	first, err := svc.SaveFirm(ownerID, validFirm(ownerID))
	require.NoError(t, err)

	// Simulate a persisted invoice having consumed number 5
	require.NoError(t, repo.AdvanceCurrentNumber(ownerID, 5))

	// A resave that tries to smuggle in a different counter value
	incoming := validFirm(ownerID)
	bogus := int64(99)
	incoming.CurrentNumber = &bogus

	saved, err := svc.SaveFirm(ownerID, incoming)
	require.NoError(t, err)
	assert.Equal(t, int64(5), *saved.CurrentNumber, "counter only moves via invoice persistence")
	assert.Equal(t, first.ID, saved.ID, "same record resaved")
}

func TestLogoUpload(t *testing.T) {
	ownerID, repo, svc := newFirmFixture(t)
	_, err := svc.SaveFirm(ownerID, validFirm(ownerID))
	require.NoError(t, err)

	t.Run("valid png stored", func(t *testing.T) {
		require.NoError(t, svc.SetLogo(ownerID, []byte{0x89, 0x50, 0x4e, 0x47}, "image/png"))
		assert.NotEmpty(t, repo.firm.Logo)
		assert.Equal(t, "image/png", repo.firm.LogoContentType)
	})

	t.Run("oversized payload rejected before any store call", func(t *testing.T) {
		savesBefore := repo.saves
		huge := bytes.Repeat([]byte{0xff}, 600*1024)
		err := svc.SetLogo(ownerID, huge, "image/png")
		assert.ErrorIs(t, err, ErrLogoTooLarge)
		assert.Equal(t, savesBefore, repo.saves)
	})

	t.Run("non-image content type rejected", func(t *testing.T) {
		err := svc.SetLogo(ownerID, []byte("<svg/>"), "image/svg+xml")
		assert.ErrorIs(t, err, ErrLogoInvalidType)
	})

	t.Run("clear removes the stored logo", func(t *testing.T) {
		require.NoError(t, svc.ClearLogo(ownerID))
		assert.Empty(t, repo.firm.Logo)
		assert.Empty(t, repo.firm.LogoContentType)
	})
}

func TestLogoSurvivesFirmResave(t *testing.T) {
	ownerID, repo, svc := newFirmFixture(t)
	_, err := svc.SaveFirm(ownerID, validFirm(ownerID))
	require.NoError(t, err)
	require.NoError(t, svc.SetLogo(ownerID, []byte{0x89, 0x50}, "image/png"))

	// Editing firm text fields must not drop the stored logo
	incoming := validFirm(ownerID)
	incoming.Tagline = "Pure since 1985"
	saved, err := svc.SaveFirm(ownerID, incoming)
	require.NoError(t, err)

	assert.Equal(t, []byte{0x89, 0x50}, saved.Logo)
	assert.Equal(t, "Pure since 1985", repo.firm.Tagline)
}
