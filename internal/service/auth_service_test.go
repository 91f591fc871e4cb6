package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-billing-ws/internal/model"
)

type fakeOwnerRepo struct {
	owners map[uuid.UUID]*model.Owner
}

func newFakeOwnerRepo() *fakeOwnerRepo {
	return &fakeOwnerRepo{owners: make(map[uuid.UUID]*model.Owner)}
}

func (r *fakeOwnerRepo) add(t *testing.T, email, password string) *model.Owner {
	t.Helper()
	o := &model.Owner{
		FullName: "Shop Owner",
		Email:    email,
		IsActive: true,
	}
	o.ID = uuid.New()
	require.NoError(t, o.SetPassword(password))
	r.owners[o.ID] = o
	return o
}

func (r *fakeOwnerRepo) FindByEmail(email string) (*model.Owner, error) {
	for _, o := range r.owners {
		if o.Email == email {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOwnerRepo) FindByID(id uuid.UUID) (*model.Owner, error) {
	o, ok := r.owners[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *fakeOwnerRepo) Create(owner *model.Owner) error {
	owner.ID = uuid.New()
	r.owners[owner.ID] = owner
	return nil
}

func (r *fakeOwnerRepo) Update(owner *model.Owner) error {
	r.owners[owner.ID] = owner
	return nil
}

func (r *fakeOwnerRepo) UpdatePassword(ownerID uuid.UUID, hashedPassword string) error {
	o, ok := r.owners[ownerID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Password = hashedPassword
	return nil
}

func (r *fakeOwnerRepo) UpdateTokenVersion(ownerID uuid.UUID, version string) error {
	o, ok := r.owners[ownerID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.TokenVersion = version
	return nil
}

func TestLogin(t *testing.T) {
	repo := newFakeOwnerRepo()
	owner := repo.add(t, "owner@shreeoil.in", "secret123")
	svc := NewAuthService(repo)

	t.Run("valid credentials issue a working token", func(t *testing.T) {
		resp, err := svc.Login("owner@shreeoil.in", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, owner.Email, resp.Owner.Email)

		validated, err := svc.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, owner.ID.String(), validated.Owner.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("owner@shreeoil.in", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login("nobody@shreeoil.in", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		owner.IsActive = false
		defer func() { owner.IsActive = true }()

		_, err := svc.Login("owner@shreeoil.in", "secret123")
		assert.ErrorIs(t, err, ErrOwnerInactive)
	})

	t.Run("second login kills the first session", func(t *testing.T) {
		first, err := svc.Login("owner@shreeoil.in", "secret123")
		require.NoError(t, err)
		_, err = svc.Login("owner@shreeoil.in", "secret123")
		require.NoError(t, err)

		_, err = svc.ValidateToken(first.Token)
		assert.Error(t, err)
	})
}

func TestResetPassword(t *testing.T) {
	t.Run("wrong current password", func(t *testing.T) {
		repo := newFakeOwnerRepo()
		repo.add(t, "owner@shreeoil.in", "secret123")
		svc := NewAuthService(repo)

		err := svc.ResetPassword("owner@shreeoil.in", "wrong", "newpass456")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := NewAuthService(newFakeOwnerRepo())
		err := svc.ResetPassword("nobody@shreeoil.in", "secret123", "newpass456")
		assert.ErrorIs(t, err, ErrOwnerNotFound)
	})

	t.Run("stores the new hash and invalidates open sessions", func(t *testing.T) {
		repo := newFakeOwnerRepo()
		owner := repo.add(t, "owner@shreeoil.in", "secret123")
		svc := NewAuthService(repo)

		before, err := svc.Login("owner@shreeoil.in", "secret123")
		require.NoError(t, err)

		require.NoError(t, svc.ResetPassword("owner@shreeoil.in", "secret123", "newpass456"))

		assert.False(t, owner.CheckPassword("secret123"))
		assert.True(t, owner.CheckPassword("newpass456"))

		// Token issued before the reset no longer matches the rotated version
		_, err = svc.ValidateToken(before.Token)
		assert.Error(t, err)

		_, err = svc.Login("owner@shreeoil.in", "newpass456")
		assert.NoError(t, err)
	})
}
