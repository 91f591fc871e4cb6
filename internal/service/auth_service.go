package service

import (
	"errors"

	"github.com/google/uuid"

	"go-billing-ws/internal/model"
	"go-billing-ws/internal/repository"
	"go-billing-ws/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrOwnerNotFound      = errors.New("owner account not found")
	ErrOwnerInactive      = errors.New("owner account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ResetPassword(email, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
}

type LoginResponse struct {
	Token string              `json:"token"`
	Owner model.OwnerResponse `json:"owner"`
}

type TokenValidationResponse struct {
	Owner model.OwnerResponse `json:"owner"`
}

type authService struct {
	ownerRepo repository.OwnerRepository
}

func NewAuthService(ownerRepo repository.OwnerRepository) AuthService {
	return &authService{ownerRepo: ownerRepo}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// 1. Find owner by email
	owner, err := s.ownerRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Check if the account is active
	if !owner.IsActive {
		return nil, ErrOwnerInactive
	}

	// 3. Verify password
	if !owner.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Single Session: rotate the token version so older sessions die
	newTokenVersion := uuid.New().String()
	owner.TokenVersion = newTokenVersion
	if err := s.ownerRepo.Update(owner); err != nil {
		return nil, errors.New("failed to update session")
	}

	// 5. Generate JWT token with TokenVersion
	token, err := jwt.GenerateToken(owner.ID, owner.Email, owner.FullName, newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		Owner: owner.ToResponse(),
	}, nil
}

func (s *authService) ResetPassword(email, oldPassword, newPassword string) error {
	// 1. Find owner by email
	owner, err := s.ownerRepo.FindByEmail(email)
	if err != nil {
		return ErrOwnerNotFound
	}

	// 2. Verify old password
	if !owner.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	// 3. Set new password
	if err := owner.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	// 4. Update in database
	if err := s.ownerRepo.UpdatePassword(owner.ID, owner.Password); err != nil {
		return err
	}

	// 5. Invalidate existing sessions
	return s.ownerRepo.UpdateTokenVersion(owner.ID, uuid.New().String())
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	// 1. Validate JWT token
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	// 2. Find owner by ID from token claims
	owner, err := s.ownerRepo.FindByID(claims.OwnerID)
	if err != nil {
		return nil, ErrOwnerNotFound
	}

	// 3. Check if the account is still active
	if !owner.IsActive {
		return nil, ErrOwnerInactive
	}

	// 4. Check against DB for strict session (TokenVersion)
	if owner.TokenVersion != claims.TokenVersion {
		return nil, errors.New("session expired (logged in on another device)")
	}

	return &TokenValidationResponse{
		Owner: owner.ToResponse(),
	}, nil
}
