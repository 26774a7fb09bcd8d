package services

import (
	"strings"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/authz"
	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
)

type UserService interface {
	GetByID(id uuid.UUID) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	Update(user *models.User) error
	ChangePassword(id uuid.UUID, oldPassword, newPassword string) error
	Delete(id uuid.UUID) error
	List(limit, offset int) ([]*models.User, error)
}

type userService struct {
	repo repositories.UserRepository
	auth AuthService
}

func NewUserService(repo repositories.UserRepository, auth AuthService) UserService {
	return &userService{repo: repo, auth: auth}
}

func (s *userService) GetByID(id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.E(apperrors.NotFound, "user not found")
	}
	return user, nil
}

func (s *userService) GetByPhone(phone string) (*models.User, error) {
	user, err := s.repo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.E(apperrors.NotFound, "user not found")
	}
	return user, nil
}

func (s *userService) Update(user *models.User) error {
	if strings.TrimSpace(user.Username) == "" {
		return apperrors.E(apperrors.Validation, "username is required")
	}
	if user.RoleName != "" && !authz.Valid(user.RoleName) {
		return apperrors.Ef(apperrors.Validation, "unknown role %q", user.RoleName)
	}
	return s.repo.Update(user)
}

func (s *userService) ChangePassword(id uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if !s.auth.VerifyPassword(user.PasswordHash, oldPassword) {
		return apperrors.E(apperrors.Unauthorized, "current password is incorrect")
	}
	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(id, hash)
}

func (s *userService) Delete(id uuid.UUID) error {
	return s.repo.Delete(id)
}

func (s *userService) List(limit, offset int) ([]*models.User, error) {
	return s.repo.List(limit, offset)
}
