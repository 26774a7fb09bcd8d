package services

import (
	"strings"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
)

type SchoolService interface {
	Create(sc *models.School) error
	GetByID(id uuid.UUID) (*models.School, error)
	List(f repositories.SchoolFilter) ([]*models.School, error)
	Update(sc *models.School) error
	Delete(id uuid.UUID) error
}

type schoolService struct {
	repo      repositories.SchoolRepository
	locations repositories.LocationRepository
	policies  repositories.PolicyRepository
}

func NewSchoolService(
	repo repositories.SchoolRepository,
	locations repositories.LocationRepository,
	policies repositories.PolicyRepository,
) SchoolService {
	return &schoolService{repo: repo, locations: locations, policies: policies}
}

func (s *schoolService) validate(sc *models.School) error {
	if strings.TrimSpace(sc.Name) == "" {
		return apperrors.E(apperrors.Validation, "school name is required")
	}
	district, err := s.locations.GetDistrict(sc.DistrictID)
	if err != nil {
		return err
	}
	if district == nil {
		return apperrors.E(apperrors.NotFound, "district not found")
	}
	// Район определяет регион; несогласованную пару не принимаем.
	if district.RegionID != sc.RegionID {
		return apperrors.E(apperrors.Validation, "district does not belong to region")
	}
	if sc.PolicyID != nil {
		policy, err := s.policies.GetByID(*sc.PolicyID)
		if err != nil {
			return err
		}
		if policy == nil {
			return apperrors.E(apperrors.NotFound, "policy not found")
		}
	}
	if (sc.Latitude == nil) != (sc.Longitude == nil) {
		return apperrors.E(apperrors.Validation, "latitude and longitude must be set together")
	}
	return nil
}

func (s *schoolService) Create(sc *models.School) error {
	if err := s.validate(sc); err != nil {
		return err
	}
	return s.repo.Create(sc)
}

func (s *schoolService) GetByID(id uuid.UUID) (*models.School, error) {
	sc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, apperrors.E(apperrors.NotFound, "school not found")
	}
	return sc, nil
}

func (s *schoolService) List(f repositories.SchoolFilter) ([]*models.School, error) {
	return s.repo.List(f)
}

func (s *schoolService) Update(sc *models.School) error {
	if err := s.validate(sc); err != nil {
		return err
	}
	return s.repo.Update(sc)
}

func (s *schoolService) Delete(id uuid.UUID) error {
	return s.repo.Delete(id)
}
