package services

import (
	"strings"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
)

type LocationService interface {
	CreateRegion(r *models.Region) error
	GetRegion(id uuid.UUID) (*models.Region, error)
	ListRegions() ([]*models.Region, error)
	UpdateRegion(r *models.Region) error
	DeleteRegion(id uuid.UUID) error

	CreateDistrict(d *models.District) error
	GetDistrict(id uuid.UUID) (*models.District, error)
	ListDistricts(regionID *uuid.UUID) ([]*models.District, error)
	UpdateDistrict(d *models.District) error
	DeleteDistrict(id uuid.UUID) error

	Statistics() (*models.LocationStatistics, error)
}

type locationService struct {
	repo repositories.LocationRepository
}

func NewLocationService(repo repositories.LocationRepository) LocationService {
	return &locationService{repo: repo}
}

func (s *locationService) CreateRegion(r *models.Region) error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.E(apperrors.Validation, "region name is required")
	}
	return s.repo.CreateRegion(r)
}

func (s *locationService) GetRegion(id uuid.UUID) (*models.Region, error) {
	r, err := s.repo.GetRegion(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperrors.E(apperrors.NotFound, "region not found")
	}
	return r, nil
}

func (s *locationService) ListRegions() ([]*models.Region, error) {
	return s.repo.ListRegions()
}

func (s *locationService) UpdateRegion(r *models.Region) error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.E(apperrors.Validation, "region name is required")
	}
	return s.repo.UpdateRegion(r)
}

func (s *locationService) DeleteRegion(id uuid.UUID) error {
	return s.repo.DeleteRegion(id)
}

func (s *locationService) CreateDistrict(d *models.District) error {
	if strings.TrimSpace(d.Name) == "" {
		return apperrors.E(apperrors.Validation, "district name is required")
	}
	region, err := s.repo.GetRegion(d.RegionID)
	if err != nil {
		return err
	}
	if region == nil {
		return apperrors.E(apperrors.NotFound, "region not found")
	}
	return s.repo.CreateDistrict(d)
}

func (s *locationService) GetDistrict(id uuid.UUID) (*models.District, error) {
	d, err := s.repo.GetDistrict(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperrors.E(apperrors.NotFound, "district not found")
	}
	return d, nil
}

func (s *locationService) ListDistricts(regionID *uuid.UUID) ([]*models.District, error) {
	return s.repo.ListDistricts(regionID)
}

func (s *locationService) UpdateDistrict(d *models.District) error {
	if strings.TrimSpace(d.Name) == "" {
		return apperrors.E(apperrors.Validation, "district name is required")
	}
	return s.repo.UpdateDistrict(d)
}

func (s *locationService) DeleteDistrict(id uuid.UUID) error {
	return s.repo.DeleteDistrict(id)
}

func (s *locationService) Statistics() (*models.LocationStatistics, error) {
	return s.repo.Statistics()
}
