package services

import (
	"strings"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
)

type PolicyService interface {
	Create(p *models.Policy) error
	GetByID(id uuid.UUID) (*models.Policy, error)
	List() ([]*models.Policy, error)
	Update(p *models.Policy) error
	Delete(id uuid.UUID) error

	AttachApp(policyID, appID uuid.UUID, duration int) (*models.PolicyApp, error)
	DetachApp(policyID, appID uuid.UUID) error
	ListApps(policyID uuid.UUID) ([]*models.PolicyAppDetail, error)
	AttachWeb(policyID, websiteID uuid.UUID, duration int) (*models.PolicyWeb, error)
	DetachWeb(policyID, websiteID uuid.UUID) error
	ListWebs(policyID uuid.UUID) ([]*models.PolicyWebDetail, error)
}

type policyService struct {
	repo     repositories.PolicyRepository
	roles    repositories.RoleRepository
	apps     repositories.AppRepository
	websites repositories.WebsiteRepository
}

func NewPolicyService(
	repo repositories.PolicyRepository,
	roles repositories.RoleRepository,
	apps repositories.AppRepository,
	websites repositories.WebsiteRepository,
) PolicyService {
	return &policyService{repo: repo, roles: roles, apps: apps, websites: websites}
}

func (s *policyService) Create(p *models.Policy) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.E(apperrors.Validation, "policy name is required")
	}
	return s.repo.Create(p)
}

func (s *policyService) GetByID(id uuid.UUID) (*models.Policy, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.E(apperrors.NotFound, "policy not found")
	}
	return p, nil
}

func (s *policyService) List() ([]*models.Policy, error) { return s.repo.List() }

func (s *policyService) Update(p *models.Policy) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.E(apperrors.Validation, "policy name is required")
	}
	return s.repo.Update(p)
}

func (s *policyService) Delete(id uuid.UUID) error { return s.repo.Delete(id) }

func (s *policyService) AttachApp(policyID, appID uuid.UUID, duration int) (*models.PolicyApp, error) {
	if duration < 0 {
		return nil, apperrors.E(apperrors.Validation, "duration must not be negative")
	}
	if _, err := s.GetByID(policyID); err != nil {
		return nil, err
	}
	app, err := s.apps.GetByID(appID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, apperrors.E(apperrors.NotFound, "app not found")
	}
	pa := &models.PolicyApp{PolicyID: policyID, AppID: appID, Duration: duration}
	if err := s.repo.AttachApp(pa); err != nil {
		return nil, err
	}
	return pa, nil
}

func (s *policyService) DetachApp(policyID, appID uuid.UUID) error {
	return s.repo.DetachApp(policyID, appID)
}

func (s *policyService) ListApps(policyID uuid.UUID) ([]*models.PolicyAppDetail, error) {
	if _, err := s.GetByID(policyID); err != nil {
		return nil, err
	}
	return s.repo.ListApps(policyID)
}

func (s *policyService) AttachWeb(policyID, websiteID uuid.UUID, duration int) (*models.PolicyWeb, error) {
	if duration < 0 {
		return nil, apperrors.E(apperrors.Validation, "duration must not be negative")
	}
	if _, err := s.GetByID(policyID); err != nil {
		return nil, err
	}
	site, err := s.websites.GetByID(websiteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, apperrors.E(apperrors.NotFound, "website not found")
	}
	pw := &models.PolicyWeb{PolicyID: policyID, WebsiteID: websiteID, Duration: duration}
	if err := s.repo.AttachWeb(pw); err != nil {
		return nil, err
	}
	return pw, nil
}

func (s *policyService) DetachWeb(policyID, websiteID uuid.UUID) error {
	return s.repo.DetachWeb(policyID, websiteID)
}

func (s *policyService) ListWebs(policyID uuid.UUID) ([]*models.PolicyWebDetail, error) {
	if _, err := s.GetByID(policyID); err != nil {
		return nil, err
	}
	return s.repo.ListWebs(policyID)
}
