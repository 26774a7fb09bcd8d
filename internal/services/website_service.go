package services

import (
	"strings"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
)

type WebsiteService interface {
	Create(w *models.Website) error
	GetByID(id uuid.UUID) (*models.Website, error)
	List(limit, offset int) ([]*models.Website, error)
	Update(w *models.Website) error
	Delete(id uuid.UUID) error
}

type websiteService struct {
	repo repositories.WebsiteRepository
}

func NewWebsiteService(repo repositories.WebsiteRepository) WebsiteService {
	return &websiteService{repo: repo}
}

// normalizeDomain lowercases and strips scheme/path remnants so the
// catalog stores bare hostnames only.
func normalizeDomain(raw string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(raw))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "www.")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if d == "" || !strings.Contains(d, ".") {
		return "", apperrors.Ef(apperrors.Validation, "invalid domain %q", raw)
	}
	return d, nil
}

func (s *websiteService) Create(w *models.Website) error {
	domain, err := normalizeDomain(w.Domain)
	if err != nil {
		return err
	}
	w.Domain = domain
	return s.repo.Create(w)
}

func (s *websiteService) GetByID(id uuid.UUID) (*models.Website, error) {
	w, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, apperrors.E(apperrors.NotFound, "website not found")
	}
	return w, nil
}

func (s *websiteService) List(limit, offset int) ([]*models.Website, error) {
	return s.repo.List(limit, offset)
}

func (s *websiteService) Update(w *models.Website) error {
	domain, err := normalizeDomain(w.Domain)
	if err != nil {
		return err
	}
	w.Domain = domain
	return s.repo.Update(w)
}

func (s *websiteService) Delete(id uuid.UUID) error {
	return s.repo.Delete(id)
}
