package services

import (
	"strings"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
)

// AppService manages the shared app catalog and student unblock requests.
type AppService interface {
	Create(app *models.App) error
	GetByID(id uuid.UUID) (*models.App, error)
	List(limit, offset int) ([]*models.App, error)
	Update(app *models.App) error
	Delete(id uuid.UUID) error

	SubmitRequest(req *models.AppRequest) error
	GetRequest(id uuid.UUID) (*models.AppRequest, error)
	ListRequests(status string) ([]*models.AppRequest, error)
	ResolveRequest(id uuid.UUID, approve bool, adminID uuid.UUID, basis string) error
}

type appService struct {
	repo repositories.AppRepository
}

func NewAppService(repo repositories.AppRepository) AppService {
	return &appService{repo: repo}
}

func (s *appService) validate(app *models.App) error {
	if strings.TrimSpace(app.Name) == "" {
		return apperrors.E(apperrors.Validation, "app name is required")
	}
	if strings.TrimSpace(app.Package) == "" {
		return apperrors.E(apperrors.Validation, "app package is required")
	}
	return nil
}

func (s *appService) Create(app *models.App) error {
	if err := s.validate(app); err != nil {
		return err
	}
	return s.repo.Create(app)
}

func (s *appService) GetByID(id uuid.UUID) (*models.App, error) {
	app, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, apperrors.E(apperrors.NotFound, "app not found")
	}
	return app, nil
}

func (s *appService) List(limit, offset int) ([]*models.App, error) {
	return s.repo.List(limit, offset)
}

func (s *appService) Update(app *models.App) error {
	if err := s.validate(app); err != nil {
		return err
	}
	return s.repo.Update(app)
}

func (s *appService) Delete(id uuid.UUID) error {
	return s.repo.Delete(id)
}

func (s *appService) SubmitRequest(req *models.AppRequest) error {
	app, err := s.repo.GetByID(req.AppID)
	if err != nil {
		return err
	}
	if app == nil {
		return apperrors.E(apperrors.NotFound, "app not found")
	}
	req.Status = models.AppRequestPending
	return s.repo.CreateRequest(req)
}

func (s *appService) GetRequest(id uuid.UUID) (*models.AppRequest, error) {
	req, err := s.repo.GetRequest(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperrors.E(apperrors.NotFound, "app request not found")
	}
	return req, nil
}

func (s *appService) ListRequests(status string) ([]*models.AppRequest, error) {
	switch status {
	case "", models.AppRequestPending, models.AppRequestApproved, models.AppRequestRejected, models.AppRequestError:
	default:
		return nil, apperrors.Ef(apperrors.Validation, "unknown request status %q", status)
	}
	return s.repo.ListRequests(status)
}

func (s *appService) ResolveRequest(id uuid.UUID, approve bool, adminID uuid.UUID, basis string) error {
	status := models.AppRequestRejected
	if approve {
		status = models.AppRequestApproved
	}
	return s.repo.ResolveRequest(id, status, adminID, basis)
}
