package services

import (
	"strings"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
)

type OSService interface {
	Create(os *models.OS) error
	GetByID(id uuid.UUID) (*models.OS, error)
	List() ([]*models.OS, error)
	Update(os *models.OS) error
	Delete(id uuid.UUID) error
}

type osService struct {
	repo repositories.OSRepository
}

func NewOSService(repo repositories.OSRepository) OSService {
	return &osService{repo: repo}
}

func validOSType(t string) bool {
	for _, known := range models.OSTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (s *osService) Create(os *models.OS) error {
	if !validOSType(os.Type) {
		return apperrors.Ef(apperrors.Validation, "unknown os type %q", os.Type)
	}
	return s.repo.Create(os)
}

func (s *osService) GetByID(id uuid.UUID) (*models.OS, error) {
	os, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if os == nil {
		return nil, apperrors.E(apperrors.NotFound, "operating system not found")
	}
	return os, nil
}

func (s *osService) List() ([]*models.OS, error) { return s.repo.List() }

func (s *osService) Update(os *models.OS) error {
	if !validOSType(os.Type) {
		return apperrors.Ef(apperrors.Validation, "unknown os type %q", os.Type)
	}
	return s.repo.Update(os)
}

func (s *osService) Delete(id uuid.UUID) error { return s.repo.Delete(id) }

// DeviceService registers devices against users and keeps the per-device
// app inventory.
type DeviceService interface {
	RegisterDevice(userID uuid.UUID, d *models.Device) (*models.UserDevice, error)
	ListUserDevices(userID uuid.UUID) ([]*models.UserDeviceDetail, error)
	DeactivateDevice(userDeviceID, userID uuid.UUID) error

	InstallApp(userID, userDeviceID, appID uuid.UUID) (*models.UserApp, error)
	UninstallApp(userID, userDeviceID, appID uuid.UUID) error
	ListInstalledApps(userID, userDeviceID uuid.UUID) ([]*models.UserApp, error)
}

type deviceService struct {
	devices  repositories.DeviceRepository
	oses     repositories.OSRepository
	apps     repositories.AppRepository
	userApps repositories.UserAppRepository
}

func NewDeviceService(
	devices repositories.DeviceRepository,
	oses repositories.OSRepository,
	apps repositories.AppRepository,
	userApps repositories.UserAppRepository,
) DeviceService {
	return &deviceService{devices: devices, oses: oses, apps: apps, userApps: userApps}
}

func (s *deviceService) RegisterDevice(userID uuid.UUID, d *models.Device) (*models.UserDevice, error) {
	if strings.TrimSpace(d.Brand) == "" || strings.TrimSpace(d.Model) == "" {
		return nil, apperrors.E(apperrors.Validation, "device brand and model are required")
	}
	os, err := s.oses.GetByID(d.OSID)
	if err != nil {
		return nil, err
	}
	if os == nil {
		return nil, apperrors.E(apperrors.NotFound, "operating system not found")
	}
	if err := s.devices.FindOrCreate(d); err != nil {
		return nil, err
	}
	return s.devices.AttachUser(userID, d.ID)
}

func (s *deviceService) ListUserDevices(userID uuid.UUID) ([]*models.UserDeviceDetail, error) {
	return s.devices.ListByUser(userID)
}

func (s *deviceService) DeactivateDevice(userDeviceID, userID uuid.UUID) error {
	return s.devices.Deactivate(userDeviceID, userID)
}

// ownedUserDevice loads the link row and checks it belongs to userID.
func (s *deviceService) ownedUserDevice(userID, userDeviceID uuid.UUID) (*models.UserDevice, error) {
	ud, err := s.devices.GetUserDevice(userDeviceID)
	if err != nil {
		return nil, err
	}
	if ud == nil || ud.UserID != userID {
		return nil, apperrors.E(apperrors.NotFound, "device not found")
	}
	if !ud.IsActive {
		return nil, apperrors.E(apperrors.Conflict, "device is deactivated")
	}
	return ud, nil
}

func (s *deviceService) InstallApp(userID, userDeviceID, appID uuid.UUID) (*models.UserApp, error) {
	if _, err := s.ownedUserDevice(userID, userDeviceID); err != nil {
		return nil, err
	}
	app, err := s.apps.GetByID(appID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, apperrors.E(apperrors.NotFound, "app not found")
	}
	ua := &models.UserApp{UserDeviceID: userDeviceID, AppID: appID}
	if err := s.userApps.Install(ua); err != nil {
		return nil, err
	}
	return ua, nil
}

func (s *deviceService) UninstallApp(userID, userDeviceID, appID uuid.UUID) error {
	if _, err := s.ownedUserDevice(userID, userDeviceID); err != nil {
		return err
	}
	return s.userApps.Uninstall(userDeviceID, appID)
}

func (s *deviceService) ListInstalledApps(userID, userDeviceID uuid.UUID) ([]*models.UserApp, error) {
	if _, err := s.ownedUserDevice(userID, userDeviceID); err != nil {
		return nil, err
	}
	return s.userApps.ListByUserDevice(userDeviceID)
}
