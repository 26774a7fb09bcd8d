package services

import (
	"log"
	"time"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
)

type LogService interface {
	CreateAction(a *models.Action) error
	ListActions() ([]*models.Action, error)

	Record(userID uuid.UUID, l *models.Log) error
	List(f repositories.LogFilter) ([]*models.Log, error)
	SummaryByDay(userID uuid.UUID, from, to time.Time) ([]*models.LogDaySummary, error)
}

type logService struct {
	logs     repositories.LogRepository
	actions  repositories.ActionRepository
	devices  repositories.DeviceRepository
	students repositories.StudentRepository
	telegram *TelegramService
}

func NewLogService(
	logs repositories.LogRepository,
	actions repositories.ActionRepository,
	devices repositories.DeviceRepository,
	students repositories.StudentRepository,
	telegram *TelegramService,
) LogService {
	return &logService{logs: logs, actions: actions, devices: devices, students: students, telegram: telegram}
}

func validDegree(d string) bool {
	return d == models.DegreeNeutral || d == models.DegreeSuspicious || d == models.DegreeTerrible
}

func (s *logService) CreateAction(a *models.Action) error {
	if a.Name == "" {
		return apperrors.E(apperrors.Validation, "action name is required")
	}
	if !validDegree(a.Degree) {
		return apperrors.Ef(apperrors.Validation, "unknown degree %q", a.Degree)
	}
	return s.actions.Create(a)
}

func (s *logService) ListActions() ([]*models.Action, error) {
	return s.actions.List()
}

// Record stores one usage event coming from the student's device agent.
// Подозрительные действия дополнительно уходят родителям.
func (s *logService) Record(userID uuid.UUID, l *models.Log) error {
	ud, err := s.devices.GetUserDevice(l.UserDeviceID)
	if err != nil {
		return err
	}
	if ud == nil || ud.UserID != userID {
		return apperrors.E(apperrors.NotFound, "device not found")
	}
	action, err := s.actions.GetByID(l.ActionID)
	if err != nil {
		return err
	}
	if action == nil {
		return apperrors.E(apperrors.NotFound, "action not found")
	}
	if err := s.logs.Create(l); err != nil {
		return err
	}
	if action.Degree != models.DegreeNeutral {
		s.alertParents(userID, action, l.DoneAt)
	}
	return nil
}

func (s *logService) alertParents(studentID uuid.UUID, action *models.Action, at time.Time) {
	if s.telegram == nil {
		return
	}
	si, err := s.students.GetByUserID(studentID)
	if err != nil || si == nil {
		log.Printf("[logs][alert] no student info for %s: %v", studentID, err)
		return
	}
	var parents []uuid.UUID
	if si.FatherID != nil {
		parents = append(parents, *si.FatherID)
	}
	if si.MotherID != nil {
		parents = append(parents, *si.MotherID)
	}
	if len(parents) == 0 {
		return
	}
	name := si.FirstName + " " + si.LastName
	s.telegram.AlertParents(parents, AlertText(name, action.Name, action.Degree, at))
}

func (s *logService) List(f repositories.LogFilter) ([]*models.Log, error) {
	return s.logs.List(f)
}

func (s *logService) SummaryByDay(userID uuid.UUID, from, to time.Time) ([]*models.LogDaySummary, error) {
	if !to.After(from) {
		return nil, apperrors.E(apperrors.Validation, "empty date range")
	}
	return s.logs.SummaryByDay(userID, from, to)
}
