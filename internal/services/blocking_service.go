package services

import (
	"time"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
)

// Школьные смены. Политика действует во время смены ученика.
var shiftWindows = map[string][2]int{
	models.ShiftMorning: {8, 13},
	models.ShiftEvening: {13, 18},
}

// BlockingStatus is the student-facing answer to "is my school policy
// active right now".
type BlockingStatus struct {
	PolicyID     *uuid.UUID `json:"policy_id,omitempty"`
	PolicyActive bool       `json:"policy_active"`
	Shift        string     `json:"shift,omitempty"`
	WindowStart  int        `json:"window_start_hour,omitempty"`
	WindowEnd    int        `json:"window_end_hour,omitempty"`
}

// ScheduleEntry describes one shift window.
type ScheduleEntry struct {
	Shift     string `json:"shift"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Current   bool   `json:"current"`
}

type BlockingService interface {
	Status(studentID uuid.UUID, now time.Time) (*BlockingStatus, error)
	BlockedApps(studentID uuid.UUID) ([]*models.PolicyAppDetail, error)
	BlockedWebsites(studentID uuid.UUID) ([]*models.PolicyWebDetail, error)
	Schedule(studentID uuid.UUID, now time.Time) ([]ScheduleEntry, error)
	// RequestException files an emergency unblock request for staff review.
	RequestException(studentID, appID uuid.UUID, reason string) (*models.AppRequest, error)
}

type blockingService struct {
	students repositories.StudentRepository
	schools  repositories.SchoolRepository
	policies repositories.PolicyRepository
	apps     AppService
}

func NewBlockingService(
	students repositories.StudentRepository,
	schools repositories.SchoolRepository,
	policies repositories.PolicyRepository,
	apps AppService,
) BlockingService {
	return &blockingService{students: students, schools: schools, policies: policies, apps: apps}
}

// schoolPolicy resolves student -> school -> attached policy. A student
// without a school policy is simply unrestricted.
func (s *blockingService) schoolPolicy(studentID uuid.UUID) (*models.StudentInfo, *uuid.UUID, error) {
	si, err := s.students.GetByUserID(studentID)
	if err != nil {
		return nil, nil, err
	}
	if si == nil {
		return nil, nil, apperrors.E(apperrors.NotFound, "student info not found")
	}
	school, err := s.schools.GetByID(si.SchoolID)
	if err != nil {
		return nil, nil, err
	}
	if school == nil {
		return si, nil, nil
	}
	return si, school.PolicyID, nil
}

func inWindow(shift string, now time.Time) (bool, int, int) {
	w, ok := shiftWindows[shift]
	if !ok {
		return false, 0, 0
	}
	h := now.Hour()
	return h >= w[0] && h < w[1], w[0], w[1]
}

func (s *blockingService) Status(studentID uuid.UUID, now time.Time) (*BlockingStatus, error) {
	si, policyID, err := s.schoolPolicy(studentID)
	if err != nil {
		return nil, err
	}
	st := &BlockingStatus{PolicyID: policyID, Shift: si.Shift}
	if policyID == nil {
		return st, nil
	}
	active, start, end := inWindow(si.Shift, now)
	st.PolicyActive = active
	st.WindowStart = start
	st.WindowEnd = end
	return st, nil
}

func (s *blockingService) BlockedApps(studentID uuid.UUID) ([]*models.PolicyAppDetail, error) {
	_, policyID, err := s.schoolPolicy(studentID)
	if err != nil {
		return nil, err
	}
	if policyID == nil {
		return nil, nil
	}
	return s.policies.ListApps(*policyID)
}

func (s *blockingService) BlockedWebsites(studentID uuid.UUID) ([]*models.PolicyWebDetail, error) {
	_, policyID, err := s.schoolPolicy(studentID)
	if err != nil {
		return nil, err
	}
	if policyID == nil {
		return nil, nil
	}
	return s.policies.ListWebs(*policyID)
}

func (s *blockingService) Schedule(studentID uuid.UUID, now time.Time) ([]ScheduleEntry, error) {
	si, _, err := s.schoolPolicy(studentID)
	if err != nil {
		return nil, err
	}
	entries := make([]ScheduleEntry, 0, len(shiftWindows))
	for _, shift := range []string{models.ShiftMorning, models.ShiftEvening} {
		w := shiftWindows[shift]
		active, _, _ := inWindow(shift, now)
		entries = append(entries, ScheduleEntry{
			Shift:     shift,
			StartHour: w[0],
			EndHour:   w[1],
			Current:   shift == si.Shift && active,
		})
	}
	return entries, nil
}

func (s *blockingService) RequestException(studentID, appID uuid.UUID, reason string) (*models.AppRequest, error) {
	if _, _, err := s.schoolPolicy(studentID); err != nil {
		return nil, err
	}
	req := &models.AppRequest{
		AppID:      appID,
		FromUserID: studentID,
		Reason:     reason,
	}
	if err := s.apps.SubmitRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}
